package fs

import (
	"fmt"
	"os"
	"path/filepath"

	internalconfig "github.com/trebuchet-org/coffer/internal/config"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// ProjectConfigAdapter writes coffer.toml into the project root
type ProjectConfigAdapter struct {
	cfg        *config.RuntimeConfig
	configPath string
}

// NewProjectConfigAdapter creates a new ProjectConfigAdapter
func NewProjectConfigAdapter(cfg *config.RuntimeConfig) *ProjectConfigAdapter {
	return &ProjectConfigAdapter{
		cfg:        cfg,
		configPath: filepath.Join(cfg.ProjectRoot, config.FileName),
	}
}

// Exists checks if the config file exists
func (a *ProjectConfigAdapter) Exists() bool {
	_, err := os.Stat(a.configPath)
	return !os.IsNotExist(err)
}

// Write renders the active settings into coffer.toml and creates the data
// directory. An existing file is kept unless force is set.
func (a *ProjectConfigAdapter) Write(force bool) (string, error) {
	if err := os.MkdirAll(a.cfg.DataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	if a.Exists() && !force {
		return a.configPath, nil
	}

	data, err := internalconfig.EncodeCofferConfig(a.fileConfig())
	if err != nil {
		return "", err
	}

	tmpPath := a.configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}
	if err := os.Rename(tmpPath, a.configPath); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}
	return a.configPath, nil
}

// fileConfig mirrors the runtime settings back into file form so that a
// forced re-init keeps what was configured.
func (a *ProjectConfigAdapter) fileConfig() *config.CofferFileConfig {
	file := config.DefaultCofferFileConfig()
	file.Storage = a.cfg.Storage
	file.Guards = a.cfg.Guards
	file.Validation.StrictAddresses = a.cfg.StrictAddresses
	file.Actor.UserID = a.cfg.ActorID
	if len(a.cfg.ExpenseCategories) > 0 {
		file.Expenses.Categories = a.cfg.ExpenseCategories
	}
	if a.cfg.DefaultLockDays > 0 {
		file.Proposals.DefaultLockDays = a.cfg.DefaultLockDays
	}
	return file
}

var _ usecase.ProjectConfigWriter = (*ProjectConfigAdapter)(nil)
