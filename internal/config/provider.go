package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/coffer/internal/domain/config"
)

// DataDirName is the directory under the project root holding coffer data
const DataDirName = ".coffer"

// ErrNoProject is returned when no coffer.toml exists in the working
// directory or any of its parents
var ErrNoProject = errors.New("not in a coffer project (coffer.toml not found, run 'coffer init')")

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, err
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	loadDotEnv(projectRoot)

	file, source, err := loadCofferConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:       projectRoot,
		DataDir:           filepath.Join(projectRoot, DataDirName),
		Debug:             v.GetBool("debug"),
		NonInteractive:    v.GetBool("non_interactive"),
		JSON:              v.GetBool("json"),
		Timeout:           v.GetDuration("timeout"),
		ActorID:           file.Actor.UserID,
		Storage:           file.Storage,
		Guards:            file.Guards,
		StrictAddresses:   file.Validation.StrictAddresses,
		ExpenseCategories: file.Expenses.Categories,
		DefaultLockDays:   file.Proposals.DefaultLockDays,
		ConfigSource:      source,
	}

	// Environment and flags override the file
	if actor := v.GetString("as"); actor != "" {
		cfg.ActorID = actor
	}
	if backend := v.GetString("storage.backend"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if path := v.GetString("storage.path"); path != "" {
		cfg.Storage.Path = path
	}

	if cfg.DefaultLockDays < 0 {
		return nil, fmt.Errorf("%s: proposals.default_lock_days must not be negative", config.FileName)
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find coffer.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRootFrom(dir)
}

func findProjectRootFrom(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance. Environment variables
// use the COFFER_ prefix, e.g. COFFER_AS or COFFER_STORAGE_BACKEND.
func SetupViper(projectRoot string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("COFFER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", "1m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	return v
}

// BindFlags copies changed flags into v, mapping dashed names to viper keys
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
		}
	})
}
