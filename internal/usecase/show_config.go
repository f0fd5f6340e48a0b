package usecase

import (
	"context"

	"github.com/trebuchet-org/coffer/internal/domain/config"
)

// ShowConfigResult contains the resolved configuration
type ShowConfigResult struct {
	Config       *config.RuntimeConfig
	ConfigPath   string
	Exists       bool
	DataLocation string
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config    *config.RuntimeConfig
	snapshots SnapshotStore
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig, snapshots SnapshotStore) *ShowConfig {
	return &ShowConfig{config: cfg, snapshots: snapshots}
}

// Run reports the effective configuration and where data lives
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	return &ShowConfigResult{
		Config:       uc.config,
		ConfigPath:   uc.config.ConfigSource,
		Exists:       uc.config.ConfigSource != "",
		DataLocation: uc.snapshots.Location(),
	}, nil
}
