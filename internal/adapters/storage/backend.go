// Package storage selects the snapshot persistence backend configured for a project.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/trebuchet-org/coffer/internal/adapters/storage/jsonfile"
	"github.com/trebuchet-org/coffer/internal/adapters/storage/sqlite"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// NewSnapshotStore builds the backend named by cfg.Storage.Backend.
// A relative storage path is resolved against the project root; an empty one
// falls back to the backend's default file inside the data directory.
func NewSnapshotStore(cfg *config.RuntimeConfig) (usecase.SnapshotStore, error) {
	switch cfg.Storage.Backend {
	case "", config.BackendJSON:
		return jsonfile.New(dataPath(cfg, jsonfile.DefaultFile)), nil
	case config.BackendSQLite:
		return sqlite.New(dataPath(cfg, sqlite.DefaultFile)), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected %q or %q)",
			cfg.Storage.Backend, config.BackendJSON, config.BackendSQLite)
	}
}

func dataPath(cfg *config.RuntimeConfig, defaultFile string) string {
	path := cfg.Storage.Path
	if path == "" {
		path = filepath.Join(cfg.DataDir, defaultFile)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	return path
}
