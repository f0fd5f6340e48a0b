package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// DefaultFile is the data file name inside the data directory
const DefaultFile = "coffer.json"

// Store persists snapshots as one indented JSON document
type Store struct {
	path string
}

// New creates a JSON snapshot store writing to path
func New(path string) *Store {
	return &Store{path: path}
}

var _ usecase.SnapshotStore = (*Store)(nil)

// Location returns the data file path
func (s *Store) Location() string {
	return s.path
}

// Exists reports whether a data file is present
func (s *Store) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads the snapshot from disk
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return &snapshot, nil
}

// Save writes the snapshot next to the target and renames it into place,
// so readers never observe a partially written file.
func (s *Store) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
