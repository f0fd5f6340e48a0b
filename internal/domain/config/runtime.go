package config

import (
	"time"

	"github.com/trebuchet-org/coffer/internal/domain"
)

// Storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Acting user for votes and proposals; empty means the first member
	ActorID string

	Storage           StorageConfig
	Guards            domain.Guards
	StrictAddresses   bool
	ExpenseCategories []string
	DefaultLockDays   int

	// Config source tracking
	ConfigSource string // path of coffer.toml, empty when running on defaults
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Backend string `toml:"backend" json:"backend"`
	// Path of the data file, relative to the project root
	Path string `toml:"path" json:"path"`
}

// DefaultLockDuration returns the proposal time-lock used when none is given.
func (c *RuntimeConfig) DefaultLockDuration() time.Duration {
	return time.Duration(c.DefaultLockDays) * 24 * time.Hour
}
