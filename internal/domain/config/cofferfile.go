package config

import "github.com/trebuchet-org/coffer/internal/domain"

// FileName is the project configuration file that marks a coffer project root
const FileName = "coffer.toml"

// CofferFileConfig represents the full coffer.toml configuration file
type CofferFileConfig struct {
	Storage    StorageConfig    `toml:"storage"`
	Guards     domain.Guards    `toml:"guards"`
	Validation ValidationConfig `toml:"validation"`
	Actor      ActorConfig      `toml:"actor"`
	Expenses   ExpensesConfig   `toml:"expenses"`
	Proposals  ProposalsConfig  `toml:"proposals"`
}

// ValidationConfig represents the [validation] section
type ValidationConfig struct {
	// StrictAddresses requires hex addresses for signers and recipients
	StrictAddresses bool `toml:"strict_addresses"`
}

// ActorConfig represents the [actor] section
type ActorConfig struct {
	UserID string `toml:"user_id"`
}

// ExpensesConfig represents the [expenses] section
type ExpensesConfig struct {
	Categories []string `toml:"categories"`
}

// ProposalsConfig represents the [proposals] section
type ProposalsConfig struct {
	DefaultLockDays int `toml:"default_lock_days"`
}

// DefaultExpenseCategories are offered when coffer.toml lists none
var DefaultExpenseCategories = []string{"Food", "Transport", "Shopping", "Entertainment", "Home", "Other"}

// DefaultCofferFileConfig returns the configuration used when coffer.toml
// is missing, and the base that a partial file is decoded onto.
func DefaultCofferFileConfig() *CofferFileConfig {
	return &CofferFileConfig{
		Storage:   StorageConfig{Backend: BackendJSON},
		Guards:    domain.DefaultGuards(),
		Expenses:  ExpensesConfig{Categories: append([]string(nil), DefaultExpenseCategories...)},
		Proposals: ProposalsConfig{DefaultLockDays: 3},
	}
}
