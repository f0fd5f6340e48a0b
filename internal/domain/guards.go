package domain

// Guards switches the enforcement checks applied by the voting engine and
// the treasury registry. Every guard is enabled by default; disabling one
// accepts the corresponding input unchecked.
type Guards struct {
	// RejectDuplicateVotes refuses a second vote from the same voter
	RejectDuplicateVotes bool `toml:"reject_duplicate_votes" json:"rejectDuplicateVotes"`
	// RequirePending refuses votes on proposals that left the pending state
	RequirePending bool `toml:"require_pending" json:"requirePending"`
	// EnforceTimeLock refuses votes and execution before LockUntil
	EnforceTimeLock bool `toml:"enforce_time_lock" json:"enforceTimeLock"`
	// EnforcePause refuses proposal, vote and policy changes on paused treasuries
	EnforcePause bool `toml:"enforce_pause" json:"enforcePause"`
}

// DefaultGuards returns the guard set with every check enabled.
func DefaultGuards() Guards {
	return Guards{
		RejectDuplicateVotes: true,
		RequirePending:       true,
		EnforceTimeLock:      true,
		EnforcePause:         true,
	}
}
