package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidStateTransition is returned when an operation requires a
	// proposal status the proposal is not in
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrProposalLocked is returned when a proposal is acted upon before its time-lock expires
	ErrProposalLocked = errors.New("proposal is time-locked")

	// ErrTreasuryPaused is returned for mutating operations against a paused treasury
	ErrTreasuryPaused = errors.New("treasury is emergency paused")

	// ErrDuplicateVote is returned when a voter votes twice on the same proposal
	ErrDuplicateVote = errors.New("voter has already voted")

	// ErrNotInitialized is returned when no persisted state exists yet
	ErrNotInitialized = errors.New("coffer data not initialized (run 'coffer init')")
)

// ValidationError reports malformed input for a single field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors collects every field failure found while validating one input.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual field errors to errors.Is/As.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Add appends a field failure.
func (v *ValidationErrors) Add(field, format string, args ...any) {
	*v = append(*v, NewValidationError(field, format, args...))
}

// Fields returns the names of the offending fields in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, len(v))
	for i, e := range v {
		fields[i] = e.Field
	}
	return fields
}

// Err returns nil when no failures were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// InvalidTransitionError describes a rejected proposal status change.
type InvalidTransitionError struct {
	ProposalID string
	From       string
	To         string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("proposal %s: cannot move from %s to %s", e.ProposalID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// IsUserError reports whether err is recoverable by correcting input, as
// opposed to an I/O or programming failure.
func IsUserError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrInvalidStateTransition) ||
		errors.Is(err, ErrProposalLocked) ||
		errors.Is(err, ErrTreasuryPaused) ||
		errors.Is(err, ErrDuplicateVote) ||
		errors.Is(err, ErrNotFound)
}
