package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
)

// Treasury is a named pool of funds governed by a signer set and an
// approval threshold.
type Treasury struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Balance           decimal.Decimal `json:"balance"`
	Threshold         int             `json:"threshold"`
	Signers           []string        `json:"signers"`
	CreatedAt         time.Time       `json:"createdAt"`
	IsEmergencyPaused bool            `json:"isEmergencyPaused"`
}

// CreateTreasuryInput holds the parsed fields of a treasury creation request
type CreateTreasuryInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Threshold   int      `json:"threshold" validate:"gte=1"`
	Signers     []string `json:"signers" validate:"min=1"`
}

// NewTreasury validates input and builds an unpaused treasury with a zero balance.
// With strictAddresses set every signer must be a hex address and is stored
// in checksum form.
func NewTreasury(id string, input CreateTreasuryInput, strictAddresses bool, now time.Time) (*Treasury, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	signers, dup := uniqueAddresses(input.Signers)
	input.Signers = signers

	errs := validateInput(input)
	if dup {
		errs.Add("signers", "must not contain duplicate addresses")
	}
	for i, s := range signers {
		signers[i] = checkAddress(&errs, "signers", s, strictAddresses)
	}
	if len(signers) > 0 && input.Threshold > len(signers) {
		errs.Add("threshold", "cannot exceed number of signers (%d)", len(signers))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return &Treasury{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Balance:     decimal.Zero,
		Threshold:   input.Threshold,
		Signers:     signers,
		CreatedAt:   now,
	}, nil
}

// Validate checks the structural invariants of a treasury loaded from
// seed or persisted data.
func (t *Treasury) Validate() error {
	var errs domain.ValidationErrors
	if t.ID == "" {
		errs.Add("id", "is required")
	}
	if len(t.Signers) == 0 {
		errs.Add("signers", "must contain at least 1 entry")
	}
	unique, dup := uniqueAddresses(t.Signers)
	if dup {
		errs.Add("signers", "must not contain duplicate addresses")
	} else if len(unique) != len(t.Signers) {
		errs.Add("signers", "must not contain blank entries")
	}
	if t.Threshold < 1 || t.Threshold > len(t.Signers) {
		errs.Add("threshold", "must be between 1 and %d", len(t.Signers))
	}
	if t.Balance.IsNegative() {
		errs.Add("balance", "must not be negative")
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("treasury %q: %w", t.ID, err)
	}
	return nil
}

// IsSigner reports whether addr belongs to the signer set.
func (t *Treasury) IsSigner(addr string) bool {
	return slices.ContainsFunc(t.Signers, func(s string) bool { return SameAddress(s, addr) })
}

// TogglePause flips the emergency pause flag and returns the new value.
func (t *Treasury) TogglePause() bool {
	t.IsEmergencyPaused = !t.IsEmergencyPaused
	return t.IsEmergencyPaused
}

// Debit removes amount from the balance.
func (t *Treasury) Debit(amount decimal.Decimal) error {
	if t.Balance.LessThan(amount) {
		return domain.NewValidationError("amount", "insufficient treasury balance (%s available)", t.Balance.String())
	}
	t.Balance = t.Balance.Sub(amount)
	return nil
}

// Clone returns a deep copy of the treasury.
func (t *Treasury) Clone() *Treasury {
	clone := *t
	clone.Signers = slices.Clone(t.Signers)
	return &clone
}
