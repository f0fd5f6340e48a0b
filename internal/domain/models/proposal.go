package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
)

// ProposalStatus represents the lifecycle status of a proposal
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExecuted ProposalStatus = "executed"
	ProposalStatusExpired  ProposalStatus = "expired"
)

// AllProposalStatuses lists every declared status in display order.
var AllProposalStatuses = []ProposalStatus{
	ProposalStatusPending,
	ProposalStatusApproved,
	ProposalStatusRejected,
	ProposalStatusExecuted,
	ProposalStatusExpired,
}

// proposalTransitions is the monotonic state machine. Rejected, executed and
// expired are terminal.
var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusPending:  {ProposalStatusApproved, ProposalStatusRejected, ProposalStatusExpired},
	ProposalStatusApproved: {ProposalStatusExecuted},
}

// IsValid reports whether s is a declared status.
func (s ProposalStatus) IsValid() bool {
	return slices.Contains(AllProposalStatuses, s)
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	return slices.Contains(proposalTransitions[s], next)
}

// ParseProposalStatus converts user input into a status.
func ParseProposalStatus(raw string) (ProposalStatus, error) {
	s := ProposalStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", domain.NewValidationError("status", "must be one of: pending, approved, rejected, executed, expired")
	}
	return s, nil
}

// Vote is one signer's approve/reject decision on a proposal.
type Vote struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Approved  bool      `json:"approved"`
	Timestamp time.Time `json:"timestamp"`
	Signature string    `json:"signature"`
}

// Proposal is a request to move funds out of a treasury, gated by votes and
// a time-lock.
type Proposal struct {
	ID            string          `json:"id"`
	TreasuryID    string          `json:"treasuryId"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Recipient     string          `json:"recipient"`
	Category      string          `json:"category"`
	Status        ProposalStatus  `json:"status"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	LockUntil     time.Time       `json:"lockUntil"`
	ExecutedAt    *time.Time      `json:"executedAt,omitempty"`
	Votes         []Vote          `json:"votes"`
	RequiredVotes int             `json:"requiredVotes"`
}

// CreateProposalInput holds the parsed fields of a proposal creation request
type CreateProposalInput struct {
	TreasuryID   string          `json:"treasury" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"-"`
	Recipient    string          `json:"recipient" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	LockDuration time.Duration   `json:"lockDuration" validate:"-"`
}

// NewProposal validates input and builds a pending proposal against treasury.
// RequiredVotes is copied from the treasury threshold at this instant and
// never recomputed.
func NewProposal(id string, input CreateProposalInput, treasury *Treasury, createdBy string, strictAddresses bool, now time.Time) (*Proposal, error) {
	input.TreasuryID = strings.TrimSpace(input.TreasuryID)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Recipient = strings.TrimSpace(input.Recipient)
	input.Category = strings.TrimSpace(input.Category)

	errs := validateInput(input)
	checkPositive(&errs, "amount", input.Amount)
	if input.LockDuration <= 0 {
		errs.Add("lockDuration", "is required")
	}
	if input.Recipient != "" {
		input.Recipient = checkAddress(&errs, "recipient", input.Recipient, strictAddresses)
	}
	if treasury == nil && input.TreasuryID != "" {
		errs.Add("treasury", "treasury %q not found", input.TreasuryID)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return &Proposal{
		ID:            id,
		TreasuryID:    treasury.ID,
		Title:         input.Title,
		Description:   input.Description,
		Amount:        input.Amount,
		Recipient:     input.Recipient,
		Category:      input.Category,
		Status:        ProposalStatusPending,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		LockUntil:     now.Add(input.LockDuration),
		Votes:         []Vote{},
		RequiredVotes: treasury.Threshold,
	}, nil
}

// Validate checks the structural invariants of a proposal loaded from seed
// or persisted data.
func (p *Proposal) Validate() error {
	var errs domain.ValidationErrors
	if p.ID == "" {
		errs.Add("id", "is required")
	}
	if p.TreasuryID == "" {
		errs.Add("treasuryId", "is required")
	}
	if !p.Status.IsValid() {
		errs.Add("status", "unknown status %q", p.Status)
	}
	if !p.Amount.IsPositive() {
		errs.Add("amount", "must be greater than 0")
	}
	if p.RequiredVotes < 1 {
		errs.Add("requiredVotes", "must be at least 1")
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("proposal %q: %w", p.ID, err)
	}
	return nil
}

// ApprovalCount returns the number of affirmative votes.
func (p *Proposal) ApprovalCount() int {
	n := 0
	for _, v := range p.Votes {
		if v.Approved {
			n++
		}
	}
	return n
}

// RejectionCount returns the number of negative votes.
func (p *Proposal) RejectionCount() int {
	return len(p.Votes) - p.ApprovalCount()
}

// HasVoted reports whether userID already cast a vote.
func (p *Proposal) HasVoted(userID string) bool {
	return slices.ContainsFunc(p.Votes, func(v Vote) bool { return v.UserID == userID })
}

// IsLocked reports whether the time-lock is still running at now.
func (p *Proposal) IsLocked(now time.Time) bool {
	return p.LockUntil.After(now)
}

// TransitionTo moves the proposal to next if the state machine allows it.
func (p *Proposal) TransitionTo(next ProposalStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return &domain.InvalidTransitionError{ProposalID: p.ID, From: string(p.Status), To: string(next)}
	}
	p.Status = next
	return nil
}

// RecordVote appends v and approves the proposal once the affirmative votes
// reach RequiredVotes. Negative votes never change the status. Only pending
// proposals advance, so a vote recorded on any other status leaves it as is.
// It reports whether the status changed.
func (p *Proposal) RecordVote(v Vote) bool {
	p.Votes = append(p.Votes, v)
	if p.Status != ProposalStatusPending || p.ApprovalCount() < p.RequiredVotes {
		return false
	}
	p.Status = ProposalStatusApproved
	return true
}

// MarkExecuted moves an approved proposal to executed.
func (p *Proposal) MarkExecuted(now time.Time) error {
	if err := p.TransitionTo(ProposalStatusExecuted); err != nil {
		return err
	}
	p.ExecutedAt = &now
	return nil
}

// ApprovalProgress is the affirmative vote count against the requirement.
type ApprovalProgress struct {
	Approved int     `json:"approved"`
	Rejected int     `json:"rejected"`
	Required int     `json:"required"`
	Fraction float64 `json:"fraction"`
}

// Progress computes the approval progress of the proposal.
func (p *Proposal) Progress() ApprovalProgress {
	progress := ApprovalProgress{
		Approved: p.ApprovalCount(),
		Rejected: p.RejectionCount(),
		Required: p.RequiredVotes,
	}
	if p.RequiredVotes > 0 {
		progress.Fraction = float64(progress.Approved) / float64(p.RequiredVotes)
	}
	return progress
}

// Clone returns a deep copy of the proposal.
func (p *Proposal) Clone() *Proposal {
	clone := *p
	clone.Votes = slices.Clone(p.Votes)
	if p.ExecutedAt != nil {
		executedAt := *p.ExecutedAt
		clone.ExecutedAt = &executedAt
	}
	return &clone
}
