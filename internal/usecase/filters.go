package usecase

import (
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// ProposalFilter defines filtering options for proposals
type ProposalFilter struct {
	TreasuryID string
	Status     models.ProposalStatus
	Category   string
}

// Matches reports whether p satisfies every set field of the filter.
func (f ProposalFilter) Matches(p *models.Proposal) bool {
	return (f.TreasuryID == "" || p.TreasuryID == f.TreasuryID) &&
		(f.Status == "" || p.Status == f.Status) &&
		(f.Category == "" || p.Category == f.Category)
}

// PolicyFilter defines filtering options for policies
type PolicyFilter struct {
	TreasuryID  string
	Type        models.PolicyType
	EnabledOnly bool
}

// Matches reports whether p satisfies every set field of the filter.
func (f PolicyFilter) Matches(p *models.Policy) bool {
	return (f.TreasuryID == "" || p.TreasuryID == f.TreasuryID) &&
		(f.Type == "" || p.Type == f.Type) &&
		(!f.EnabledOnly || p.Enabled)
}

// TransactionFilter defines filtering options for ledger entries
type TransactionFilter struct {
	TreasuryID string
	ProposalID string
	Type       models.TransactionType
	Status     models.TransactionStatus
}

// Matches reports whether tx satisfies every set field of the filter.
func (f TransactionFilter) Matches(tx *models.Transaction) bool {
	return (f.TreasuryID == "" || tx.TreasuryID == f.TreasuryID) &&
		(f.ProposalID == "" || tx.ProposalID == f.ProposalID) &&
		(f.Type == "" || tx.Type == f.Type) &&
		(f.Status == "" || tx.Status == f.Status)
}
