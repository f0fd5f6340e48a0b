package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// ListProposalsParams contains parameters for listing proposals
type ListProposalsParams struct {
	TreasuryRef string
	Status      string
	Category    string
}

// ProposalView is a proposal with its computed approval state
type ProposalView struct {
	Proposal *models.Proposal
	Progress models.ApprovalProgress
	Locked   bool
}

// ProposalListResult contains the result of listing proposals
type ProposalListResult struct {
	Proposals []ProposalView
	ByStatus  map[models.ProposalStatus]int
}

// ListProposals is the use case for listing proposals
type ListProposals struct {
	resolver  *ResolveEntity
	proposals ProposalRepository
	clock     Clock
}

// NewListProposals creates a new ListProposals use case
func NewListProposals(resolver *ResolveEntity, proposals ProposalRepository, clock Clock) *ListProposals {
	return &ListProposals{resolver: resolver, proposals: proposals, clock: clock}
}

// Run lists matching proposals, newest first
func (uc *ListProposals) Run(ctx context.Context, params ListProposalsParams) (*ProposalListResult, error) {
	filter := ProposalFilter{Category: strings.TrimSpace(params.Category)}

	if params.Status != "" {
		status, err := models.ParseProposalStatus(params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	if params.TreasuryRef != "" {
		treasury, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
		if err != nil {
			return nil, err
		}
		filter.TreasuryID = treasury.ID
	}

	proposals, err := uc.proposals.ListProposals(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortProposalsNewestFirst(proposals)

	now := uc.clock.Now()
	result := &ProposalListResult{
		Proposals: make([]ProposalView, 0, len(proposals)),
		ByStatus:  make(map[models.ProposalStatus]int),
	}
	for _, p := range proposals {
		result.Proposals = append(result.Proposals, newProposalView(p, now))
		result.ByStatus[p.Status]++
	}
	return result, nil
}

func newProposalView(p *models.Proposal, now time.Time) ProposalView {
	return ProposalView{
		Proposal: p,
		Progress: p.Progress(),
		Locked:   p.IsLocked(now),
	}
}

// ShowProposalParams contains parameters for showing a proposal
type ShowProposalParams struct {
	ProposalRef string
}

// ShowProposalResult contains a proposal with its context
type ShowProposalResult struct {
	ProposalView
	Treasury      *models.Treasury
	LockRemaining time.Duration
	Transactions  []*models.Transaction
}

// ShowProposal is the use case for the proposal detail view
type ShowProposal struct {
	resolver     *ResolveEntity
	treasuries   TreasuryRepository
	transactions TransactionRepository
	clock        Clock
}

// NewShowProposal creates a new ShowProposal use case
func NewShowProposal(
	resolver *ResolveEntity,
	treasuries TreasuryRepository,
	transactions TransactionRepository,
	clock Clock,
) *ShowProposal {
	return &ShowProposal{
		resolver:     resolver,
		treasuries:   treasuries,
		transactions: transactions,
		clock:        clock,
	}
}

// Run resolves the proposal and loads its treasury and linked ledger entries
func (uc *ShowProposal) Run(ctx context.Context, params ShowProposalParams) (*ShowProposalResult, error) {
	proposal, err := uc.resolver.ResolveProposal(ctx, params.ProposalRef)
	if err != nil {
		return nil, err
	}

	treasury, err := uc.treasuries.GetTreasury(ctx, proposal.TreasuryID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactions.ListTransactions(ctx, TransactionFilter{ProposalID: proposal.ID})
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	result := &ShowProposalResult{
		ProposalView: newProposalView(proposal, now),
		Treasury:     treasury,
		Transactions: transactions,
	}
	if result.Locked {
		result.LockRemaining = proposal.LockUntil.Sub(now)
	}
	return result, nil
}
