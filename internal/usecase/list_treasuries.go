package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// TreasuryListResult contains the treasuries and their totals
type TreasuryListResult struct {
	Treasuries   []*models.Treasury
	TotalBalance decimal.Decimal
	Paused       int
}

// ListTreasuries is the use case for listing treasuries
type ListTreasuries struct {
	treasuries TreasuryRepository
}

// NewListTreasuries creates a new ListTreasuries use case
func NewListTreasuries(treasuries TreasuryRepository) *ListTreasuries {
	return &ListTreasuries{treasuries: treasuries}
}

// Run lists every treasury in creation order
func (uc *ListTreasuries) Run(ctx context.Context) (*TreasuryListResult, error) {
	treasuries, err := uc.treasuries.ListTreasuries(ctx)
	if err != nil {
		return nil, err
	}

	result := &TreasuryListResult{Treasuries: treasuries, TotalBalance: decimal.Zero}
	for _, t := range treasuries {
		result.TotalBalance = result.TotalBalance.Add(t.Balance)
		if t.IsEmergencyPaused {
			result.Paused++
		}
	}
	return result, nil
}

// ShowTreasuryParams contains parameters for showing a treasury
type ShowTreasuryParams struct {
	TreasuryRef string
	// HistoryDays is the length of the balance history; zero means 30
	HistoryDays int
}

// ShowTreasuryResult contains a treasury with its derived views
type ShowTreasuryResult struct {
	Treasury       *models.Treasury
	Proposals      []*models.Proposal
	Policies       []*models.Policy
	Spending       []CategoryTotal
	BalanceHistory []BalancePoint
}

// ShowTreasury is the use case for the treasury detail view
type ShowTreasury struct {
	resolver     *ResolveEntity
	proposals    ProposalRepository
	policies     PolicyRepository
	transactions TransactionRepository
	clock        Clock
}

// NewShowTreasury creates a new ShowTreasury use case
func NewShowTreasury(
	resolver *ResolveEntity,
	proposals ProposalRepository,
	policies PolicyRepository,
	transactions TransactionRepository,
	clock Clock,
) *ShowTreasury {
	return &ShowTreasury{
		resolver:     resolver,
		proposals:    proposals,
		policies:     policies,
		transactions: transactions,
		clock:        clock,
	}
}

// Run resolves the treasury and recomputes its derived views
func (uc *ShowTreasury) Run(ctx context.Context, params ShowTreasuryParams) (*ShowTreasuryResult, error) {
	treasury, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
	if err != nil {
		return nil, err
	}

	proposals, err := uc.proposals.ListProposals(ctx, ProposalFilter{TreasuryID: treasury.ID})
	if err != nil {
		return nil, err
	}
	sortProposalsNewestFirst(proposals)

	policies, err := uc.policies.ListPolicies(ctx, PolicyFilter{TreasuryID: treasury.ID})
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactions.ListTransactions(ctx, TransactionFilter{TreasuryID: treasury.ID})
	if err != nil {
		return nil, err
	}

	days := params.HistoryDays
	if days <= 0 {
		days = 30
	}

	return &ShowTreasuryResult{
		Treasury:       treasury,
		Proposals:      proposals,
		Policies:       policies,
		Spending:       SpendingByCategory(proposals),
		BalanceHistory: BalanceHistory(treasury, transactions, days, uc.clock.Now()),
	}, nil
}
