package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// recentProposalLimit caps the recent activity list
const recentProposalLimit = 5

// DashboardParams contains parameters for the dashboard
type DashboardParams struct {
	// TreasuryRef narrows every figure to one treasury
	TreasuryRef string
	ActorRef    string
}

// DashboardStats are the headline figures of the dashboard
type DashboardStats struct {
	TotalBalance          decimal.Decimal `json:"totalBalance"`
	TotalTreasuries       int             `json:"totalTreasuries"`
	PausedTreasuries      int             `json:"pausedTreasuries"`
	ActiveProposals       int             `json:"activeProposals"`
	CompletedTransactions int             `json:"completedTransactions"`
	PendingVotes          int             `json:"pendingVotes"`
}

// DashboardResult contains the dashboard figures and lists
type DashboardResult struct {
	Stats           DashboardStats
	Actor           *models.User
	RecentProposals []ProposalView
	Spending        []CategoryTotal
}

// GetDashboard recomputes the dashboard from the current state
type GetDashboard struct {
	resolver     *ResolveEntity
	treasuries   TreasuryRepository
	proposals    ProposalRepository
	transactions TransactionRepository
	clock        Clock
}

// NewGetDashboard creates a new GetDashboard use case
func NewGetDashboard(
	resolver *ResolveEntity,
	treasuries TreasuryRepository,
	proposals ProposalRepository,
	transactions TransactionRepository,
	clock Clock,
) *GetDashboard {
	return &GetDashboard{
		resolver:     resolver,
		treasuries:   treasuries,
		proposals:    proposals,
		transactions: transactions,
		clock:        clock,
	}
}

// Run computes the dashboard. PendingVotes counts pending proposals the
// acting user has not voted on yet.
func (uc *GetDashboard) Run(ctx context.Context, params DashboardParams) (*DashboardResult, error) {
	var treasuries []*models.Treasury
	if params.TreasuryRef != "" {
		treasury, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
		if err != nil {
			return nil, err
		}
		treasuries = []*models.Treasury{treasury}
	} else {
		all, err := uc.treasuries.ListTreasuries(ctx)
		if err != nil {
			return nil, err
		}
		treasuries = all
	}

	var treasuryID string
	if params.TreasuryRef != "" {
		treasuryID = treasuries[0].ID
	}

	proposals, err := uc.proposals.ListProposals(ctx, ProposalFilter{TreasuryID: treasuryID})
	if err != nil {
		return nil, err
	}
	sortProposalsNewestFirst(proposals)

	transactions, err := uc.transactions.ListTransactions(ctx, TransactionFilter{
		TreasuryID: treasuryID,
		Status:     models.TransactionStatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	actor, err := uc.resolver.ResolveActor(ctx, params.ActorRef)
	if err != nil && params.ActorRef != "" {
		return nil, err
	}

	result := &DashboardResult{
		Stats: DashboardStats{
			TotalBalance:          decimal.Zero,
			TotalTreasuries:       len(treasuries),
			CompletedTransactions: len(transactions),
		},
		Actor:    actor,
		Spending: SpendingByCategory(proposals),
	}
	for _, t := range treasuries {
		result.Stats.TotalBalance = result.Stats.TotalBalance.Add(t.Balance)
		if t.IsEmergencyPaused {
			result.Stats.PausedTreasuries++
		}
	}

	now := uc.clock.Now()
	for _, p := range proposals {
		if p.Status == models.ProposalStatusPending {
			result.Stats.ActiveProposals++
			if actor == nil || !p.HasVoted(actor.ID) {
				result.Stats.PendingVotes++
			}
		}
		if len(result.RecentProposals) < recentProposalLimit {
			result.RecentProposals = append(result.RecentProposals, newProposalView(p, now))
		}
	}
	return result, nil
}
