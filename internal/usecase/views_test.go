package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

func TestSpendingByCategory(t *testing.T) {
	proposals := []*models.Proposal{
		{Category: "Events", Amount: decimal.NewFromInt(100), Status: models.ProposalStatusExecuted},
		{Category: "Security", Amount: decimal.NewFromInt(300), Status: models.ProposalStatusExecuted},
		{Category: "Events", Amount: decimal.NewFromInt(100), Status: models.ProposalStatusExecuted},
		{Category: "Events", Amount: decimal.NewFromInt(1000), Status: models.ProposalStatusPending},
		{Category: "Legal", Amount: decimal.NewFromInt(50), Status: models.ProposalStatusApproved},
	}

	totals := usecase.SpendingByCategory(proposals)
	require.Len(t, totals, 2)

	assert.Equal(t, "Security", totals[0].Category)
	assert.True(t, decimal.NewFromInt(300).Equal(totals[0].Amount))
	assert.Equal(t, 1, totals[0].Count)
	assert.InDelta(t, 60.0, totals[0].Percentage, 0.001)

	assert.Equal(t, "Events", totals[1].Category)
	assert.True(t, decimal.NewFromInt(200).Equal(totals[1].Amount))
	assert.Equal(t, 2, totals[1].Count)
	assert.InDelta(t, 40.0, totals[1].Percentage, 0.001)

	assert.Empty(t, usecase.SpendingByCategory(nil))
}

func TestBalanceHistory(t *testing.T) {
	snap := fixture()
	treasury := &snap.Treasuries[1]
	transactions := lo.Map(snap.Transactions, func(tx models.Transaction, _ int) *models.Transaction { return &tx })

	points := usecase.BalanceHistory(treasury, transactions, 7, now)
	require.Len(t, points, 7)

	want := []int64{0, 700, 700, 700, 500, 500, 500}
	for i, p := range points {
		assert.True(t, decimal.NewFromInt(want[i]).Equal(p.Balance), "day %d: got %s want %d", i, p.Balance, want[i])
	}

	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today, points[6].Date)
	assert.Equal(t, today.AddDate(0, 0, -6), points[0].Date)
	assert.True(t, treasury.Balance.Equal(points[len(points)-1].Balance))

	assert.Nil(t, usecase.BalanceHistory(treasury, transactions, 0, now))
}

func TestBalanceHistory_IgnoresOtherTreasuriesAndPendingEntries(t *testing.T) {
	treasury := &models.Treasury{ID: "t1", Balance: decimal.NewFromInt(100)}
	transactions := []*models.Transaction{
		{TreasuryID: "t2", Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(50),
			Status: models.TransactionStatusCompleted, Timestamp: now.Add(-time.Hour)},
		{TreasuryID: "t1", Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromInt(50),
			Status: models.TransactionStatusPending, Timestamp: now.AddDate(0, 0, -1)},
	}

	for _, p := range usecase.BalanceHistory(treasury, transactions, 3, now) {
		assert.True(t, decimal.NewFromInt(100).Equal(p.Balance))
	}
}

func TestSummarizeTransactions(t *testing.T) {
	snap := fixture()
	transactions := lo.Map(snap.Transactions, func(tx models.Transaction, _ int) *models.Transaction { return &tx })
	transactions = append(transactions, &models.Transaction{
		ID: "tx-4", TreasuryID: "t1", Type: models.TransactionTypeTransfer, Amount: decimal.NewFromInt(10),
		Status: models.TransactionStatusFailed,
	})

	summary := usecase.SummarizeTransactions(transactions)
	assert.Equal(t, 4, summary.Count)
	assert.True(t, decimal.NewFromInt(1900).Equal(summary.CompletedVolume), "volume %s", summary.CompletedVolume)
	assert.True(t, decimal.RequireFromString("0.002").Equal(summary.TotalGas))
	assert.Equal(t, map[models.TransactionType]int{
		models.TransactionTypeDeposit:    2,
		models.TransactionTypeWithdrawal: 1,
		models.TransactionTypeTransfer:   1,
	}, summary.ByType)
	assert.Equal(t, 3, summary.ByStatus[models.TransactionStatusCompleted])
	assert.Equal(t, 1, summary.ByStatus[models.TransactionStatusFailed])
}

func TestGetDashboard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := usecase.NewGetDashboard(e.resolver, e.store, e.store, e.store, e.clock)

	res, err := uc.Run(ctx, usecase.DashboardParams{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(res.Stats.TotalBalance))
	assert.Equal(t, 2, res.Stats.TotalTreasuries)
	assert.Equal(t, 0, res.Stats.PausedTreasuries)
	assert.Equal(t, 2, res.Stats.ActiveProposals)
	assert.Equal(t, 3, res.Stats.CompletedTransactions)
	assert.Equal(t, 2, res.Stats.PendingVotes)
	require.NotNil(t, res.Actor)
	assert.Equal(t, "u1", res.Actor.ID)

	require.Len(t, res.RecentProposals, 4)
	assert.Equal(t, "p-locked", res.RecentProposals[0].Proposal.ID)
	assert.True(t, res.RecentProposals[0].Locked)

	require.Len(t, res.Spending, 1)
	assert.Equal(t, "Grants", res.Spending[0].Category)

	// once Bob votes, his pending count drops but Alice's does not
	_, err = vote(t, e, "p-open", "Bob", true)
	require.NoError(t, err)

	bob, err := uc.Run(ctx, usecase.DashboardParams{ActorRef: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, bob.Stats.PendingVotes)

	alice, err := uc.Run(ctx, usecase.DashboardParams{ActorRef: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, 2, alice.Stats.PendingVotes)
}

func TestGetDashboard_SingleTreasury(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewGetDashboard(e.resolver, e.store, e.store, e.store, e.clock)

	res, err := uc.Run(context.Background(), usecase.DashboardParams{TreasuryRef: "Grants"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(res.Stats.TotalBalance))
	assert.Equal(t, 1, res.Stats.TotalTreasuries)
	assert.Equal(t, 0, res.Stats.ActiveProposals)
	assert.Equal(t, 2, res.Stats.CompletedTransactions)
}

func TestListViews(t *testing.T) {
	ctx := context.Background()

	t.Run("treasuries", func(t *testing.T) {
		e := newEnv(t)
		res, err := usecase.NewListTreasuries(e.store).Run(ctx)
		require.NoError(t, err)
		assert.Len(t, res.Treasuries, 2)
		assert.True(t, decimal.NewFromInt(1500).Equal(res.TotalBalance))
	})

	t.Run("proposals by status newest first", func(t *testing.T) {
		e := newEnv(t)
		res, err := usecase.NewListProposals(e.resolver, e.store, e.clock).
			Run(ctx, usecase.ListProposalsParams{Status: "PENDING", TreasuryRef: "ops"})
		require.NoError(t, err)

		ids := lo.Map(res.Proposals, func(v usecase.ProposalView, _ int) string { return v.Proposal.ID })
		assert.Equal(t, []string{"p-locked", "p-open"}, ids)
		assert.Equal(t, 2, res.ByStatus[models.ProposalStatusPending])
	})

	t.Run("proposals with unknown status", func(t *testing.T) {
		e := newEnv(t)
		_, err := usecase.NewListProposals(e.resolver, e.store, e.clock).
			Run(ctx, usecase.ListProposalsParams{Status: "lost"})
		require.Error(t, err)
	})

	t.Run("transactions by type", func(t *testing.T) {
		e := newEnv(t)
		res, err := usecase.NewListTransactions(e.resolver, e.store).
			Run(ctx, usecase.ListTransactionsParams{Type: "deposit"})
		require.NoError(t, err)
		require.Len(t, res.Transactions, 2)
		assert.Equal(t, "tx-3", res.Transactions[0].ID)
		assert.True(t, decimal.NewFromInt(1700).Equal(res.Summary.CompletedVolume))
	})

	t.Run("members", func(t *testing.T) {
		e := newEnv(t)
		e.cfg.ActorID = "Carol"
		res, err := usecase.NewListMembers(e.resolver, e.store).Run(ctx)
		require.NoError(t, err)
		assert.Len(t, res.Members, 3)
		assert.Equal(t, "u3", res.ActorID)
		assert.Equal(t, 1, res.ByRole[models.UserRoleVoter])
	})

	t.Run("policies enabled only", func(t *testing.T) {
		e := newEnv(t)
		_, err := usecase.NewTogglePolicy(e.cfg, e.resolver, e.store, e.log).
			Run(ctx, usecase.TogglePolicyParams{PolicyRef: "pol-1"})
		require.NoError(t, err)

		res, err := usecase.NewListPolicies(e.resolver, e.store, e.store).
			Run(ctx, usecase.ListPoliciesParams{EnabledOnly: true})
		require.NoError(t, err)
		assert.Empty(t, res.Policies)
		assert.Equal(t, "Ops", res.TreasuryNames["t1"])
	})
}

func TestShowTreasury(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewShowTreasury(e.resolver, e.store, e.store, e.store, e.clock)

	res, err := uc.Run(context.Background(), usecase.ShowTreasuryParams{TreasuryRef: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "Ops", res.Treasury.Name)
	assert.Len(t, res.Proposals, 3)
	assert.Len(t, res.Policies, 1)
	assert.Len(t, res.BalanceHistory, 30)
	assert.True(t, decimal.NewFromInt(1000).Equal(res.BalanceHistory[29].Balance))
	assert.True(t, decimal.Zero.Equal(res.BalanceHistory[0].Balance))
}

func TestShowProposal(t *testing.T) {
	e := newEnv(t)
	uc := usecase.NewShowProposal(e.resolver, e.store, e.store, e.clock)

	res, err := uc.Run(context.Background(), usecase.ShowProposalParams{ProposalRef: "p-locked"})
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, 24*time.Hour, res.LockRemaining)
	assert.Equal(t, "Ops", res.Treasury.Name)
	assert.Empty(t, res.Transactions)

	res, err = uc.Run(context.Background(), usecase.ShowProposalParams{ProposalRef: "p-paid"})
	require.NoError(t, err)
	assert.False(t, res.Locked)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "tx-2", res.Transactions[0].ID)
}
