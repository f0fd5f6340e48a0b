package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"2450000", "$2,450,000.00"},
		{"1250.5", "$1,250.50"},
		{"999.999", "$1,000.00"},
		{"-3.456", "-$3.46"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatError(t *testing.T) {
	t.Run("validation errors per field", func(t *testing.T) {
		var errs domain.ValidationErrors
		errs.Add("amount", "must be greater than zero")
		errs.Add("title", "is required")

		got := FormatError(fmt.Errorf("create proposal: %w", errs))
		assert.Equal(t, "❌ Invalid input:\n   • amount: must be greater than zero\n   • title: is required", got)
	})

	t.Run("wrapped sentinel keeps context", func(t *testing.T) {
		got := FormatError(fmt.Errorf("proposal 'p9': %w", domain.ErrNotFound))
		assert.Equal(t, "❌ Proposal 'p9': not found", got)
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "❌ Boom", FormatError(errors.New("boom")))
	})
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "elapsed", FormatDuration(0))
	assert.Equal(t, "2d 3h", FormatDuration(51*time.Hour))
	assert.Equal(t, "5h", FormatDuration(5*time.Hour+10*time.Minute))
	assert.Equal(t, "11m", FormatDuration(10*time.Minute+30*time.Second))
}

func TestLabelAndShortID(t *testing.T) {
	assert.Equal(t, "Spending Limit", Label(string(models.PolicyTypeSpendingLimit)))
	assert.Equal(t, "Whitelist", Label(string(models.PolicyTypeWhitelist)))
	assert.Equal(t, "3f2a9c1d", ShortID("3f2a9c1d-0b7e-4c1a-9d55-0f4b1e2a7c90"))
	assert.Equal(t, "t1", ShortID("t1"))
}

func TestPolicyRules(t *testing.T) {
	daily := decimal.NewFromInt(1000)
	perTx := decimal.NewFromInt(250)

	tests := []struct {
		name   string
		policy *models.Policy
		want   string
	}{
		{
			name:   "spending limit skips unset limits",
			policy: &models.Policy{Type: models.PolicyTypeSpendingLimit, Config: models.PolicyConfig{DailyLimit: &daily, PerTransactionLimit: &perTx}},
			want:   "daily $1,000.00, per tx $250.00",
		},
		{
			name:   "single address",
			policy: &models.Policy{Type: models.PolicyTypeWhitelist, Config: models.PolicyConfig{Addresses: []string{"0xabc"}}},
			want:   "1 address: 0xabc",
		},
		{
			name:   "address count",
			policy: &models.Policy{Type: models.PolicyTypeBlacklist, Config: models.PolicyConfig{Addresses: []string{"0xabc", "0xdef"}}},
			want:   "2 addresses",
		},
		{
			name: "categories",
			policy: &models.Policy{Type: models.PolicyTypeCategoryLimit, Config: models.PolicyConfig{Categories: []models.CategoryLimit{
				{Name: "Marketing", Limit: decimal.NewFromInt(150000)},
				{Name: "Events", Limit: decimal.NewFromInt(80000)},
			}}},
			want: "Marketing $150,000.00, Events $80,000.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyRules(tt.policy))
		})
	}
}

func TestTreasuryRenderer_RenderList(t *testing.T) {
	result := &usecase.TreasuryListResult{
		Treasuries: []*models.Treasury{
			{ID: "treasury-1", Name: "Main", Balance: decimal.NewFromInt(2450000), Threshold: 3, Signers: []string{"a", "b", "c", "d"}},
			{ID: "treasury-2", Name: "Dev Fund", Balance: decimal.NewFromInt(500), Threshold: 1, Signers: []string{"a"}, IsEmergencyPaused: true},
		},
		TotalBalance: decimal.NewFromInt(2450500),
		Paused:       1,
	}

	var out bytes.Buffer
	require.NoError(t, NewTreasuryRenderer(&out, false).RenderList(result))

	text := out.String()
	assert.Contains(t, text, "Main")
	assert.Contains(t, text, "$2,450,000.00")
	assert.Contains(t, text, "3 of 4")
	assert.Contains(t, text, "PAUSED")
	assert.Contains(t, text, "Total balance: $2,450,500.00 across 2 treasuries (1 paused)")
}

func TestTreasuryRenderer_JSON(t *testing.T) {
	result := &usecase.TreasuryListResult{
		Treasuries:   []*models.Treasury{{ID: "t1", Name: "Ops", Balance: decimal.NewFromInt(10), Threshold: 1, Signers: []string{"a"}}},
		TotalBalance: decimal.NewFromInt(10),
	}

	var out bytes.Buffer
	require.NoError(t, NewTreasuryRenderer(&out, true).RenderList(result))

	assert.True(t, strings.HasPrefix(out.String(), "{"))
	assert.Contains(t, out.String(), `"name": "Ops"`)
	assert.Contains(t, out.String(), `"balance": "10"`)
}

func TestProposalRenderer_RenderVote(t *testing.T) {
	result := &usecase.CastVoteResult{
		Proposal:      &models.Proposal{ID: "p1", Title: "Audit", Status: models.ProposalStatusApproved},
		Vote:          models.Vote{UserID: "u2", UserName: "Bob", Approved: true},
		StatusChanged: true,
		Progress:      models.ApprovalProgress{Approved: 2, Required: 2, Fraction: 1},
	}

	var out bytes.Buffer
	require.NoError(t, NewProposalRenderer(&out, false).RenderVote(result))

	assert.Contains(t, out.String(), `✅ Bob approved "Audit"`)
	assert.Contains(t, out.String(), "2/2 approvals")
	assert.Contains(t, out.String(), "Proposal is now approved")
}

func TestExpenseRenderer_RenderSummary(t *testing.T) {
	result := &usecase.ExpenseListResult{
		Total: decimal.NewFromInt(100),
		ByCategory: []usecase.CategoryTotal{
			{Category: "Food", Amount: decimal.NewFromInt(75), Count: 3, Percentage: 75},
			{Category: "Transport", Amount: decimal.NewFromInt(25), Count: 1, Percentage: 25},
		},
	}

	var out bytes.Buffer
	require.NoError(t, NewExpenseRenderer(&out, false).RenderSummary(result))

	assert.Contains(t, out.String(), "Expenses: $100.00 total")
	assert.Contains(t, out.String(), "75.0%")
	assert.Contains(t, out.String(), "Transport")
}
