package usecase

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// CategoryTotal is the summed amount of one category and its share of the
// grand total in percent.
type CategoryTotal struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// BalancePoint is a treasury balance at the end of one day.
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// TransactionSummary aggregates a set of ledger entries
type TransactionSummary struct {
	Count           int                              `json:"count"`
	CompletedVolume decimal.Decimal                  `json:"completedVolume"`
	TotalGas        decimal.Decimal                  `json:"totalGas"`
	ByType          map[models.TransactionType]int   `json:"byType"`
	ByStatus        map[models.TransactionStatus]int `json:"byStatus"`
}

// SpendingByCategory totals executed proposals per category, largest first.
func SpendingByCategory(proposals []*models.Proposal) []CategoryTotal {
	executed := lo.Filter(proposals, func(p *models.Proposal, _ int) bool {
		return p.Status == models.ProposalStatusExecuted
	})
	return categoryTotals(executed,
		func(p *models.Proposal) string { return p.Category },
		func(p *models.Proposal) decimal.Decimal { return p.Amount })
}

// ExpensesByCategory totals expenses per category, largest first.
func ExpensesByCategory(expenses []*models.Expense) []CategoryTotal {
	return categoryTotals(expenses,
		func(e *models.Expense) string { return e.Category },
		func(e *models.Expense) decimal.Decimal { return e.Amount })
}

func categoryTotals[T any](items []T, category func(T) string, amount func(T) decimal.Decimal) []CategoryTotal {
	grouped := lo.GroupBy(items, category)
	grand := sumAmounts(items, amount)

	totals := make([]CategoryTotal, 0, len(grouped))
	for name, group := range grouped {
		sum := sumAmounts(group, amount)
		total := CategoryTotal{Category: name, Amount: sum, Count: len(group)}
		if grand.IsPositive() {
			total.Percentage = sum.Div(grand).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		totals = append(totals, total)
	}

	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return totals
}

func sumAmounts[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(amount(item))
	}
	return sum
}

// BalanceHistory reconstructs the end-of-day balance of a treasury for the
// given number of days ending today. It walks backwards from the current
// balance, undoing every completed transaction of the treasury, so the last
// point always equals the current balance.
func BalanceHistory(treasury *models.Treasury, transactions []*models.Transaction, days int, now time.Time) []BalancePoint {
	if days < 1 {
		return nil
	}

	relevant := lo.Filter(transactions, func(tx *models.Transaction, _ int) bool {
		return tx.TreasuryID == treasury.ID && tx.Status == models.TransactionStatusCompleted
	})
	slices.SortFunc(relevant, func(a, b *models.Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	today := now.UTC().Truncate(24 * time.Hour)
	points := make([]BalancePoint, days)
	balance := treasury.Balance
	next := 0

	points[days-1] = BalancePoint{Date: today, Balance: balance}
	for i := days - 2; i >= 0; i-- {
		day := today.AddDate(0, 0, i-(days-1))
		endOfDay := day.Add(24 * time.Hour)
		for next < len(relevant) && !relevant[next].Timestamp.Before(endOfDay) {
			balance = balance.Sub(relevant[next].SignedAmount())
			next++
		}
		points[i] = BalancePoint{Date: day, Balance: balance}
	}
	return points
}

// SummarizeTransactions computes counts and totals over ledger entries.
// Volume and gas count completed entries only.
func SummarizeTransactions(transactions []*models.Transaction) TransactionSummary {
	summary := TransactionSummary{
		Count:           len(transactions),
		CompletedVolume: decimal.Zero,
		TotalGas:        decimal.Zero,
		ByType:          lo.CountValuesBy(transactions, func(tx *models.Transaction) models.TransactionType { return tx.Type }),
		ByStatus:        lo.CountValuesBy(transactions, func(tx *models.Transaction) models.TransactionStatus { return tx.Status }),
	}
	for _, tx := range transactions {
		if tx.Status != models.TransactionStatusCompleted {
			continue
		}
		summary.CompletedVolume = summary.CompletedVolume.Add(tx.Amount)
		if tx.GasUsed != nil {
			summary.TotalGas = summary.TotalGas.Add(*tx.GasUsed)
		}
	}
	return summary
}

// sortProposalsNewestFirst orders proposals by creation time, newest first
func sortProposalsNewestFirst(proposals []*models.Proposal) {
	slices.SortStableFunc(proposals, func(a, b *models.Proposal) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// sortTransactionsNewestFirst orders ledger entries by timestamp, newest first
func sortTransactionsNewestFirst(transactions []*models.Transaction) {
	slices.SortStableFunc(transactions, func(a, b *models.Transaction) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}
