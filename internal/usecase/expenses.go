package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// AddExpenseParams contains the raw fields of an expense
type AddExpenseParams struct {
	Amount      string
	Category    string
	Description string
	// Date in YYYY-MM-DD form; empty means today
	Date string
}

// AddExpense records a personal expense
type AddExpense struct {
	config *config.RuntimeConfig
	uow    UnitOfWork
	ids    IDGenerator
	clock  Clock
}

// NewAddExpense creates a new AddExpense use case
func NewAddExpense(cfg *config.RuntimeConfig, uow UnitOfWork, ids IDGenerator, clock Clock) *AddExpense {
	return &AddExpense{config: cfg, uow: uow, ids: ids, clock: clock}
}

// Run parses and stores the expense
func (uc *AddExpense) Run(ctx context.Context, params AddExpenseParams) (*models.Expense, error) {
	amount, err := models.ParseAmount("amount", params.Amount)
	if err != nil {
		return nil, err
	}

	input := models.CreateExpenseInput{
		Amount:      amount,
		Category:    params.Category,
		Description: params.Description,
	}
	if params.Date != "" {
		date, err := time.ParseInLocation(time.DateOnly, params.Date, time.UTC)
		if err != nil {
			return nil, domain.NewValidationError("date", "must be in YYYY-MM-DD form, got %q", params.Date)
		}
		input.Date = date
	}

	expense, err := models.NewExpense(uc.ids.NewID(), input, uc.config.ExpenseCategories, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Atomic(ctx, func(tx Tx) error {
		tx.SaveExpense(expense)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes an expense from the ledger
type DeleteExpense struct {
	uow UnitOfWork
}

// NewDeleteExpense creates a new DeleteExpense use case
func NewDeleteExpense(uow UnitOfWork) *DeleteExpense {
	return &DeleteExpense{uow: uow}
}

// Run deletes the expense with the given ID
func (uc *DeleteExpense) Run(ctx context.Context, id string) error {
	return uc.uow.Atomic(ctx, func(tx Tx) error {
		return tx.DeleteExpense(id)
	})
}

// ExpenseListResult contains expenses and their summary
type ExpenseListResult struct {
	Expenses   []*models.Expense
	Total      decimal.Decimal
	ByCategory []CategoryTotal
}

// ListExpenses lists the expense ledger with category totals
type ListExpenses struct {
	expenses ExpenseRepository
}

// NewListExpenses creates a new ListExpenses use case
func NewListExpenses(expenses ExpenseRepository) *ListExpenses {
	return &ListExpenses{expenses: expenses}
}

// Run lists expenses newest first and summarises them
func (uc *ListExpenses) Run(ctx context.Context) (*ExpenseListResult, error) {
	expenses, err := uc.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(expenses, func(a, b *models.Expense) int {
		return b.Date.Compare(a.Date)
	})

	return &ExpenseListResult{
		Expenses:   expenses,
		Total:      sumAmounts(expenses, func(e *models.Expense) decimal.Decimal { return e.Amount }),
		ByCategory: ExpensesByCategory(expenses),
	}, nil
}
