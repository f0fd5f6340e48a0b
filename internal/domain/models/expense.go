package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
)

// Expense is an entry in the personal expense ledger.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// CreateExpenseInput holds the parsed fields of an expense
type CreateExpenseInput struct {
	Amount      decimal.Decimal `json:"amount" validate:"-"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Date        time.Time       `json:"date" validate:"-"`
}

// NewExpense validates input and builds an expense. A zero Date defaults to
// now. When categories is non-empty the category must be one of them
// (case-insensitive) and is stored in its configured spelling.
func NewExpense(id string, input CreateExpenseInput, categories []string, now time.Time) (*Expense, error) {
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)

	errs := validateInput(input)
	checkPositive(&errs, "amount", input.Amount)
	if input.Category != "" && len(categories) > 0 {
		idx := slices.IndexFunc(categories, func(c string) bool { return strings.EqualFold(c, input.Category) })
		if idx < 0 {
			errs.Add("category", "must be one of: %s", strings.Join(categories, ", "))
		} else {
			input.Category = categories[idx]
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = now
	}

	return &Expense{
		ID:          id,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        date,
	}, nil
}

// Validate checks an expense loaded from persisted data.
func (e *Expense) Validate() error {
	var errs domain.ValidationErrors
	if e.ID == "" {
		errs.Add("id", "is required")
	}
	checkPositive(&errs, "amount", e.Amount)
	if err := errs.Err(); err != nil {
		return fmt.Errorf("expense %q: %w", e.ID, err)
	}
	return nil
}

// Clone returns a copy of the expense.
func (e *Expense) Clone() *Expense {
	clone := *e
	return &clone
}
