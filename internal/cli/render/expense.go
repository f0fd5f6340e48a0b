package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// ExpenseRenderer renders the personal expense ledger
type ExpenseRenderer struct {
	out  io.Writer
	json bool
}

// NewExpenseRenderer creates a new expense renderer
func NewExpenseRenderer(out io.Writer, jsonOut bool) *ExpenseRenderer {
	return &ExpenseRenderer{out: out, json: jsonOut}
}

// RenderAdded renders a recorded expense
func (r *ExpenseRenderer) RenderAdded(e *models.Expense) error {
	if r.json {
		return RenderJSON(r.out, e)
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Recorded %s for %s (%s)", FormatMoney(e.Amount), e.Description, e.ID)))
	return nil
}

// RenderDeleted confirms a removed expense
func (r *ExpenseRenderer) RenderDeleted(id string) error {
	if r.json {
		return RenderJSON(r.out, map[string]string{"deleted": id})
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deleted expense %s", id)))
	return nil
}

// RenderList renders expenses newest first with the running total
func (r *ExpenseRenderer) RenderList(result *usecase.ExpenseListResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	if len(result.Expenses) == 0 {
		fmt.Fprintln(r.out, "No expenses recorded")
		return nil
	}

	t := newTable(table.Row{"ID", "DATE", "CATEGORY", "DESCRIPTION", "AMOUNT"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, Align: text.AlignRight}})
	for _, e := range result.Expenses {
		t.AppendRow(table.Row{ShortID(e.ID), e.Date.Local().Format("2006-01-02"), e.Category, e.Description, FormatMoney(e.Amount)})
	}
	t.AppendFooter(table.Row{"", "", "", "TOTAL", FormatMoney(result.Total)})
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderSummary renders per-category totals
func (r *ExpenseRenderer) RenderSummary(result *usecase.ExpenseListResult) error {
	if r.json {
		return RenderJSON(r.out, struct {
			Total      decimal.Decimal         `json:"total"`
			ByCategory []usecase.CategoryTotal `json:"byCategory"`
		}{result.Total, result.ByCategory})
	}
	if len(result.ByCategory) == 0 {
		fmt.Fprintln(r.out, "No expenses recorded")
		return nil
	}
	fmt.Fprintln(r.out, heading(fmt.Sprintf("Expenses: %s total", FormatMoney(result.Total))))
	renderCategoryTotals(r.out, result.ByCategory)
	return nil
}
