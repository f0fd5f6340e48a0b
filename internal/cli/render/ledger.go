package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// LedgerRenderer renders transactions and members
type LedgerRenderer struct {
	out  io.Writer
	json bool
}

// NewLedgerRenderer creates a new ledger renderer
func NewLedgerRenderer(out io.Writer, jsonOut bool) *LedgerRenderer {
	return &LedgerRenderer{out: out, json: jsonOut}
}

// RenderTransactions renders ledger entries followed by their summary
func (r *LedgerRenderer) RenderTransactions(result *usecase.TransactionListResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	if len(result.Transactions) == 0 {
		fmt.Fprintln(r.out, "No transactions found")
		return nil
	}

	t := newTable(table.Row{"ID", "TIME", "TYPE", "AMOUNT", "FROM", "TO", "STATUS", "GAS", "HASH"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 24},
		{Number: 6, WidthMax: 24},
	})
	for _, tx := range result.Transactions {
		gas := "-"
		if tx.GasUsed != nil {
			gas = tx.GasUsed.String()
		}
		t.AppendRow(table.Row{
			ShortID(tx.ID),
			FormatTime(tx.Timestamp),
			transactionType(tx.Type),
			FormatMoney(tx.Amount),
			tx.From,
			tx.To,
			TransactionStatus(tx.Status),
			gas,
			faint(abbreviate(tx.TxHash)),
		})
	}
	fmt.Fprintln(r.out, t.Render())

	s := result.Summary
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%d transactions (%d deposits, %d withdrawals, %d transfers)\n", s.Count,
		s.ByType[models.TransactionTypeDeposit], s.ByType[models.TransactionTypeWithdrawal], s.ByType[models.TransactionTypeTransfer])
	fmt.Fprintf(r.out, "Completed volume: %s, total gas: %s\n", FormatMoney(s.CompletedVolume), s.TotalGas.String())
	return nil
}

// RenderMembers renders the member roster
func (r *LedgerRenderer) RenderMembers(result *usecase.MemberListResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	if len(result.Members) == 0 {
		fmt.Fprintln(r.out, "No members found")
		return nil
	}

	t := newTable(table.Row{"", "ID", "NAME", "ROLE", "ADDRESS"})
	for _, u := range result.Members {
		marker := ""
		if u.ID == result.ActorID {
			marker = color.New(color.FgCyan).Sprint("▸")
		}
		t.AppendRow(table.Row{marker, u.ID, u.Name, Label(string(u.Role)), u.Address})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%d members: %d managers, %d voters, %d creators\n", len(result.Members),
		result.ByRole[models.UserRoleManager], result.ByRole[models.UserRoleVoter], result.ByRole[models.UserRoleCreator])
	return nil
}

func transactionType(t models.TransactionType) string {
	switch t {
	case models.TransactionTypeDeposit:
		return color.New(color.FgGreen).Sprint("↓ deposit")
	case models.TransactionTypeWithdrawal:
		return color.New(color.FgRed).Sprint("↑ withdrawal")
	default:
		return color.New(color.FgBlue).Sprint("↔ transfer")
	}
}
