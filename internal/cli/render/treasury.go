package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// historyRows limits the balance history printed in the detail view
const historyRows = 7

// TreasuryRenderer renders treasury registry results
type TreasuryRenderer struct {
	out  io.Writer
	json bool
}

// NewTreasuryRenderer creates a new treasury renderer
func NewTreasuryRenderer(out io.Writer, jsonOut bool) *TreasuryRenderer {
	return &TreasuryRenderer{out: out, json: jsonOut}
}

// RenderList renders all treasuries with their totals
func (r *TreasuryRenderer) RenderList(result *usecase.TreasuryListResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	if len(result.Treasuries) == 0 {
		fmt.Fprintln(r.out, "No treasuries found")
		return nil
	}

	t := newTable(table.Row{"ID", "NAME", "BALANCE", "APPROVAL", "SIGNERS", "STATUS"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	for _, treasury := range result.Treasuries {
		t.AppendRow(table.Row{
			ShortID(treasury.ID),
			treasury.Name,
			FormatMoney(treasury.Balance),
			fmt.Sprintf("%d of %d", treasury.Threshold, len(treasury.Signers)),
			len(treasury.Signers),
			pauseState(treasury.IsEmergencyPaused),
		})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Total balance: %s across %d treasuries", color.New(color.Bold).Sprint(FormatMoney(result.TotalBalance)), len(result.Treasuries))
	if result.Paused > 0 {
		fmt.Fprintf(r.out, " (%s)", color.New(color.FgRed).Sprintf("%d paused", result.Paused))
	}
	fmt.Fprintln(r.out)
	return nil
}

// RenderDetail renders one treasury with its proposals, policies and history
func (r *TreasuryRenderer) RenderDetail(result *usecase.ShowTreasuryResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}

	treasury := result.Treasury
	fmt.Fprintln(r.out, heading(fmt.Sprintf("Treasury: %s", treasury.Name)))
	fmt.Fprintln(r.out, strings.Repeat("─", 50))
	fmt.Fprintf(r.out, "  ID:          %s\n", treasury.ID)
	fmt.Fprintf(r.out, "  Description: %s\n", treasury.Description)
	fmt.Fprintf(r.out, "  Balance:     %s\n", color.New(color.Bold).Sprint(FormatMoney(treasury.Balance)))
	fmt.Fprintf(r.out, "  Approval:    %d of %d signers\n", treasury.Threshold, len(treasury.Signers))
	fmt.Fprintf(r.out, "  Status:      %s\n", pauseState(treasury.IsEmergencyPaused))
	fmt.Fprintf(r.out, "  Created:     %s\n", FormatTime(treasury.CreatedAt))

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, heading("Signers"))
	for _, signer := range treasury.Signers {
		fmt.Fprintf(r.out, "  • %s\n", signer)
	}

	if len(result.BalanceHistory) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, heading(fmt.Sprintf("Balance history (last %d days)", len(result.BalanceHistory))))
		points := result.BalanceHistory
		if len(points) > historyRows {
			points = points[len(points)-historyRows:]
		}
		t := newTable(table.Row{"DATE", "BALANCE"})
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
		for _, p := range points {
			t.AppendRow(table.Row{p.Date.Format("2006-01-02"), FormatMoney(p.Balance)})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	if len(result.Spending) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, heading("Spending by category"))
		renderCategoryTotals(r.out, result.Spending)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, heading(fmt.Sprintf("Policies (%d)", len(result.Policies))))
	if len(result.Policies) == 0 {
		fmt.Fprintln(r.out, faint("  none"))
	}
	for _, p := range result.Policies {
		fmt.Fprintf(r.out, "  %s %s %s\n", enabledMark(p.Enabled), p.Name, faint("("+Label(string(p.Type))+")"))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, heading(fmt.Sprintf("Proposals (%d)", len(result.Proposals))))
	if len(result.Proposals) == 0 {
		fmt.Fprintln(r.out, faint("  none"))
	}
	for _, p := range result.Proposals {
		fmt.Fprintf(r.out, "  %-10s %-9s %s %s\n", ShortID(p.ID), ProposalStatus(p.Status), p.Title, faint(FormatMoney(p.Amount)))
	}
	return nil
}

// RenderCreated renders a newly created treasury
func (r *TreasuryRenderer) RenderCreated(result *usecase.CreateTreasuryResult) error {
	if r.json {
		return RenderJSON(r.out, result.Treasury)
	}
	t := result.Treasury
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Created treasury %s (%s)", t.Name, t.ID)))
	fmt.Fprintf(r.out, "   Requires %d of %d signers\n", t.Threshold, len(t.Signers))
	return nil
}

// RenderTogglePause renders the new pause state of one treasury
func (r *TreasuryRenderer) RenderTogglePause(result *usecase.TogglePauseResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	if result.Paused {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("Treasury %s is now emergency paused", result.Treasury.Name)))
		return nil
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Treasury %s resumed", result.Treasury.Name)))
	return nil
}

// RenderEmergency renders the outcome of pausing or resuming every treasury
func (r *TreasuryRenderer) RenderEmergency(result *usecase.EmergencyPauseResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	action := "resumed"
	if result.Paused {
		action = "paused"
	}
	if len(result.Changed) == 0 {
		fmt.Fprintf(r.out, "All %d treasuries are already %s\n", result.Total, action)
		return nil
	}

	msg := fmt.Sprintf("%s %d of %d treasuries", Label(action), len(result.Changed), result.Total)
	if result.Paused {
		fmt.Fprintln(r.out, FormatWarning(msg))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(msg))
	}
	for _, t := range result.Changed {
		fmt.Fprintf(r.out, "   • %s\n", t.Name)
	}
	return nil
}

func pauseState(paused bool) string {
	if paused {
		return color.New(color.FgRed, color.Bold).Sprint("PAUSED")
	}
	return color.New(color.FgGreen).Sprint("active")
}

func enabledMark(enabled bool) string {
	if enabled {
		return color.New(color.FgGreen).Sprint("●")
	}
	return color.New(color.Faint).Sprint("○")
}

func renderCategoryTotals(out io.Writer, totals []usecase.CategoryTotal) {
	t := newTable(table.Row{"CATEGORY", "AMOUNT", "COUNT", "SHARE", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, c := range totals {
		t.AppendRow(table.Row{
			c.Category,
			FormatMoney(c.Amount),
			c.Count,
			fmt.Sprintf("%.1f%%", c.Percentage),
			ProgressBar(c.Percentage/100, 20),
		})
	}
	fmt.Fprintln(out, t.Render())
}

