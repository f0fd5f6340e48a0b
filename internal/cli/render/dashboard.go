package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// DashboardRenderer renders the overview screen
type DashboardRenderer struct {
	out  io.Writer
	json bool
}

// NewDashboardRenderer creates a new dashboard renderer
func NewDashboardRenderer(out io.Writer, jsonOut bool) *DashboardRenderer {
	return &DashboardRenderer{out: out, json: jsonOut}
}

// Render renders headline stats, recent proposals and spending
func (r *DashboardRenderer) Render(result *usecase.DashboardResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}

	s := result.Stats
	fmt.Fprintln(r.out, heading("Treasury overview"))
	if result.Actor != nil {
		fmt.Fprintf(r.out, "%s\n", faint(fmt.Sprintf("Signed in as %s (%s)", result.Actor.Name, result.Actor.Role)))
	}
	fmt.Fprintln(r.out)

	stats := newTable(table.Row{"TOTAL BALANCE", "TREASURIES", "ACTIVE PROPOSALS", "PENDING VOTES", "COMPLETED TXS"})
	stats.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	treasuries := fmt.Sprint(s.TotalTreasuries)
	if s.PausedTreasuries > 0 {
		treasuries += color.New(color.FgRed).Sprintf(" (%d paused)", s.PausedTreasuries)
	}
	pending := fmt.Sprint(s.PendingVotes)
	if s.PendingVotes > 0 {
		pending = color.New(color.FgYellow, color.Bold).Sprint(pending)
	}
	stats.AppendRow(table.Row{
		color.New(color.Bold).Sprint(FormatMoney(s.TotalBalance)),
		treasuries,
		s.ActiveProposals,
		pending,
		s.CompletedTransactions,
	})
	fmt.Fprintln(r.out, stats.Render())

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, heading("Recent proposals"))
	if len(result.RecentProposals) == 0 {
		fmt.Fprintln(r.out, faint("  none"))
	} else {
		t := newTable(table.Row{"ID", "TITLE", "AMOUNT", "STATUS", "APPROVAL"})
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
		for _, view := range result.RecentProposals {
			p := view.Proposal
			t.AppendRow(table.Row{
				ShortID(p.ID),
				p.Title,
				FormatMoney(p.Amount),
				ProposalStatus(p.Status),
				ProgressBar(view.Progress.Fraction, 10) + " " + votesCell(view.Progress),
			})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	if len(result.Spending) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, heading("Spending by category"))
		renderCategoryTotals(r.out, result.Spending)
	}
	return nil
}
