package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// ProposalRenderer renders voting engine results
type ProposalRenderer struct {
	out  io.Writer
	json bool
}

// NewProposalRenderer creates a new proposal renderer
func NewProposalRenderer(out io.Writer, jsonOut bool) *ProposalRenderer {
	return &ProposalRenderer{out: out, json: jsonOut}
}

// RenderList renders proposals with their approval progress
func (r *ProposalRenderer) RenderList(result *usecase.ProposalListResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	if len(result.Proposals) == 0 {
		fmt.Fprintln(r.out, "No proposals found")
		return nil
	}

	t := newTable(table.Row{"ID", "TITLE", "AMOUNT", "CATEGORY", "STATUS", "VOTES", "LOCK"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 3, Align: text.AlignRight},
	})
	for _, view := range result.Proposals {
		p := view.Proposal
		lock := ""
		if view.Locked {
			lock = color.New(color.FgYellow).Sprint("🔒 " + FormatTime(p.LockUntil))
		}
		t.AppendRow(table.Row{
			ShortID(p.ID),
			p.Title,
			FormatMoney(p.Amount),
			p.Category,
			ProposalStatus(p.Status),
			votesCell(view.Progress),
			lock,
		})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)

	parts := make([]string, 0, len(models.AllProposalStatuses))
	for _, status := range models.AllProposalStatuses {
		if n := result.ByStatus[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	fmt.Fprintf(r.out, "%d proposals: %s\n", len(result.Proposals), strings.Join(parts, ", "))
	return nil
}

// RenderDetail renders one proposal with votes and linked transactions
func (r *ProposalRenderer) RenderDetail(result *usecase.ShowProposalResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}

	p := result.Proposal
	fmt.Fprintln(r.out, heading(fmt.Sprintf("Proposal: %s", p.Title)))
	fmt.Fprintln(r.out, strings.Repeat("─", 50))
	fmt.Fprintf(r.out, "  ID:          %s\n", p.ID)
	fmt.Fprintf(r.out, "  Treasury:    %s\n", result.Treasury.Name)
	fmt.Fprintf(r.out, "  Status:      %s\n", ProposalStatus(p.Status))
	fmt.Fprintf(r.out, "  Amount:      %s\n", color.New(color.Bold).Sprint(FormatMoney(p.Amount)))
	fmt.Fprintf(r.out, "  Recipient:   %s\n", p.Recipient)
	fmt.Fprintf(r.out, "  Category:    %s\n", p.Category)
	fmt.Fprintf(r.out, "  Created:     %s by %s\n", FormatTime(p.CreatedAt), p.CreatedBy)
	if result.Locked {
		fmt.Fprintf(r.out, "  Time-lock:   until %s (%s left)\n", FormatTime(p.LockUntil), FormatDuration(result.LockRemaining))
	} else {
		fmt.Fprintf(r.out, "  Time-lock:   elapsed %s\n", FormatTime(p.LockUntil))
	}
	if p.ExecutedAt != nil {
		fmt.Fprintf(r.out, "  Executed:    %s\n", FormatTime(*p.ExecutedAt))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "  "+p.Description)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, heading("Approval"))
	progress := result.Progress
	fmt.Fprintf(r.out, "  %s %d/%d approvals, %d rejections\n",
		ProgressBar(progress.Fraction, 24), progress.Approved, progress.Required, progress.Rejected)

	if len(p.Votes) > 0 {
		fmt.Fprintln(r.out)
		t := newTable(table.Row{"VOTER", "VOTE", "TIME", "SIGNATURE"})
		for _, v := range p.Votes {
			t.AppendRow(table.Row{voterName(v), voteCell(v.Approved), FormatTime(v.Timestamp), faint(abbreviate(v.Signature))})
		}
		fmt.Fprintln(r.out, t.Render())
	}

	if len(result.Transactions) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, heading("Transactions"))
		for _, tx := range result.Transactions {
			fmt.Fprintf(r.out, "  %s %s %s %s\n", ShortID(tx.ID), TransactionStatus(tx.Status), FormatMoney(tx.Amount), faint(tx.TxHash))
		}
	}
	return nil
}

// RenderCreated renders a newly created proposal
func (r *ProposalRenderer) RenderCreated(result *usecase.CreateProposalResult) error {
	if r.json {
		return RenderJSON(r.out, result.Proposal)
	}
	p := result.Proposal
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Created proposal %q (%s)", p.Title, p.ID)))
	fmt.Fprintf(r.out, "   %s from %s to %s\n", FormatMoney(p.Amount), result.Treasury.Name, p.Recipient)
	fmt.Fprintf(r.out, "   Needs %d approvals, time-locked until %s\n", p.RequiredVotes, FormatTime(p.LockUntil))
	return nil
}

// RenderVote renders a recorded vote and the resulting proposal state
func (r *ProposalRenderer) RenderVote(result *usecase.CastVoteResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	verb := "rejected"
	if result.Vote.Approved {
		verb = "approved"
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s %s %q", voterName(result.Vote), verb, result.Proposal.Title)))
	fmt.Fprintf(r.out, "   %s %d/%d approvals\n", ProgressBar(result.Progress.Fraction, 24), result.Progress.Approved, result.Progress.Required)
	if result.StatusChanged {
		fmt.Fprintf(r.out, "   Proposal is now %s\n", ProposalStatus(result.Proposal.Status))
	}
	return nil
}

// RenderExecuted renders an executed proposal and its withdrawal
func (r *ProposalRenderer) RenderExecuted(result *usecase.ExecuteProposalResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Executed %q", result.Proposal.Title)))
	fmt.Fprintf(r.out, "   Paid %s to %s\n", FormatMoney(result.Transaction.Amount), result.Transaction.To)
	fmt.Fprintf(r.out, "   %s balance: %s\n", result.Treasury.Name, FormatMoney(result.Treasury.Balance))
	fmt.Fprintf(r.out, "   Tx hash: %s\n", faint(result.Transaction.TxHash))
	return nil
}

func votesCell(p models.ApprovalProgress) string {
	cell := fmt.Sprintf("%d/%d", p.Approved, p.Required)
	if p.Rejected > 0 {
		cell += color.New(color.FgRed).Sprintf(" (-%d)", p.Rejected)
	}
	return cell
}

func voteCell(approved bool) string {
	if approved {
		return color.New(color.FgGreen).Sprint("✓ approve")
	}
	return color.New(color.FgRed).Sprint("✗ reject")
}

func voterName(v models.Vote) string {
	if v.UserName != "" {
		return v.UserName
	}
	return v.UserID
}

// abbreviate shortens long hex strings to 0x1234…abcd
func abbreviate(s string) string {
	if len(s) <= 14 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}
