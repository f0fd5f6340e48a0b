package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// PolicyRenderer renders policy results
type PolicyRenderer struct {
	out  io.Writer
	json bool
}

// NewPolicyRenderer creates a new policy renderer
func NewPolicyRenderer(out io.Writer, jsonOut bool) *PolicyRenderer {
	return &PolicyRenderer{out: out, json: jsonOut}
}

// RenderList renders policies with a summary of their rules
func (r *PolicyRenderer) RenderList(result *usecase.PolicyListResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	if len(result.Policies) == 0 {
		fmt.Fprintln(r.out, "No policies found")
		return nil
	}

	t := newTable(table.Row{"", "ID", "NAME", "TYPE", "TREASURY", "RULES"})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 6, WidthMax: 60}})
	for _, p := range result.Policies {
		treasury := result.TreasuryNames[p.TreasuryID]
		if treasury == "" {
			treasury = p.TreasuryID
		}
		t.AppendRow(table.Row{
			enabledMark(p.Enabled),
			ShortID(p.ID),
			p.Name,
			Label(string(p.Type)),
			treasury,
			PolicyRules(p),
		})
	}
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%d policies, %d enabled\n", len(result.Policies), result.Enabled)
	return nil
}

// RenderCreated renders a newly created policy
func (r *PolicyRenderer) RenderCreated(result *usecase.CreatePolicyResult) error {
	if r.json {
		return RenderJSON(r.out, result.Policy)
	}
	p := result.Policy
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Created %s policy %q on %s (%s)", Label(string(p.Type)), p.Name, result.Treasury.Name, p.ID)))
	fmt.Fprintf(r.out, "   %s\n", PolicyRules(p))
	return nil
}

// RenderToggled renders the new enabled state of a policy
func (r *PolicyRenderer) RenderToggled(result *usecase.TogglePolicyResult) error {
	if r.json {
		return RenderJSON(r.out, result)
	}
	state := "disabled"
	if result.Enabled {
		state = "enabled"
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Policy %q %s", result.Policy.Name, state)))
	return nil
}

// PolicyRules summarises the configured rules of a policy on one line
func PolicyRules(p *models.Policy) string {
	c := p.Config
	switch p.Type {
	case models.PolicyTypeSpendingLimit:
		var parts []string
		if c.DailyLimit != nil {
			parts = append(parts, "daily "+FormatMoney(*c.DailyLimit))
		}
		if c.MonthlyLimit != nil {
			parts = append(parts, "monthly "+FormatMoney(*c.MonthlyLimit))
		}
		if c.PerTransactionLimit != nil {
			parts = append(parts, "per tx "+FormatMoney(*c.PerTransactionLimit))
		}
		return strings.Join(parts, ", ")
	case models.PolicyTypeWhitelist, models.PolicyTypeBlacklist:
		if len(c.Addresses) == 1 {
			return "1 address: " + c.Addresses[0]
		}
		return fmt.Sprintf("%d addresses", len(c.Addresses))
	case models.PolicyTypeCategoryLimit:
		parts := make([]string, len(c.Categories))
		for i, cat := range c.Categories {
			parts[i] = fmt.Sprintf("%s %s", cat.Name, FormatMoney(cat.Limit))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
