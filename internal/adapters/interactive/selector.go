package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectTreasury picks a treasury from a list
func (s *SelectorAdapter) SelectTreasury(ctx context.Context, treasuries []*models.Treasury, prompt string) (*models.Treasury, error) {
	if len(treasuries) == 0 {
		return nil, fmt.Errorf("no treasuries provided for selection")
	}
	if len(treasuries) == 1 {
		return treasuries[0], nil
	}
	index, err := s.run(prompt, formatTreasuryOptions(treasuries))
	if err != nil {
		return nil, err
	}
	return treasuries[index], nil
}

// SelectProposal picks a proposal from a list
func (s *SelectorAdapter) SelectProposal(ctx context.Context, proposals []*models.Proposal, prompt string) (*models.Proposal, error) {
	if len(proposals) == 0 {
		return nil, fmt.Errorf("no proposals provided for selection")
	}
	if len(proposals) == 1 {
		return proposals[0], nil
	}
	index, err := s.run(prompt, formatProposalOptions(proposals))
	if err != nil {
		return nil, err
	}
	return proposals[index], nil
}

func (s *SelectorAdapter) run(prompt string, options []string) (int, error) {
	if s.config.NonInteractive {
		return 0, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, type to filter, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

// formatTreasuryOptions renders "Name [paused] (2 of 3, id)"
func formatTreasuryOptions(treasuries []*models.Treasury) []string {
	options := make([]string, len(treasuries))
	for i, t := range treasuries {
		name := color.New(color.FgWhite, color.Bold).Sprint(t.Name)
		detail := color.New(color.FgBlue).Sprintf("%d of %d, %s", t.Threshold, len(t.Signers), t.ID)
		if t.IsEmergencyPaused {
			options[i] = fmt.Sprintf("%s %s (%s)", name, color.New(color.FgRed).Sprint("[paused]"), detail)
		} else {
			options[i] = fmt.Sprintf("%s (%s)", name, detail)
		}
	}
	return options
}

// formatProposalOptions renders "Title [status] amount (votes, id)"
func formatProposalOptions(proposals []*models.Proposal) []string {
	options := make([]string, len(proposals))
	for i, p := range proposals {
		title := color.New(color.FgWhite, color.Bold).Sprint(p.Title)
		status := color.New(color.FgYellow).Sprintf("[%s]", p.Status)
		detail := color.New(color.FgBlue).Sprintf("%d/%d votes, %s", p.ApprovalCount(), p.RequiredVotes, p.ID)
		options[i] = fmt.Sprintf("%s %s %s (%s)", title, status, p.Amount.String(), detail)
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.Selector = (*SelectorAdapter)(nil)
