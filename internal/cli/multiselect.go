package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// multiSelectModel is the bubbletea model for picking members
type multiSelectModel struct {
	members   []*models.User
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
}

func initialMultiSelectModel(members []*models.User, title string) multiSelectModel {
	return multiSelectModel{
		members:  members,
		selected: make(map[int]bool, len(members)),
		title:    title,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.members)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.chosen()) < len(m.members)
		for i := range m.members {
			m.selected[i] = all
		}
	case "enter":
		if len(m.chosen()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, member := range m.members {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		name := color.New(color.FgWhite).Sprint(member.Name)
		role := color.New(color.FgYellow).Sprintf("(%s)", member.Role)
		address := color.New(color.Faint).Sprint(member.Address)

		fmt.Fprintf(&b, "%s %s %s %s %s\n", cursor, checkbox, name, role, address)
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// chosen returns the selected indices in list order
func (m multiSelectModel) chosen() []int {
	var indices []int
	for i := range m.members {
		if m.selected[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

// SelectSigners shows a multi-select of members and returns the addresses
// of the chosen ones
func SelectSigners(members []*models.User, title string) ([]string, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("no members to select signers from (pass --signers)")
	}

	p := tea.NewProgram(initialMultiSelectModel(members, title))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	m := finalModel.(multiSelectModel)
	if !m.done {
		return nil, fmt.Errorf("selection cancelled")
	}

	return signerAddresses(members, m.chosen()), nil
}

func signerAddresses(members []*models.User, indices []int) []string {
	addrs := make([]string, len(indices))
	for i, idx := range indices {
		addrs[i] = members[idx].Address
	}
	return addrs
}
