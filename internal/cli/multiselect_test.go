package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

func testMembers() []*models.User {
	return []*models.User{
		{ID: "user-1", Name: "Alice", Address: "0x01", Role: models.UserRoleManager},
		{ID: "user-2", Name: "Bob", Address: "0x02", Role: models.UserRoleVoter},
		{ID: "user-3", Name: "Carol", Address: "0x03", Role: models.UserRoleCreator},
	}
}

func press(m multiSelectModel, keys ...tea.KeyMsg) multiSelectModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(multiSelectModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyAll   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestMultiSelect_PicksInListOrder(t *testing.T) {
	members := testMembers()
	m := initialMultiSelectModel(members, "Select")

	m = press(m, keyDown, keyDown, keySpace, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, keySpace, keyEnter)

	assert.True(t, m.done)
	assert.Equal(t, []string{"0x01", "0x03"}, signerAddresses(members, m.chosen()))
	assert.Empty(t, m.View())
}

func TestMultiSelect_EnterNeedsSelection(t *testing.T) {
	m := press(initialMultiSelectModel(testMembers(), "Select"), keyEnter)

	assert.False(t, m.done)
	assert.Contains(t, m.View(), "Alice")
}

func TestMultiSelect_ToggleAll(t *testing.T) {
	m := press(initialMultiSelectModel(testMembers(), "Select"), keyAll)
	assert.Equal(t, []int{0, 1, 2}, m.chosen())

	m = press(m, keyAll)
	assert.Empty(t, m.chosen())
}

func TestMultiSelect_CursorStaysInBounds(t *testing.T) {
	m := press(initialMultiSelectModel(testMembers(), "Select"), keyDown, keyDown, keyDown, keyDown)
	assert.Equal(t, 2, m.cursor)
}

func TestMultiSelect_Cancel(t *testing.T) {
	m := press(initialMultiSelectModel(testMembers(), "Select"), keySpace, keyQuit)

	assert.True(t, m.cancelled)
	assert.False(t, m.done)
}
