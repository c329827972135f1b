package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOverlay is a simple content implementation for testing
type mockOverlay struct {
	title  string
	body   string
	width  int
	height int
	value  string
}

func (m mockOverlay) Init() tea.Cmd {
	return nil
}

func (m mockOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m, func() tea.Msg {
				return SelectionMsg{Key: "test", Value: m.value}
			}
		case "esc":
			return m, closeOverlay
		case "+":
			m.body += "+"
			return m, nil
		}
	}
	return m, nil
}

func (m mockOverlay) View() string {
	return m.body
}

func (m mockOverlay) Title() string {
	return m.title
}

func (m mockOverlay) Size() (width, height int) {
	return m.width, m.height
}

// collectMsgs runs cmd and flattens batches into their messages
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collectMsgs(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func TestOverlayInterface(t *testing.T) {
	var _ Content = mockOverlay{}
	var _ Content = (*ConfirmDialog)(nil)
	var _ Content = (*HelpOverlay)(nil)
	var _ Content = (*Palette)(nil)

	var _ Resetter = (*ConfirmDialog)(nil)
	var _ Resetter = (*HelpOverlay)(nil)
	var _ Resetter = (*Palette)(nil)
}

func TestMockOverlayKeyHandling(t *testing.T) {
	overlay := mockOverlay{title: "Test", value: "result"}

	_, cmd := overlay.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := collectMsgs(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, SelectionMsg{Key: "test", Value: "result"}, msgs[0])

	_, cmd = overlay.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []tea.Msg{CloseOverlayMsg{}}, collectMsgs(cmd))
}

func TestBindClose(t *testing.T) {
	assert.Nil(t, bindClose(3, nil))

	cmd := tea.Batch(
		closeOverlay,
		func() tea.Msg { return CloseOverlayMsg{Handle: 9} },
		func() tea.Msg { return SelectionMsg{Key: "k"} },
	)

	msgs := collectMsgs(bindClose(3, cmd))

	assert.Equal(t, []tea.Msg{
		CloseOverlayMsg{Handle: 3},
		CloseOverlayMsg{Handle: 9},
		SelectionMsg{Key: "k"},
	}, msgs)
}
