package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popover/internal/popover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentTable_Register(t *testing.T) {
	table := NewContentTable()
	assert.Equal(t, 0, table.Len())

	a := table.Register(mockOverlay{title: "a"})
	b := table.Register(mockOverlay{title: "b"})

	assert.NotEqual(t, popover.ContentHandle(0), a, "zero handle is reserved")
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, table.Len())

	got, ok := table.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b", got.Title())

	_, ok = table.Get(0)
	assert.False(t, ok)
}

func TestContentTable_ReplaceAndRelease(t *testing.T) {
	table := NewContentTable()
	h := table.Register(mockOverlay{title: "old"})

	assert.True(t, table.Replace(h, mockOverlay{title: "new"}))
	got, _ := table.Get(h)
	assert.Equal(t, "new", got.Title())

	table.Release(h)
	_, ok := table.Get(h)
	assert.False(t, ok)
	assert.False(t, table.Replace(h, mockOverlay{}), "released handles cannot be replaced")
}

func TestContentTable_UpdateStoresModel(t *testing.T) {
	table := NewContentTable()
	h := table.Register(mockOverlay{body: "x"})

	cmd := table.Update(h, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	assert.Nil(t, cmd)

	got, _ := table.Get(h)
	assert.Equal(t, "x+", got.View(), "value models are stored back after Update")
}

func TestContentTable_UpdateUnknownHandle(t *testing.T) {
	table := NewContentTable()
	assert.Nil(t, table.Update(42, tea.KeyMsg{Type: tea.KeyEnter}))
}
