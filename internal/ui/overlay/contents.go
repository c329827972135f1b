package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popover/internal/popover"
)

// ContentTable maps the opaque handles stored in popover overlays to the
// content models that render them
type ContentTable struct {
	next     popover.ContentHandle
	contents map[popover.ContentHandle]Content
}

// NewContentTable creates an empty content table
func NewContentTable() *ContentTable {
	return &ContentTable{
		contents: make(map[popover.ContentHandle]Content),
	}
}

// Register stores c and returns its handle. Handles start at 1 so the zero
// handle never resolves.
func (t *ContentTable) Register(c Content) popover.ContentHandle {
	t.next++
	t.contents[t.next] = c
	return t.next
}

// Get returns the content for a handle
func (t *ContentTable) Get(h popover.ContentHandle) (Content, bool) {
	c, ok := t.contents[h]
	return c, ok
}

// Replace swaps the content behind an existing handle
func (t *ContentTable) Replace(h popover.ContentHandle, c Content) bool {
	if _, ok := t.contents[h]; !ok {
		return false
	}
	t.contents[h] = c
	return true
}

// Release forgets a handle
func (t *ContentTable) Release(h popover.ContentHandle) {
	delete(t.contents, h)
}

// Len returns the number of registered contents
func (t *ContentTable) Len() int {
	return len(t.contents)
}

// Update forwards msg to the content behind h and stores the updated model
func (t *ContentTable) Update(h popover.ContentHandle, msg tea.Msg) tea.Cmd {
	current, ok := t.contents[h]
	if !ok {
		return nil
	}

	newModel, cmd := current.Update(msg)

	// Keep the previous content if the model changed type
	if updated, ok := newModel.(Content); ok {
		t.contents[h] = updated
	}

	return cmd
}
