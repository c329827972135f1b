// Package overlay draws popover stacks into a Bubble Tea program. It is the
// terminal Host for popover.Controller: it measures content, composites
// overlays onto the base view and turns controller timers into tea commands.
package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popover/internal/popover"
)

// Content is the model drawn inside a popover frame
type Content interface {
	tea.Model
	Title() string
	// Size returns the preferred frame size; zero means fit the content
	Size() (width, height int)
}

// Resetter is implemented by contents that clear their state each time
// they are presented
type Resetter interface {
	Reset()
}

// CloseOverlayMsg asks the host to dismiss a popover. Contents return it
// with a zero Handle; the host fills in the handle of the content that sent
// it, so a late close never hits a popover presented in the meantime. A
// zero Handle dismisses the topmost popover.
type CloseOverlayMsg struct {
	Handle popover.ContentHandle
}

// SelectionMsg is sent when a popover's content makes a choice
type SelectionMsg struct {
	Key   string
	Value any
}

func closeOverlay() tea.Msg { return CloseOverlayMsg{} }

// bindClose tags the CloseOverlayMsgs produced by cmd with handle
func bindClose(handle popover.ContentHandle, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case CloseOverlayMsg:
			if msg.Handle == 0 {
				msg.Handle = handle
			}
			return msg
		case tea.BatchMsg:
			bound := make(tea.BatchMsg, len(msg))
			for i, c := range msg {
				bound[i] = bindClose(handle, c)
			}
			return bound
		default:
			return msg
		}
	}
}
