package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/popover/internal/popover"
	"github.com/riordanpawley/popover/internal/types"
	"github.com/riordanpawley/popover/internal/ui/styles"
)

// StackInfo summarises a surface's overlay stack for display
type StackInfo struct {
	Depth    int
	TopPhase popover.Phase
	Scrim    float64
}

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	width  int
	styles *styles.Styles
	stack  StackInfo
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithStack returns a copy of the status bar showing stack information
func (sb StatusBar) WithStack(info StackInfo) StatusBar {
	sb.stack = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	// Mode badge
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")
	parts := []string{modeBadge}

	// Keybinding hints
	separator := sb.styles.StatusHint.Render(" │ ")
	if hints := GetHints(sb.mode); hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(hints))
	}

	if sb.stack.Depth > 0 {
		info := sb.styles.StatusInfo.Render(fmt.Sprintf("depth %d · ", sb.stack.Depth)) +
			sb.styles.Phase(sb.stack.TopPhase).Render(sb.stack.TopPhase.String()) +
			sb.styles.StatusInfo.Render(fmt.Sprintf(" · scrim %.2f", sb.stack.Scrim))
		parts = append(parts, separator, info)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	// Keep to one row; the bar's padding takes a cell on each side
	content = ansi.Truncate(content, max(0, sb.width-2), "…")

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
