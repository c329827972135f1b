package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popover/internal/types"
	"github.com/riordanpawley/popover/internal/ui/styles"
)

// MaxVisible is the number of toasts shown at once; older ones wait
const MaxVisible = 3

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Prune drops expired toasts, keeping order
func Prune(toasts []types.Toast, now time.Time) []types.Toast {
	live := toasts[:0]
	for _, t := range toasts {
		if !t.Expired(now) {
			live = append(live, t)
		}
	}
	return live
}

// Render renders the newest unexpired toasts stacked vertically.
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []types.Toast, width int, now time.Time) string {
	var visible []types.Toast
	for _, t := range toasts {
		if !t.Expired(now) {
			visible = append(visible, t)
		}
	}
	if len(visible) == 0 {
		return ""
	}
	if len(visible) > MaxVisible {
		visible = visible[len(visible)-MaxVisible:]
	}

	toastWidth := min(width/3, 40)

	rendered := make([]string, 0, len(visible))
	for _, t := range visible {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(t.Message))
	}

	// Stack toasts vertically, aligned to the right
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
