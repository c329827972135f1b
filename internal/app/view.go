package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popover/internal/ui/overlay"
	"github.com/riordanpawley/popover/internal/ui/statusbar"
	"github.com/riordanpawley/popover/internal/ui/toast"
)

const canvasHint = "popover demo · ? for help"

// View renders the current state as a string
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	areaHeight := max(0, m.height-statusBarHeight)
	view := m.host.View(m.renderCanvas(areaHeight), m.width, areaHeight)
	view = m.renderToasts(view, areaHeight)

	sb := statusbar.New(m.mode(), m.width, m.styles).WithStack(m.stackInfo())
	return lipgloss.JoinVertical(lipgloss.Left, view, sb.Render())
}

// renderCanvas draws the trigger grid
func (m *Model) renderCanvas(height int) string {
	canvas := overlay.NewCanvas("", m.width, height)
	canvas.Draw(marginX, 0, m.styles.CanvasHint.Render(canvasHint))

	current := m.nav.Current()
	for i, t := range m.triggers {
		f := t.Frame()
		canvas.Draw(int(f.X), int(f.Y), t.View(m.styles, i == current))
	}
	return canvas.String()
}

// renderToasts draws the toasts in the top-right corner, above popovers
func (m *Model) renderToasts(view string, height int) string {
	toastView := toast.New(m.styles).Render(m.toasts, m.width, m.now())
	if toastView == "" {
		return view
	}
	canvas := overlay.NewCanvas(view, m.width, height)
	canvas.Draw(m.width-lipgloss.Width(toastView)-1, 0, toastView)
	return canvas.String()
}
