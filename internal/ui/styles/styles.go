package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popover/internal/popover"
)

// Styles holds all the UI styles
type Styles struct {
	// Canvas
	CanvasHint   lipgloss.Style
	Scrim        lipgloss.Style
	ScrimHeavy   lipgloss.Style
	FadedContent lipgloss.Style

	// Triggers
	Trigger       func(i int) lipgloss.Style
	TriggerActive func(i int) lipgloss.Style

	// Popovers
	Popover       lipgloss.Style
	PopoverSquare lipgloss.Style
	PopoverTitle  lipgloss.Style

	// Menus
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	MenuMatch        lipgloss.Style
	Separator        lipgloss.Style
	Footer           lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		CanvasHint: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true),

		Scrim: lipgloss.NewStyle().
			Foreground(Overlay0).
			Faint(true),

		ScrimHeavy: lipgloss.NewStyle().
			Foreground(Surface2).
			Background(Crust).
			Faint(true),

		FadedContent: lipgloss.NewStyle().
			Foreground(Overlay1).
			Faint(true),

		Trigger: func(i int) lipgloss.Style {
			return lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(AnchorColors[i%len(AnchorColors)]).
				Foreground(Subtext1).
				Padding(0, 1)
		},

		TriggerActive: func(i int) lipgloss.Style {
			return lipgloss.NewStyle().
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(AnchorColors[i%len(AnchorColors)]).
				Foreground(Text).
				Bold(true).
				Padding(0, 1)
		},

		Popover: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(0, 1),

		PopoverSquare: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(0, 1),

		PopoverTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		MenuMatch: lipgloss.NewStyle().
			Foreground(Peach).
			Underline(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(Subtext0),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// Phase returns the status style for an overlay phase
func (s *Styles) Phase(p popover.Phase) lipgloss.Style {
	color, ok := PhaseColors[p]
	if !ok {
		color = Subtext0
	}
	return lipgloss.NewStyle().Foreground(color).Bold(p == popover.PhaseVisible)
}

// Frame returns the popover border for a corner radius. Terminals cannot
// draw arbitrary radii, so any positive radius gets rounded corners.
func (s *Styles) Frame(cornerRadius float64) lipgloss.Style {
	if cornerRadius > 0 {
		return s.Popover
	}
	return s.PopoverSquare
}
