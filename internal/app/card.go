package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popover/internal/ui/overlay"
	"github.com/riordanpawley/popover/internal/ui/styles"
)

// cardAction is a request a trigger popover sends to the app
type cardAction int

const (
	actionConfirm cardAction = iota
	actionPalette
	actionDismissAll
)

const cardKey = "card"

const cardFooter = "c confirm · p palette · enter close"

// anchorCard is the content of a trigger's popover: it shows how the
// popover is attached and offers the stacking actions
type anchorCard struct {
	trigger *Trigger
	styles  *styles.Styles
}

func newAnchorCard(t *Trigger, st *styles.Styles) *anchorCard {
	return &anchorCard{trigger: t, styles: st}
}

func (c *anchorCard) Init() tea.Cmd {
	return nil
}

func (c *anchorCard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "enter", "q":
		return c, func() tea.Msg { return overlay.CloseOverlayMsg{} }
	case "c":
		return c, c.send(actionConfirm)
	case "p":
		return c, c.send(actionPalette)
	case "x":
		return c, c.send(actionDismissAll)
	}
	return c, nil
}

func (c *anchorCard) send(a cardAction) tea.Cmd {
	return func() tea.Msg {
		return overlay.SelectionMsg{Key: cardKey, Value: a}
	}
}

func (c *anchorCard) View() string {
	p := c.trigger.Placement()
	f := c.trigger.Frame()

	var b strings.Builder
	row := func(k, v string) {
		b.WriteString(c.styles.MenuKey.Render(fmt.Sprintf("%-8s", k)))
		b.WriteString(c.styles.MenuItem.Render(v))
		b.WriteString("\n")
	}
	row("origin", p.OriginAnchor().String())
	row("popover", p.PopoverAnchor().String())
	row("trigger", fmt.Sprintf("%g,%g %gx%g", f.X, f.Y, f.Width, f.Height))
	b.WriteString(c.styles.Separator.Render(strings.Repeat("─", lipgloss.Width(cardFooter))))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render(cardFooter))
	return b.String()
}

func (c *anchorCard) Title() string {
	return c.trigger.Label()
}

func (c *anchorCard) Size() (width, height int) {
	return 0, 0
}
