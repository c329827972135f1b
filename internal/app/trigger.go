package app

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/riordanpawley/popover/internal/popover"
	"github.com/riordanpawley/popover/internal/ui/styles"
)

// gridAnchors is the trigger order on screen, row by row
var gridAnchors = []geometry.Anchor{
	geometry.TopLeft, geometry.Top, geometry.TopRight,
	geometry.Left, geometry.Center, geometry.Right,
	geometry.BottomLeft, geometry.Bottom, geometry.BottomRight,
}

// Cells kept free between the safe area edge and the outer triggers
const (
	marginX = 2
	marginY = 1
)

// Trigger is one button of the demo grid, pinned to an anchor of the screen
type Trigger struct {
	index   int
	anchor  geometry.Anchor
	frame   geometry.Rect
	surface *popover.Surface
}

// Frame implements popover.Trigger
func (t *Trigger) Frame() geometry.Rect {
	return t.frame
}

// Surface implements popover.Trigger. It is nil until the first layout.
func (t *Trigger) Surface() *popover.Surface {
	return t.surface
}

// Anchor is the screen anchor the trigger sits on
func (t *Trigger) Anchor() geometry.Anchor {
	return t.anchor
}

// Label is the text drawn in the trigger
func (t *Trigger) Label() string {
	return t.anchor.String()
}

// Placement attaches the popover's side facing the trigger to the
// opposite side of the trigger, so edge popovers open towards the center
func (t *Trigger) Placement() geometry.Placement {
	return geometry.Absolute(t.anchor.Opposite(), t.anchor)
}

// Slide is the entry displacement, coming in from the trigger's edge. The
// center trigger has none.
func (t *Trigger) Slide() (popover.Transition, bool) {
	fx, fy := t.anchor.Fraction()
	dx, dy := (fx-0.5)*4, (fy-0.5)*2
	if dx == 0 && dy == 0 {
		return popover.Transition{}, false
	}
	return popover.Slide(dx, dy), true
}

// View renders the trigger button
func (t *Trigger) View(st *styles.Styles, active bool) string {
	if active {
		return st.TriggerActive(t.index).Render(t.Label())
	}
	return st.Trigger(t.index).Render(t.Label())
}

func newTriggers() []*Trigger {
	triggers := make([]*Trigger, len(gridAnchors))
	for i, a := range gridAnchors {
		triggers[i] = &Trigger{index: i, anchor: a}
	}
	return triggers
}

// layoutTriggers places each trigger on its anchor of area, inset by the
// margins, and attaches it to surface
func layoutTriggers(triggers []*Trigger, area geometry.Rect, surface *popover.Surface, st *styles.Styles) {
	inner := area.Inset(geometry.Insets{Top: marginY, Bottom: marginY, Left: marginX, Right: marginX})
	for _, t := range triggers {
		w, h := lipgloss.Size(t.View(st, false))
		fx, fy := t.anchor.Fraction()
		x := inner.X + math.Round(fx*math.Max(0, inner.Width-float64(w)))
		y := inner.Y + math.Round(fy*math.Max(0, inner.Height-float64(h)))
		t.frame = geometry.Rect{X: x, Y: y, Width: float64(w), Height: float64(h)}
		t.surface = surface
	}
}

// triggerAt returns the index of the trigger under p
func triggerAt(triggers []*Trigger, p geometry.Point) (int, bool) {
	for i, t := range triggers {
		if t.frame.Contains(p) {
			return i, true
		}
	}
	return 0, false
}

// screenTrigger presents popovers placed relative to the whole screen
type screenTrigger struct {
	model *Model
}

func (s screenTrigger) Frame() geometry.Rect {
	return s.model.surface.SafeBounds()
}

func (s screenTrigger) Surface() *popover.Surface {
	if !s.model.attached {
		return nil
	}
	return s.model.surface
}
