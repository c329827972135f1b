// Package popover keeps per-surface stacks of anchored overlays and drives
// their lifecycle: present, attach, measure, dismiss, remove.
//
// The package is independent of any UI toolkit. A host subscribes to a
// Controller's events and does the drawing; content is referenced by an
// opaque ContentHandle.
package popover

import "github.com/riordanpawley/popover/internal/geometry"

// TransitionKind identifies an entry/exit effect
type TransitionKind int

const (
	TransitionSlide TransitionKind = iota
	TransitionScale
	TransitionOpacity
)

// String returns the config name of the transition kind
func (k TransitionKind) String() string {
	switch k {
	case TransitionSlide:
		return "slide"
	case TransitionScale:
		return "scale"
	case TransitionOpacity:
		return "opacity"
	default:
		return "unknown"
	}
}

// Transition is one entry/exit effect. DX/DY are only used by slides and
// give the displacement of the hidden state.
type Transition struct {
	Kind   TransitionKind
	DX, DY float64
}

// Slide moves the popover in from (dx, dy) away from its resting place
func Slide(dx, dy float64) Transition {
	return Transition{Kind: TransitionSlide, DX: dx, DY: dy}
}

// Scale grows the popover from its pivot
func Scale() Transition {
	return Transition{Kind: TransitionScale}
}

// Opacity fades the popover in
func Opacity() Transition {
	return Transition{Kind: TransitionOpacity}
}

// DefaultShadowColor is 33% black
const DefaultShadowColor = "#00000054"

// Attributes configures one overlay. Everything except SourceRect is fixed
// once the overlay has been presented.
type Attributes struct {
	// SourceRect is the trigger's frame (absolute placement) or the
	// surface's safe bounds (relative placement)
	SourceRect geometry.Rect

	Placement    geometry.Placement
	Padding      geometry.Insets
	CornerRadius float64
	ShadowRadius float64
	ShadowColor  string

	// TapDismiss lets a tap on the scrim dismiss the topmost overlay
	TapDismiss bool
	// ScrimOpacity dims the surface behind the stack while this overlay is on top
	ScrimOpacity float64

	Transitions []Transition
}

// DefaultAttributes returns centered attributes with the stock styling
func DefaultAttributes() Attributes {
	return Attributes{
		Placement:    geometry.Absolute(geometry.Center, geometry.Center),
		CornerRadius: 8,
		ShadowRadius: 50,
		ShadowColor:  DefaultShadowColor,
		TapDismiss:   true,
		ScrimOpacity: 0.2,
		Transitions:  []Transition{Scale(), Opacity()},
	}
}

// Pivot is the scale pivot for this overlay's popover anchor
func (a Attributes) Pivot() geometry.UnitPoint {
	return geometry.PivotFor(a.Placement.PopoverAnchor())
}

// Has reports whether the transition list contains kind
func (a Attributes) Has(kind TransitionKind) bool {
	for _, t := range a.Transitions {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// Resolve returns the offset of the padded popover box for a measured
// content size.
func (a Attributes) Resolve(content geometry.Size) geometry.Offset {
	return geometry.ResolveOffset(a.SourceRect, a.Placement, content.Pad(a.Padding))
}

func (a Attributes) clone() Attributes {
	c := a
	c.Transitions = append([]Transition(nil), a.Transitions...)
	return c
}
