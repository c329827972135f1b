package geometry

import "fmt"

// PlacementMode selects how the anchor point of a placement is obtained
type PlacementMode int

const (
	// ModeAbsolute anchors the popover to the source rectangle
	ModeAbsolute PlacementMode = iota
	// ModeRelative anchors the popover to a point of the host surface
	ModeRelative
)

// String returns the config name of the mode
func (m PlacementMode) String() string {
	switch m {
	case ModeAbsolute:
		return "absolute"
	case ModeRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// Placement describes where a popover attaches. Build it with Absolute or
// Relative; the zero value is Absolute(TopLeft, TopLeft).
type Placement struct {
	mode          PlacementMode
	originAnchor  Anchor
	popoverAnchor Anchor
	point         Point
}

// Absolute attaches the popover's popoverAnchor to the originAnchor of the
// source rectangle.
func Absolute(originAnchor, popoverAnchor Anchor) Placement {
	return Placement{mode: ModeAbsolute, originAnchor: originAnchor, popoverAnchor: popoverAnchor}
}

// Relative attaches the popover's popoverAnchor to point.
func Relative(point Point, popoverAnchor Anchor) Placement {
	return Placement{mode: ModeRelative, point: point, popoverAnchor: popoverAnchor}
}

// Mode returns which variant p is
func (p Placement) Mode() PlacementMode { return p.mode }

// OriginAnchor is the source-rectangle anchor. Only meaningful for ModeAbsolute.
func (p Placement) OriginAnchor() Anchor { return p.originAnchor }

// PopoverAnchor is the popover point that is aligned to the anchor point
func (p Placement) PopoverAnchor() Anchor { return p.popoverAnchor }

// Point is the caller-supplied anchor point. Only meaningful for ModeRelative.
func (p Placement) Point() Point { return p.point }

// AnchorPoint returns the point the popover is aligned to
func (p Placement) AnchorPoint(source Rect) Point {
	if p.mode == ModeRelative {
		return p.point
	}
	return source.AnchorPoint(p.originAnchor)
}

func (p Placement) String() string {
	if p.mode == ModeRelative {
		return fmt.Sprintf("relative(%g,%g → %s)", p.point.X, p.point.Y, p.popoverAnchor)
	}
	return fmt.Sprintf("absolute(%s → %s)", p.originAnchor, p.popoverAnchor)
}
