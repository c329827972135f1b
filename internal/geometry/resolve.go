package geometry

// UnitPoint is a point expressed as fractions of a rectangle's size
type UnitPoint struct {
	X, Y float64
}

// In returns the absolute point of u inside r
func (u UnitPoint) In(r Rect) Point {
	return Point{X: r.X + r.Width*u.X, Y: r.Y + r.Height*u.Y}
}

// ResolveOffset returns the top-left offset at which a popover of the given
// size must be placed so that its popover anchor sits on the placement's
// anchor point.
//
// The size is only known after the content has been measured, so callers
// resolve again whenever it changes. Zero sizes and empty source
// rectangles are valid and collapse the offset onto the anchor point.
func ResolveOffset(source Rect, p Placement, size Size) Offset {
	anchor := p.AnchorPoint(source)
	fx, fy := p.PopoverAnchor().Fraction()
	return Offset{
		DX: anchor.X - fx*nonNegative(size.Width),
		DY: anchor.Y - fy*nonNegative(size.Height),
	}
}

// PivotFor returns the scale pivot for a popover anchor. It is the same
// point ResolveOffset aligns, so scaling around it keeps the popover
// attached to its anchor.
func PivotFor(a Anchor) UnitPoint {
	fx, fy := a.Fraction()
	return UnitPoint{X: fx, Y: fy}
}

// AlignedPoint is the inverse of ResolveOffset: the point of a popover placed
// at offset that corresponds to anchor a.
func AlignedPoint(offset Offset, a Anchor, size Size) Point {
	pivot := PivotFor(a)
	return Point{
		X: offset.DX + pivot.X*nonNegative(size.Width),
		Y: offset.DY + pivot.Y*nonNegative(size.Height),
	}
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
