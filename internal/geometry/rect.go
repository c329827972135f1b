package geometry

import "math"

// Point is a position in surface coordinates
type Point struct {
	X, Y float64
}

// Add returns p translated by o
func (p Point) Add(o Offset) Point {
	return Point{X: p.X + o.DX, Y: p.Y + o.DY}
}

// Size is a width/height pair. Negative components are treated as zero.
type Size struct {
	Width, Height float64
}

// IsZero reports whether the size has no area
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Pad grows the size by the given insets, clamping at zero
func (s Size) Pad(in Insets) Size {
	return Size{
		Width:  math.Max(0, s.Width+in.Left+in.Right),
		Height: math.Max(0, s.Height+in.Top+in.Bottom),
	}
}

// Offset is a translation from the surface origin
type Offset struct {
	DX, DY float64
}

// Point returns the offset as a point
func (o Offset) Point() Point {
	return Point{X: o.DX, Y: o.DY}
}

// Insets are per-edge paddings. Negative values pull the edge inwards.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Uniform returns insets with the same value on every edge
func Uniform(v float64) Insets {
	return Insets{Top: v, Left: v, Bottom: v, Right: v}
}

// Rect is an axis-aligned rectangle
type Rect struct {
	X, Y, Width, Height float64
}

// RectOf builds a rectangle from an origin and a size
func RectOf(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's size
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the centroid
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width*0.5, Y: r.Y + r.Height*0.5}
}

// IsEmpty reports whether the rectangle has no area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r (max edges exclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Inset shrinks r by the insets. The result never has negative size.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  math.Max(0, r.Width-in.Left-in.Right),
		Height: math.Max(0, r.Height-in.Top-in.Bottom),
	}
}

// AnchorPoint returns the point of r designated by a
func (r Rect) AnchorPoint(a Anchor) Point {
	fx, fy := a.Fraction()
	return Point{X: r.X + r.Width*fx, Y: r.Y + r.Height*fy}
}
