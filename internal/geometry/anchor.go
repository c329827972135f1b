// Package geometry resolves where an overlay lands relative to an anchor.
//
// Coordinates are float64 with the origin in the top-left corner and y
// growing downwards. Hosts working in terminal cells round at the edge.
package geometry

import (
	"fmt"
	"strings"
)

// Anchor is one of the nine attachment points of a rectangle.
//
//	topLeft        top        topRight
//	   X────────────X────────────X
//	   |                         |
//	left X        center         X right
//	   |                         |
//	   X────────────X────────────X
//	bottomLeft    bottom    bottomRight
type Anchor int

const (
	TopLeft Anchor = iota
	Top
	TopRight
	Right
	BottomRight
	Bottom
	BottomLeft
	Left
	Center
)

// Anchors lists every anchor in declaration order.
var Anchors = []Anchor{TopLeft, Top, TopRight, Right, BottomRight, Bottom, BottomLeft, Left, Center}

var anchorNames = map[Anchor]string{
	TopLeft:     "topLeft",
	Top:         "top",
	TopRight:    "topRight",
	Right:       "right",
	BottomRight: "bottomRight",
	Bottom:      "bottom",
	BottomLeft:  "bottomLeft",
	Left:        "left",
	Center:      "center",
}

// String returns the lower-camel name of the anchor
func (a Anchor) String() string {
	if name, ok := anchorNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// Valid reports whether a is one of the nine anchors
func (a Anchor) Valid() bool {
	_, ok := anchorNames[a]
	return ok
}

// Fraction returns the unit coordinates of the anchor inside a rectangle.
// Each component is 0, 0.5 or 1.
func (a Anchor) Fraction() (fx, fy float64) {
	switch a {
	case TopLeft:
		return 0, 0
	case Top:
		return 0.5, 0
	case TopRight:
		return 1, 0
	case Right:
		return 1, 0.5
	case BottomRight:
		return 1, 1
	case Bottom:
		return 0.5, 1
	case BottomLeft:
		return 0, 1
	case Left:
		return 0, 0.5
	default:
		return 0.5, 0.5
	}
}

// Opposite mirrors the anchor through the center. Center is its own
// opposite.
func (a Anchor) Opposite() Anchor {
	if a < TopLeft || a >= Center {
		return a
	}
	return (a + 4) % 8
}

// anchorsByName maps lower-cased names to anchors
var anchorsByName = func() map[string]Anchor {
	m := make(map[string]Anchor, len(anchorNames))
	for a, name := range anchorNames {
		m[strings.ToLower(name)] = a
	}
	return m
}()

var anchorSeparators = strings.NewReplacer("-", "", "_", "", " ", "")

// ParseAnchor parses a lower-camel anchor name such as "bottomRight".
// Kebab and snake spellings ("bottom-right", "bottom_right") are accepted too.
func ParseAnchor(s string) (Anchor, error) {
	if a, ok := anchorsByName[strings.ToLower(anchorSeparators.Replace(s))]; ok {
		return a, nil
	}
	return Center, fmt.Errorf("unknown anchor %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (a Anchor) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("invalid anchor %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Anchor) UnmarshalText(text []byte) error {
	parsed, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
