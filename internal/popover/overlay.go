package popover

import (
	"github.com/google/uuid"
	"github.com/riordanpawley/popover/internal/geometry"
)

// ID identifies one logical overlay
type ID uuid.UUID

// NewID returns a random overlay identity
func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// ContentHandle is an opaque reference to host-managed content
type ContentHandle uint64

// Phase is an overlay's position in its show/hide lifecycle
type Phase int

const (
	// PhasePending means presented but not yet attached by the host
	PhasePending Phase = iota
	// PhaseVisible means the entry animation has been triggered
	PhaseVisible
	// PhaseDismissing means the exit animation has been triggered
	PhaseDismissing
	// PhaseRemoved means evicted from the stack
	PhaseRemoved
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseVisible:
		return "visible"
	case PhaseDismissing:
		return "dismissing"
	case PhaseRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Live reports whether the overlay can still be dismissed or updated
func (p Phase) Live() bool {
	return p == PhasePending || p == PhaseVisible
}

// Overlay is a presentation request. Once handed to a Controller it is
// owned by it; read state back through Snapshot values.
type Overlay struct {
	id        ID
	attrs     Attributes
	content   ContentHandle
	onDismiss func()

	phase    Phase
	size     geometry.Size
	offset   geometry.Offset
	measured bool
}

// NewOverlay creates an overlay with a fresh identity
func NewOverlay(attrs Attributes, content ContentHandle) *Overlay {
	return NewOverlayWithID(NewID(), attrs, content)
}

// NewOverlayWithID creates an overlay with a caller-chosen identity.
// Presenting it again with the same identity updates it in place.
func NewOverlayWithID(id ID, attrs Attributes, content ContentHandle) *Overlay {
	return &Overlay{
		id:      id,
		attrs:   attrs.clone(),
		content: content,
	}
}

// OnDismiss sets the callback fired once the overlay has been removed
func (o *Overlay) OnDismiss(fn func()) *Overlay {
	o.onDismiss = fn
	return o
}

// ID returns the overlay identity
func (o *Overlay) ID() ID { return o.id }

func (o *Overlay) snapshot() Snapshot {
	return Snapshot{
		ID:         o.id,
		Content:    o.content,
		Attributes: o.attrs.clone(),
		Phase:      o.phase,
		Size:       o.size,
		Offset:     o.offset,
		Measured:   o.measured,
	}
}

// resolve recomputes the offset and reports whether it moved
func (o *Overlay) resolve() bool {
	next := o.attrs.Resolve(o.size)
	changed := next != o.offset
	o.offset = next
	return changed
}

// Snapshot is a consistent copy of an overlay's state
type Snapshot struct {
	ID         ID
	Content    ContentHandle
	Attributes Attributes
	Phase      Phase
	// Size is the last measured content size, without padding
	Size   geometry.Size
	Offset geometry.Offset
	// Measured is false until the host has reported a size
	Measured bool
}

// Visible is the two-valued phase used to drive entry/exit animations
func (s Snapshot) Visible() bool {
	return s.Phase == PhaseVisible
}

// Frame is the padded popover box in surface coordinates
func (s Snapshot) Frame() geometry.Rect {
	return geometry.RectOf(s.Offset.Point(), s.Size.Pad(s.Attributes.Padding))
}

// ContentOrigin is where the content itself is drawn, inside the padding
func (s Snapshot) ContentOrigin() geometry.Point {
	p := s.Attributes.Padding
	return geometry.Point{X: s.Offset.DX + p.Left, Y: s.Offset.DY + p.Top}
}
