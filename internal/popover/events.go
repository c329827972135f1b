package popover

// EventKind identifies a lifecycle transition
type EventKind int

const (
	// EventPresented is emitted when an overlay is appended in PhasePending
	EventPresented EventKind = iota
	// EventUpdated is emitted when a live overlay is re-presented with new attributes
	EventUpdated
	// EventShown is emitted on pending → visible
	EventShown
	// EventResolved is emitted when the measured size or offset changes
	EventResolved
	// EventDismissing is emitted on → dismissing
	EventDismissing
	// EventRemoved is emitted after eviction, before the dismissal callback
	EventRemoved
	// EventStackChanged is emitted when the derived scrim or fade changes
	EventStackChanged
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	switch k {
	case EventPresented:
		return "presented"
	case EventUpdated:
		return "updated"
	case EventShown:
		return "shown"
	case EventResolved:
		return "resolved"
	case EventDismissing:
		return "dismissing"
	case EventRemoved:
		return "removed"
	case EventStackChanged:
		return "stack-changed"
	default:
		return "unknown"
	}
}

// Event describes one transition. Scrim and Fade carry the stack's derived
// values after the transition.
type Event struct {
	Kind    EventKind
	Overlay Snapshot
	Scrim   float64
	Fade    float64
	// Depth is the number of overlays in the stack, dismissing ones included
	Depth int
}

// Listener receives controller events on the goroutine that caused them
type Listener func(Event)
