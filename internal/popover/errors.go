package popover

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoSurface means the trigger is not attached to a host surface yet.
	// Callers retry on the next attachment event.
	ErrNoSurface = errors.New("no host surface")
	// ErrDetached means the controller was torn down after its stack emptied
	ErrDetached = errors.New("controller detached")
	// ErrDismissing means an overlay with the same identity is on its way out
	ErrDismissing = errors.New("overlay is dismissing")
)

// PresentError wraps a failed presentation with the operation and overlay involved
type PresentError struct {
	Op        string // Operation: "present", "update", etc.
	OverlayID ID     // Optional: overlay identity
	Err       error  // Underlying error
}

func (e *PresentError) Error() string {
	if e.OverlayID != (ID{}) {
		return fmt.Sprintf("popover %s [%s]: %v", e.Op, e.OverlayID, e.Err)
	}
	return fmt.Sprintf("popover %s: %v", e.Op, e.Err)
}

func (e *PresentError) Unwrap() error {
	return e.Err
}
