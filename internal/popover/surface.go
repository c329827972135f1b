package popover

import (
	"sync"

	"github.com/riordanpawley/popover/internal/geometry"
)

// Host inserts a controller's overlay layer into a surface's visual tree
// and removes it again. Attach is called with the registry locked and must
// not call back into the registry; subscribing to the controller is fine.
type Host interface {
	Attach(c *Controller)
	Detach(c *Controller)
}

// Surface is the window or screen area an overlay stack attaches to. The
// host framework owns it; the registry only keeps a weak reference.
type Surface struct {
	name string
	host Host

	mu     sync.RWMutex
	bounds geometry.Rect
	safe   geometry.Rect
}

// NewSurface creates a surface drawn by host
func NewSurface(name string, host Host) *Surface {
	return &Surface{name: name, host: host}
}

// Name returns the surface name used in logs
func (s *Surface) Name() string {
	return s.name
}

// Host returns the host that draws this surface's overlays
func (s *Surface) Host() Host {
	return s.host
}

// SetBounds records the surface bounds and its safe area. An empty safe
// area defaults to the bounds.
func (s *Surface) SetBounds(bounds, safe geometry.Rect) {
	if safe.IsEmpty() {
		safe = bounds
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bounds = bounds
	s.safe = safe
}

// Bounds returns the full surface rectangle
func (s *Surface) Bounds() geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

// SafeBounds returns the area not covered by system chrome
func (s *Surface) SafeBounds() geometry.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.safe
}
