package popover

import (
	"errors"
	"log/slog"
	"sync"
	"weak"
)

// Registry maps host surfaces to their stack controllers. Surfaces are
// held weakly: an entry never keeps its surface alive, and entries of
// collected surfaces are pruned on the next access.
type Registry struct {
	mu      sync.Mutex
	entries map[weak.Pointer[Surface]]*Controller
	opts    []ControllerOption
	logger  *slog.Logger
}

var shared = NewRegistry()

// Shared returns the process-wide registry
func Shared() *Registry {
	return shared
}

// NewRegistry creates an empty registry. opts are applied to every
// controller it creates.
func NewRegistry(opts ...ControllerOption) *Registry {
	// Log through whatever logger the controllers end up with
	settings := &Controller{logger: slog.Default()}
	for _, opt := range opts {
		opt(settings)
	}
	return &Registry{
		entries: make(map[weak.Pointer[Surface]]*Controller),
		opts:    opts,
		logger:  settings.logger,
	}
}

// GetOrCreate returns the surface's controller, creating and attaching one
// if there is none. Concurrent callers get the same controller.
func (r *Registry) GetOrCreate(s *Surface) (*Controller, error) {
	if s == nil {
		return nil, ErrNoSurface
	}

	r.mu.Lock()
	stale := r.pruneLocked()
	key := weak.Make(s)
	c, ok := r.entries[key]
	if !ok {
		c = NewController(r.opts...)
		c.onEmpty = r.controllerEmptied
		r.entries[key] = c
		if s.host != nil {
			s.host.Attach(c)
		}
		r.logger.Debug("popover surface attached", "surface", s.name)
	}
	r.mu.Unlock()

	teardownAll(stale)
	return c, nil
}

// Lookup returns the surface's controller without creating one
func (r *Registry) Lookup(s *Surface) (*Controller, bool) {
	if s == nil {
		return nil, false
	}

	r.mu.Lock()
	stale := r.pruneLocked()
	c, ok := r.entries[weak.Make(s)]
	r.mu.Unlock()

	teardownAll(stale)
	return c, ok
}

// Present presents o on the surface, creating the controller on demand.
// A controller that detached between lookup and presentation is replaced.
func (r *Registry) Present(s *Surface, o *Overlay) (*Controller, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		c, err := r.GetOrCreate(s)
		if err != nil {
			return nil, err
		}
		err = c.Present(o)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrDetached) {
			return c, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Dismiss programmatically dismisses an overlay on the surface. Unknown
// surfaces and overlays are no-ops.
func (r *Registry) Dismiss(s *Surface, id ID) bool {
	c, ok := r.Lookup(s)
	if !ok {
		return false
	}
	return c.RequestDismiss(id, false)
}

// RemoveIfEmpty detaches and forgets the surface's controller when its
// stack is empty. It reports whether an entry was removed.
func (r *Registry) RemoveIfEmpty(s *Surface) bool {
	if s == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := weak.Make(s)
	c, ok := r.entries[key]
	if !ok || !c.detachIfEmpty() {
		return false
	}
	delete(r.entries, key)
	if s.host != nil {
		s.host.Detach(c)
	}
	r.logger.Debug("popover surface detached", "surface", s.name)
	return true
}

// Forget is called by the host when a surface is being destroyed. Every
// overlay is removed at once and the controller is detached.
func (r *Registry) Forget(s *Surface) {
	if s == nil {
		return
	}

	r.mu.Lock()
	key := weak.Make(s)
	c, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()

	if !ok {
		return
	}
	c.teardown()
	if s.host != nil {
		s.host.Detach(c)
	}
	r.logger.Debug("popover surface forgotten", "surface", s.name)
}

// Len returns the number of surfaces with a controller
func (r *Registry) Len() int {
	r.mu.Lock()
	stale := r.pruneLocked()
	n := len(r.entries)
	r.mu.Unlock()

	teardownAll(stale)
	return n
}

func (r *Registry) controllerEmptied(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, candidate := range r.entries {
		if candidate != c {
			continue
		}
		if !c.detachIfEmpty() {
			return
		}
		delete(r.entries, key)
		if s := key.Value(); s != nil && s.host != nil {
			s.host.Detach(c)
			r.logger.Debug("popover surface detached", "surface", s.name)
		}
		return
	}
}

// pruneLocked drops entries whose surface has been collected and returns
// their controllers for teardown outside the lock.
func (r *Registry) pruneLocked() []*Controller {
	var stale []*Controller
	for key, c := range r.entries {
		if key.Value() == nil {
			delete(r.entries, key)
			stale = append(stale, c)
		}
	}
	return stale
}

func teardownAll(cs []*Controller) {
	for _, c := range cs {
		c.teardown()
	}
}
