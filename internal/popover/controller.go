package popover

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/riordanpawley/popover/internal/geometry"
)

// Controller owns the ordered overlay stack of one host surface.
//
// New overlays are appended at the tail; taps always target the tail.
// State changes are serialized by a mutex and reported to listeners after
// the mutex is released, so listeners and dismissal callbacks may call back
// into the controller.
type Controller struct {
	mu        sync.Mutex
	overlays  []*Overlay
	detached  bool
	listeners map[int]Listener
	nextSub   int

	fade  float64
	scrim float64

	// reportedFade is the fade listeners last saw
	reportedFade float64

	scheduler Scheduler
	timing    Timing
	logger    *slog.Logger

	// onEmpty is called after an eviction leaves the stack empty
	onEmpty func(*Controller)
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithScheduler sets the scheduler used for delayed evictions
func WithScheduler(s Scheduler) ControllerOption {
	return func(c *Controller) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithTiming sets the animation constants
func WithTiming(t Timing) ControllerOption {
	return func(c *Controller) {
		c.timing = t
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController creates a controller with an empty stack
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		listeners: make(map[int]Listener),
		scheduler: TimerScheduler{},
		timing:    DefaultTiming(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fade = c.timing.InitialFade
	c.reportedFade = c.fade
	return c
}

// Subscribe registers a listener and returns a function that removes it
func (c *Controller) Subscribe(l Listener) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.listeners[id] = l

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Present appends o to the stack in PhasePending. Presenting an identity
// that is already pending or visible updates that overlay in place.
func (c *Controller) Present(o *Overlay) error {
	c.mu.Lock()

	if c.detached {
		c.mu.Unlock()
		return &PresentError{Op: "present", OverlayID: o.id, Err: ErrDetached}
	}

	var events []Event
	if existing := c.find(o.id); existing != nil {
		if !existing.phase.Live() {
			c.mu.Unlock()
			return &PresentError{Op: "update", OverlayID: o.id, Err: ErrDismissing}
		}
		existing.attrs = o.attrs.clone()
		existing.content = o.content
		if o.onDismiss != nil {
			existing.onDismiss = o.onDismiss
		}
		existing.resolve()
		events = append(events, c.event(EventUpdated, existing))
		c.logger.Debug("popover updated", "id", o.id, "placement", existing.attrs.Placement)
	} else {
		o.phase = PhasePending
		o.resolve()
		c.overlays = append(c.overlays, o)
		events = append(events, c.event(EventPresented, o))
		c.logger.Debug("popover presented", "id", o.id, "depth", len(c.overlays))
	}
	events = c.refreshStack(events)
	listeners := c.listenerList()
	c.mu.Unlock()

	dispatch(listeners, events)
	return nil
}

// MarkAttached is called by the host once the overlay's content has been
// inserted into the surface. It moves a pending overlay to PhaseVisible,
// which starts the entry animation from the hidden state.
func (c *Controller) MarkAttached(id ID) bool {
	c.mu.Lock()

	o := c.find(id)
	if o == nil || o.phase != PhasePending {
		c.mu.Unlock()
		return false
	}
	o.phase = PhaseVisible
	c.fade = 1
	events := c.refreshStack([]Event{c.event(EventShown, o)})
	listeners := c.listenerList()
	c.mu.Unlock()

	dispatch(listeners, events)
	return true
}

// Measure records the measured content size of an overlay and resolves its
// offset. It returns the current offset and whether anything changed.
func (c *Controller) Measure(id ID, size geometry.Size) (geometry.Offset, bool) {
	c.mu.Lock()

	o := c.find(id)
	if o == nil || o.phase == PhaseRemoved {
		c.mu.Unlock()
		return geometry.Offset{}, false
	}
	if o.measured && o.size == size {
		offset := o.offset
		c.mu.Unlock()
		return offset, false
	}
	o.size = size
	o.measured = true
	o.resolve()
	offset := o.offset
	events := []Event{c.event(EventResolved, o)}
	listeners := c.listenerList()
	c.mu.Unlock()

	dispatch(listeners, events)
	return offset, true
}

// UpdateSource replaces the source rectangle of an overlay, for example
// after its trigger moved, and re-resolves the offset.
func (c *Controller) UpdateSource(id ID, rect geometry.Rect) bool {
	c.mu.Lock()

	o := c.find(id)
	if o == nil || o.phase == PhaseRemoved || o.attrs.SourceRect == rect {
		c.mu.Unlock()
		return false
	}
	o.attrs.SourceRect = rect
	if !o.resolve() {
		c.mu.Unlock()
		return true
	}
	events := []Event{c.event(EventResolved, o)}
	listeners := c.listenerList()
	c.mu.Unlock()

	dispatch(listeners, events)
	return true
}

// RequestDismiss starts the exit of an overlay. A tap only dismisses
// overlays with TapDismiss set; programmatic requests always do. Requests
// for unknown or already dismissing overlays are no-ops. The overlay is
// evicted after Timing.ExitDelay.
func (c *Controller) RequestDismiss(id ID, viaTap bool) bool {
	c.mu.Lock()

	o := c.find(id)
	if o == nil || !o.phase.Live() || (viaTap && !o.attrs.TapDismiss) {
		c.mu.Unlock()
		return false
	}
	o.phase = PhaseDismissing
	if c.liveCount() == 0 {
		c.fade = 0
	}
	events := c.refreshStack([]Event{c.event(EventDismissing, o)})
	listeners := c.listenerList()
	delay := c.timing.ExitDelay
	c.mu.Unlock()

	c.logger.Debug("popover dismissing", "id", id, "via_tap", viaTap)
	dispatch(listeners, events)
	c.scheduler.AfterFunc(delay, func() { c.evict(o) })
	return true
}

// PopTop dismisses the last overlay of the stack as if the scrim was tapped
func (c *Controller) PopTop() bool {
	c.mu.Lock()
	if len(c.overlays) == 0 {
		c.mu.Unlock()
		return false
	}
	id := c.overlays[len(c.overlays)-1].id
	c.mu.Unlock()

	return c.RequestDismiss(id, true)
}

// DismissAll programmatically dismisses every live overlay, top first.
// It returns the number of dismissals started.
func (c *Controller) DismissAll() int {
	c.mu.Lock()
	ids := make([]ID, 0, len(c.overlays))
	for i := len(c.overlays) - 1; i >= 0; i-- {
		if c.overlays[i].phase.Live() {
			ids = append(ids, c.overlays[i].id)
		}
	}
	c.mu.Unlock()

	n := 0
	for _, id := range ids {
		if c.RequestDismiss(id, false) {
			n++
		}
	}
	return n
}

// evict removes a dismissing overlay. The phase guard makes repeated or
// stale evictions harmless.
func (c *Controller) evict(o *Overlay) {
	c.mu.Lock()

	if o.phase != PhaseDismissing {
		c.mu.Unlock()
		return
	}
	idx := -1
	for i, candidate := range c.overlays {
		if candidate == o {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.overlays = append(c.overlays[:idx], c.overlays[idx+1:]...)
	o.phase = PhaseRemoved

	events := c.refreshStack([]Event{c.event(EventRemoved, o)})
	listeners := c.listenerList()
	callback := o.onDismiss
	o.onDismiss = nil
	empty := len(c.overlays) == 0
	onEmpty := c.onEmpty
	c.mu.Unlock()

	c.logger.Debug("popover removed", "id", o.id, "empty", empty)
	dispatch(listeners, events)
	if callback != nil {
		callback()
	}
	if empty && onEmpty != nil {
		onEmpty(c)
	}
}

// teardown drops every overlay at once, firing each callback once, and
// detaches the controller. Used when the host surface goes away.
func (c *Controller) teardown() {
	c.mu.Lock()

	removed := c.overlays
	c.overlays = nil
	c.detached = true
	var events []Event
	var callbacks []func()
	for _, o := range removed {
		o.phase = PhaseRemoved
		events = append(events, c.event(EventRemoved, o))
		if o.onDismiss != nil {
			callbacks = append(callbacks, o.onDismiss)
			o.onDismiss = nil
		}
	}
	events = c.refreshStack(events)
	listeners := c.listenerList()
	c.mu.Unlock()

	dispatch(listeners, events)
	for _, cb := range callbacks {
		cb()
	}
}

// detachIfEmpty marks an empty controller as detached so late
// presentations go through the registry again.
func (c *Controller) detachIfEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.overlays) > 0 {
		return false
	}
	c.detached = true
	return true
}

// Detached reports whether the controller has been torn down
func (c *Controller) Detached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detached
}

// Len returns the number of overlays, dismissing ones included
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.overlays)
}

// Overlays returns snapshots in stack order, bottom first
func (c *Controller) Overlays() []Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Snapshot, len(c.overlays))
	for i, o := range c.overlays {
		out[i] = o.snapshot()
	}
	return out
}

// Top returns the last overlay of the stack
func (c *Controller) Top() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.overlays) == 0 {
		return Snapshot{}, false
	}
	return c.overlays[len(c.overlays)-1].snapshot(), true
}

// Lookup returns the overlay with the given identity
func (c *Controller) Lookup(id ID) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o := c.find(id); o != nil {
		return o.snapshot(), true
	}
	return Snapshot{}, false
}

// Scrim returns the scrim opacity of the topmost live overlay, or 0
func (c *Controller) Scrim() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrim
}

// Fade returns the fade of the whole stack
func (c *Controller) Fade() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fade
}

// Timing returns the controller's animation constants
func (c *Controller) Timing() Timing {
	return c.timing
}

func (c *Controller) find(id ID) *Overlay {
	for _, o := range c.overlays {
		if o.id == id {
			return o
		}
	}
	return nil
}

func (c *Controller) liveCount() int {
	n := 0
	for _, o := range c.overlays {
		if o.phase.Live() {
			n++
		}
	}
	return n
}

// refreshStack recomputes the derived scrim, stamps the current scrim and
// fade on events and appends EventStackChanged when either moved since it
// was last reported.
func (c *Controller) refreshStack(events []Event) []Event {
	scrim := 0.0
	for i := len(c.overlays) - 1; i >= 0; i-- {
		if c.overlays[i].phase.Live() {
			scrim = c.overlays[i].attrs.ScrimOpacity
			break
		}
	}

	changed := scrim != c.scrim || c.fade != c.reportedFade
	c.scrim = scrim
	c.reportedFade = c.fade
	for i := range events {
		events[i].Scrim = c.scrim
		events[i].Fade = c.fade
		events[i].Depth = len(c.overlays)
	}
	if !changed {
		return events
	}
	return append(events, Event{Kind: EventStackChanged, Scrim: c.scrim, Fade: c.fade, Depth: len(c.overlays)})
}

func (c *Controller) event(kind EventKind, o *Overlay) Event {
	return Event{
		Kind:    kind,
		Overlay: o.snapshot(),
		Scrim:   c.scrim,
		Fade:    c.fade,
		Depth:   len(c.overlays),
	}
}

func (c *Controller) listenerList() []Listener {
	if len(c.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = c.listeners[id]
	}
	return out
}

func dispatch(listeners []Listener, events []Event) {
	for _, e := range events {
		for _, l := range listeners {
			l(e)
		}
	}
}
