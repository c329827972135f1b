package popover

import (
	"testing"
	"time"

	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler queues delayed work until the test runs it
type manualScheduler struct {
	queue  []func()
	delays []time.Duration
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.queue = append(s.queue, fn)
	s.delays = append(s.delays, d)
}

// runAll fires every queued function, including ones queued while running
func (s *manualScheduler) runAll() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

func newTestController(t *testing.T) (*Controller, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	return NewController(WithScheduler(sched)), sched
}

func presentAttached(t *testing.T, c *Controller, attrs Attributes) *Overlay {
	t.Helper()
	o := NewOverlay(attrs, 0)
	require.NoError(t, c.Present(o))
	require.True(t, c.MarkAttached(o.ID()))
	return o
}

func TestController_PresentStartsPending(t *testing.T) {
	c, _ := newTestController(t)
	o := NewOverlay(DefaultAttributes(), 7)

	require.NoError(t, c.Present(o))

	snap, ok := c.Lookup(o.ID())
	require.True(t, ok)
	assert.Equal(t, PhasePending, snap.Phase)
	assert.Equal(t, ContentHandle(7), snap.Content)
	assert.False(t, snap.Visible())
	assert.Equal(t, 1, c.Len())
}

func TestController_MarkAttachedShows(t *testing.T) {
	c, _ := newTestController(t)
	o := NewOverlay(DefaultAttributes(), 0)
	require.NoError(t, c.Present(o))

	assert.InDelta(t, 0.3, c.Fade(), 1e-9)
	assert.True(t, c.MarkAttached(o.ID()))

	snap, _ := c.Lookup(o.ID())
	assert.Equal(t, PhaseVisible, snap.Phase)
	assert.True(t, snap.Visible())
	assert.Equal(t, 1.0, c.Fade())

	// Second attach is a no-op
	assert.False(t, c.MarkAttached(o.ID()))
}

func TestController_MeasureResolvesOffset(t *testing.T) {
	c, _ := newTestController(t)
	attrs := DefaultAttributes()
	attrs.SourceRect = geometry.Rect{Width: 100, Height: 50}
	attrs.Placement = geometry.Absolute(geometry.Bottom, geometry.Center)
	o := NewOverlay(attrs, 0)
	require.NoError(t, c.Present(o))

	// Before measurement the offset collapses onto the anchor point
	snap, _ := c.Lookup(o.ID())
	assert.Equal(t, geometry.Offset{DX: 50, DY: 50}, snap.Offset)
	assert.False(t, snap.Measured)

	offset, changed := c.Measure(o.ID(), geometry.Size{Width: 40, Height: 20})
	assert.True(t, changed)
	assert.Equal(t, geometry.Offset{DX: 30, DY: 40}, offset)

	_, changed = c.Measure(o.ID(), geometry.Size{Width: 40, Height: 20})
	assert.False(t, changed, "same size must not re-resolve")

	offset, changed = c.Measure(o.ID(), geometry.Size{Width: 20, Height: 10})
	assert.True(t, changed)
	assert.Equal(t, geometry.Offset{DX: 40, DY: 45}, offset)
}

func TestController_MeasureIncludesPadding(t *testing.T) {
	c, _ := newTestController(t)
	attrs := DefaultAttributes()
	attrs.SourceRect = geometry.Rect{Width: 100, Height: 50}
	attrs.Placement = geometry.Absolute(geometry.BottomRight, geometry.BottomRight)
	attrs.Padding = geometry.Uniform(2)
	o := NewOverlay(attrs, 0)
	require.NoError(t, c.Present(o))

	offset, _ := c.Measure(o.ID(), geometry.Size{Width: 10, Height: 6})
	assert.Equal(t, geometry.Offset{DX: 100 - 14, DY: 50 - 10}, offset)

	snap, _ := c.Lookup(o.ID())
	assert.Equal(t, geometry.Rect{X: 86, Y: 40, Width: 14, Height: 10}, snap.Frame())
	assert.Equal(t, geometry.Point{X: 88, Y: 42}, snap.ContentOrigin())
}

func TestController_UpdateSource(t *testing.T) {
	c, _ := newTestController(t)
	attrs := DefaultAttributes()
	attrs.Placement = geometry.Absolute(geometry.TopRight, geometry.TopLeft)
	o := NewOverlay(attrs, 0)
	require.NoError(t, c.Present(o))
	c.Measure(o.ID(), geometry.Size{Width: 4, Height: 2})

	assert.True(t, c.UpdateSource(o.ID(), geometry.Rect{X: 10, Y: 5, Width: 20, Height: 3}))
	snap, _ := c.Lookup(o.ID())
	assert.Equal(t, geometry.Offset{DX: 30, DY: 5}, snap.Offset)

	assert.False(t, c.UpdateSource(o.ID(), geometry.Rect{X: 10, Y: 5, Width: 20, Height: 3}))
	assert.False(t, c.UpdateSource(NewID(), geometry.Rect{}))
}

func TestController_RequestDismissIsIdempotent(t *testing.T) {
	c, sched := newTestController(t)
	o := presentAttached(t, c, DefaultAttributes())

	calls := 0
	o.OnDismiss(func() { calls++ })

	removed := 0
	c.Subscribe(func(e Event) {
		if e.Kind == EventRemoved {
			removed++
		}
	})

	assert.True(t, c.RequestDismiss(o.ID(), false))
	assert.False(t, c.RequestDismiss(o.ID(), false), "second request is a no-op")
	assert.False(t, c.PopTop(), "pop on a dismissing tail is a no-op")

	snap, _ := c.Lookup(o.ID())
	assert.Equal(t, PhaseDismissing, snap.Phase)
	require.Len(t, sched.queue, 1)
	assert.Equal(t, DefaultTiming().ExitDelay, sched.delays[0])

	sched.runAll()
	// A stale eviction must not fire twice
	c.evict(o)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, c.Len())
}

func TestController_TapDismissGuard(t *testing.T) {
	c, sched := newTestController(t)
	attrs := DefaultAttributes()
	attrs.TapDismiss = false
	o := presentAttached(t, c, attrs)

	assert.False(t, c.PopTop())
	assert.False(t, c.RequestDismiss(o.ID(), true))
	sched.runAll()

	snap, ok := c.Lookup(o.ID())
	require.True(t, ok)
	assert.Equal(t, PhaseVisible, snap.Phase)

	// Programmatic dismissal bypasses the guard
	assert.True(t, c.RequestDismiss(o.ID(), false))
	sched.runAll()
	assert.Equal(t, 0, c.Len())
}

func TestController_PopTopRemovesOnlyTail(t *testing.T) {
	c, sched := newTestController(t)
	a := presentAttached(t, c, DefaultAttributes())
	b := presentAttached(t, c, DefaultAttributes())

	assert.True(t, c.PopTop())
	sched.runAll()

	_, ok := c.Lookup(b.ID())
	assert.False(t, ok, "B should be removed")

	snap, ok := c.Lookup(a.ID())
	require.True(t, ok)
	assert.Equal(t, PhaseVisible, snap.Phase)
	assert.Equal(t, 1, c.Len())
}

func TestController_ScrimFollowsTopmostLiveOverlay(t *testing.T) {
	c, sched := newTestController(t)

	low := DefaultAttributes()
	low.ScrimOpacity = 0.2
	high := DefaultAttributes()
	high.ScrimOpacity = 0.6

	assert.Equal(t, 0.0, c.Scrim())
	a := presentAttached(t, c, low)
	assert.Equal(t, 0.2, c.Scrim())
	presentAttached(t, c, high)
	assert.Equal(t, 0.6, c.Scrim())

	c.PopTop()
	assert.Equal(t, 0.2, c.Scrim(), "dismissing overlay no longer drives the scrim")
	assert.Equal(t, 1.0, c.Fade())

	c.RequestDismiss(a.ID(), false)
	assert.Equal(t, 0.0, c.Scrim())
	assert.Equal(t, 0.0, c.Fade(), "last overlay leaving fades the stack out")

	sched.runAll()
	assert.Equal(t, 0, c.Len())
}

func TestController_RepresentUpdatesInPlace(t *testing.T) {
	c, _ := newTestController(t)
	o := presentAttached(t, c, DefaultAttributes())

	attrs := DefaultAttributes()
	attrs.ScrimOpacity = 0.5
	attrs.Placement = geometry.Absolute(geometry.TopLeft, geometry.BottomRight)

	var kinds []EventKind
	c.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	require.NoError(t, c.Present(NewOverlayWithID(o.ID(), attrs, 3)))

	assert.Equal(t, 1, c.Len(), "no duplicate entry")
	snap, _ := c.Lookup(o.ID())
	assert.Equal(t, PhaseVisible, snap.Phase, "phase is kept")
	assert.Equal(t, ContentHandle(3), snap.Content)
	assert.Equal(t, 0.5, snap.Attributes.ScrimOpacity)
	assert.Equal(t, []EventKind{EventUpdated, EventStackChanged}, kinds)
}

func TestController_RepresentWhileDismissing(t *testing.T) {
	c, _ := newTestController(t)
	o := presentAttached(t, c, DefaultAttributes())
	c.RequestDismiss(o.ID(), false)

	err := c.Present(NewOverlayWithID(o.ID(), DefaultAttributes(), 0))
	assert.ErrorIs(t, err, ErrDismissing)

	var pe *PresentError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "update", pe.Op)
	assert.Equal(t, o.ID(), pe.OverlayID)
}

func TestController_DismissAll(t *testing.T) {
	c, sched := newTestController(t)
	guarded := DefaultAttributes()
	guarded.TapDismiss = false

	presentAttached(t, c, DefaultAttributes())
	presentAttached(t, c, guarded)
	presentAttached(t, c, DefaultAttributes())

	assert.Equal(t, 3, c.DismissAll())
	assert.Equal(t, 0, c.DismissAll())
	sched.runAll()
	assert.Equal(t, 0, c.Len())
}

func TestController_EventOrder(t *testing.T) {
	c, sched := newTestController(t)

	var kinds []EventKind
	c.Subscribe(func(e Event) { kinds = append(kinds, e.Kind) })

	o := NewOverlay(DefaultAttributes(), 0)
	require.NoError(t, c.Present(o))
	c.Measure(o.ID(), geometry.Size{Width: 3, Height: 1})
	c.MarkAttached(o.ID())
	c.PopTop()
	sched.runAll()

	assert.Equal(t, []EventKind{
		EventPresented, EventStackChanged, // scrim 0 → 0.2
		EventResolved,
		EventShown, EventStackChanged, // fade 0.3 → 1
		EventDismissing, EventStackChanged, // scrim → 0, fade → 0
		EventRemoved,
	}, kinds)
}

func TestController_ListenerMayReenter(t *testing.T) {
	c, _ := newTestController(t)

	// A host that attaches as soon as it hears about a presentation
	c.Subscribe(func(e Event) {
		if e.Kind == EventPresented {
			c.MarkAttached(e.Overlay.ID)
		}
	})

	o := NewOverlay(DefaultAttributes(), 0)
	require.NoError(t, c.Present(o))

	snap, _ := c.Lookup(o.ID())
	assert.Equal(t, PhaseVisible, snap.Phase)
}

func TestController_Unsubscribe(t *testing.T) {
	c, _ := newTestController(t)
	count := 0
	cancel := c.Subscribe(func(Event) { count++ })

	require.NoError(t, c.Present(NewOverlay(DefaultAttributes(), 0)))
	seen := count
	assert.Greater(t, seen, 0)

	cancel()
	require.NoError(t, c.Present(NewOverlay(DefaultAttributes(), 0)))
	assert.Equal(t, seen, count)
}

func TestController_UnknownOverlayNoops(t *testing.T) {
	c, _ := newTestController(t)
	id := NewID()

	assert.False(t, c.RequestDismiss(id, false))
	assert.False(t, c.MarkAttached(id))
	_, changed := c.Measure(id, geometry.Size{Width: 1, Height: 1})
	assert.False(t, changed)
	assert.False(t, c.PopTop())
	_, ok := c.Top()
	assert.False(t, ok)
}

func TestController_OverlaysInStackOrder(t *testing.T) {
	c, _ := newTestController(t)
	a := presentAttached(t, c, DefaultAttributes())
	b := presentAttached(t, c, DefaultAttributes())

	snaps := c.Overlays()
	require.Len(t, snaps, 2)
	assert.Equal(t, a.ID(), snaps[0].ID)
	assert.Equal(t, b.ID(), snaps[1].ID)

	top, ok := c.Top()
	require.True(t, ok)
	assert.Equal(t, b.ID(), top.ID)
}

func TestAttributes_Defaults(t *testing.T) {
	a := DefaultAttributes()
	assert.True(t, a.TapDismiss)
	assert.Equal(t, 0.2, a.ScrimOpacity)
	assert.Equal(t, 8.0, a.CornerRadius)
	assert.Equal(t, 50.0, a.ShadowRadius)
	assert.Equal(t, geometry.Center, a.Placement.OriginAnchor())
	assert.Equal(t, geometry.UnitPoint{X: 0.5, Y: 0.5}, a.Pivot())
	assert.True(t, a.Has(TransitionScale))
	assert.True(t, a.Has(TransitionOpacity))
	assert.False(t, a.Has(TransitionSlide))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "pending", PhasePending.String())
	assert.Equal(t, "visible", PhaseVisible.String())
	assert.Equal(t, "dismissing", PhaseDismissing.String())
	assert.Equal(t, "removed", PhaseRemoved.String())
	assert.True(t, PhasePending.Live())
	assert.False(t, PhaseDismissing.Live())
}
