package popover

import (
	"testing"

	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrigger struct {
	frame   geometry.Rect
	surface *Surface
}

func (f *fakeTrigger) Frame() geometry.Rect { return f.frame }
func (f *fakeTrigger) Surface() *Surface    { return f.surface }

func newPresenterFixture(t *testing.T, opts ...PresenterOption) (*Presenter, *fakeTrigger, *Registry, *manualScheduler) {
	t.Helper()
	r, sched := newTestRegistry(t)
	s := NewSurface("main", &recordingHost{})
	s.SetBounds(geometry.Rect{Width: 80, Height: 24}, geometry.Rect{X: 1, Y: 1, Width: 78, Height: 22})
	trigger := &fakeTrigger{frame: geometry.Rect{X: 10, Y: 4, Width: 12, Height: 3}, surface: s}
	return NewPresenter(r, trigger, 5, opts...), trigger, r, sched
}

func TestPresenter_PresentSnapshotsTriggerFrame(t *testing.T) {
	p, trigger, r, _ := newPresenterFixture(t, WithAttributes(func(a *Attributes) {
		a.Placement = geometry.Absolute(geometry.BottomLeft, geometry.TopLeft)
	}))

	require.NoError(t, p.SetPresented(true))
	assert.True(t, p.IsPresented())

	c, ok := r.Lookup(trigger.surface)
	require.True(t, ok)
	top, ok := c.Top()
	require.True(t, ok)
	assert.Equal(t, trigger.frame, top.Attributes.SourceRect)
	assert.Equal(t, ContentHandle(5), top.Content)
	assert.Equal(t, geometry.Offset{DX: 10, DY: 7}, top.Offset)
}

func TestPresenter_RelativeUsesSafeBounds(t *testing.T) {
	p, trigger, r, _ := newPresenterFixture(t, WithAttributes(func(a *Attributes) {
		a.Placement = geometry.Relative(geometry.Point{X: 79, Y: 23}, geometry.BottomRight)
	}))

	require.NoError(t, p.SetPresented(true))
	c, _ := r.Lookup(trigger.surface)
	top, _ := c.Top()
	assert.Equal(t, trigger.surface.SafeBounds(), top.Attributes.SourceRect)
}

func TestPresenter_NoSurfaceIsDropped(t *testing.T) {
	p, trigger, r, _ := newPresenterFixture(t)
	surface := trigger.surface
	trigger.surface = nil

	err := p.SetPresented(true)
	assert.ErrorIs(t, err, ErrNoSurface)
	assert.False(t, p.IsPresented())
	assert.Equal(t, 0, r.Len())

	// Retry on the next attachment
	trigger.surface = surface
	require.NoError(t, p.SetPresented(true))
	assert.True(t, p.IsPresented())
}

func TestPresenter_DismissResetsBinding(t *testing.T) {
	handled := 0
	p, trigger, r, sched := newPresenterFixture(t, WithDismissHandler(func() { handled++ }))

	require.NoError(t, p.SetPresented(true))
	c, _ := r.Lookup(trigger.surface)

	// Tap on the scrim
	c.PopTop()
	assert.True(t, p.IsPresented(), "binding resets once the overlay is removed")
	sched.runAll()

	assert.False(t, p.IsPresented())
	assert.Equal(t, 1, handled)
	assert.Equal(t, 0, r.Len())
}

func TestPresenter_SetPresentedFalseDismisses(t *testing.T) {
	p, trigger, r, sched := newPresenterFixture(t, WithAttributes(func(a *Attributes) {
		a.TapDismiss = false
	}))

	require.NoError(t, p.SetPresented(true))
	c, _ := r.Lookup(trigger.surface)
	assert.False(t, c.PopTop(), "tap cannot dismiss it")

	require.NoError(t, p.SetPresented(false))
	assert.False(t, p.IsPresented())
	sched.runAll()
	assert.Equal(t, 0, c.Len())
}

func TestPresenter_RepresentUpdatesInPlace(t *testing.T) {
	p, trigger, r, _ := newPresenterFixture(t)

	require.NoError(t, p.SetPresented(true))
	first, _ := p.OverlayID()

	trigger.frame = geometry.Rect{X: 40, Y: 10, Width: 4, Height: 2}
	require.NoError(t, p.SetPresented(true))
	second, _ := p.OverlayID()

	assert.Equal(t, first, second)
	c, _ := r.Lookup(trigger.surface)
	assert.Equal(t, 1, c.Len())
	top, _ := c.Top()
	assert.Equal(t, trigger.frame, top.Attributes.SourceRect)
}

func TestPresenter_RepresentWhileDismissingCreatesNewOverlay(t *testing.T) {
	p, trigger, r, sched := newPresenterFixture(t)

	require.NoError(t, p.SetPresented(true))
	first, _ := p.OverlayID()
	require.NoError(t, p.SetPresented(false))
	require.NoError(t, p.SetPresented(true))
	second, _ := p.OverlayID()

	assert.NotEqual(t, first, second)
	c, _ := r.Lookup(trigger.surface)
	assert.Equal(t, 2, c.Len())

	sched.runAll()
	assert.Equal(t, 1, c.Len())
	assert.True(t, p.IsPresented(), "removal of the old overlay must not reset the binding")
}

func TestPresenter_Refresh(t *testing.T) {
	p, trigger, r, _ := newPresenterFixture(t, WithAttributes(func(a *Attributes) {
		a.Placement = geometry.Absolute(geometry.TopRight, geometry.TopLeft)
	}))
	assert.False(t, p.Refresh(), "nothing presented")

	require.NoError(t, p.SetPresented(true))
	trigger.frame = geometry.Rect{X: 0, Y: 0, Width: 5, Height: 1}
	assert.True(t, p.Refresh())

	c, _ := r.Lookup(trigger.surface)
	top, _ := c.Top()
	assert.Equal(t, geometry.Offset{DX: 5, DY: 0}, top.Offset)
}

func TestPresenter_Toggle(t *testing.T) {
	p, _, _, sched := newPresenterFixture(t)

	require.NoError(t, p.Toggle())
	assert.True(t, p.IsPresented())
	require.NoError(t, p.Toggle())
	assert.False(t, p.IsPresented())
	sched.runAll()
	assert.False(t, p.IsPresented())
}
