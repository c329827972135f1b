package overlay

import (
	"strings"
	"testing"
	"time"

	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/riordanpawley/popover/internal/popover"
	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestPhaseClock_Progress(t *testing.T) {
	timing := popover.Timing{Entry: 100 * time.Millisecond, ExitDelay: 200 * time.Millisecond}

	tests := []struct {
		name    string
		phase   popover.Phase
		elapsed time.Duration
		want    float64
	}{
		{"pending", popover.PhasePending, time.Hour, 0},
		{"entry start", popover.PhaseVisible, 0, 0},
		{"entry midpoint", popover.PhaseVisible, 50 * time.Millisecond, 0.5},
		{"entry done", popover.PhaseVisible, 150 * time.Millisecond, 1},
		{"exit start", popover.PhaseDismissing, 0, 1},
		{"exit midpoint", popover.PhaseDismissing, 100 * time.Millisecond, 0.5},
		{"exit done", popover.PhaseDismissing, 300 * time.Millisecond, 0},
		{"removed", popover.PhaseRemoved, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := phaseClock{phase: tt.phase, since: epoch}
			assert.InDelta(t, tt.want, pc.progress(epoch.Add(tt.elapsed), timing), 1e-9)
		})
	}
}

func TestPhaseClock_ZeroDurationsSnap(t *testing.T) {
	pc := phaseClock{phase: popover.PhaseVisible, since: epoch}
	assert.Equal(t, 1.0, pc.progress(epoch, popover.Timing{}))
	assert.True(t, pc.settled(epoch, popover.Timing{}))

	pc.phase = popover.PhaseDismissing
	assert.Equal(t, 0.0, pc.progress(epoch, popover.Timing{}))
	assert.False(t, pc.settled(epoch, popover.Timing{}), "dismissing overlays animate until removed")
}

func TestFadeRamp(t *testing.T) {
	f := fadeRamp{from: 0.3, to: 1, since: epoch}

	assert.InDelta(t, 0.3, f.value(epoch, time.Second), 1e-9)
	assert.InDelta(t, 0.65, f.value(epoch.Add(500*time.Millisecond), time.Second), 1e-9)
	assert.InDelta(t, 1, f.value(epoch.Add(2*time.Second), time.Second), 1e-9)
	assert.False(t, f.done(epoch, time.Second))
	assert.True(t, f.done(epoch.Add(time.Second), time.Second))
	assert.True(t, fadeRamp{from: 1, to: 1}.done(epoch, time.Second))
}

func testBox(w, h int) frame {
	row := strings.Repeat("#", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = row
	}
	return newFrame(strings.Join(lines, "\n"))
}

func attrsWith(anchor geometry.Anchor, transitions ...popover.Transition) popover.Attributes {
	a := popover.DefaultAttributes()
	a.Placement = geometry.Absolute(geometry.Center, anchor)
	a.Transitions = transitions
	return a
}

func TestFrame_Scale(t *testing.T) {
	tests := []struct {
		name   string
		anchor geometry.Anchor
		dx, dy int
	}{
		{"center pivot", geometry.Center, 3, 1},
		{"top-left pivot", geometry.TopLeft, 0, 0},
		{"bottom-right pivot", geometry.BottomRight, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testBox(10, 4).transform(attrsWith(tt.anchor, popover.Scale()), 0.5)

			assert.Equal(t, 5, f.width)
			assert.Equal(t, 2, f.height)
			assert.Equal(t, tt.dx, f.dx)
			assert.Equal(t, tt.dy, f.dy)
			assert.Equal(t, "#####\n#####", f.String())
		})
	}
}

func TestFrame_Slide(t *testing.T) {
	f := testBox(4, 2).transform(attrsWith(geometry.Center, popover.Slide(-6, 4)), 0.5)

	assert.Equal(t, -3, f.dx)
	assert.Equal(t, 2, f.dy)
	assert.Equal(t, 4, f.width, "slides do not resize")
}

func TestFrame_Opacity(t *testing.T) {
	a := attrsWith(geometry.Center, popover.Opacity())

	assert.True(t, testBox(4, 2).transform(a, 0.1).hidden)
	f := testBox(4, 2).transform(a, 0.3)
	assert.True(t, f.faded)
	assert.False(t, f.hidden)
	f = testBox(4, 2).transform(a, 0.8)
	assert.False(t, f.faded)
}

func TestFrame_Endpoints(t *testing.T) {
	a := attrsWith(geometry.Center, popover.Scale(), popover.Slide(0, 3))
	box := testBox(4, 2)

	assert.Equal(t, box, box.transform(a, 1))
	assert.True(t, box.transform(a, 0).hidden)
	assert.False(t, box.transform(attrsWith(geometry.Center), 0.5).hidden, "no transitions means no animation")
}
