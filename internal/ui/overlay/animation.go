package overlay

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/popover/internal/popover"
)

// Below these progress values an opacity transition hides or fades the box
const (
	hiddenBelow = 0.15
	fadedBelow  = 0.6
)

// phaseClock records when an overlay entered its current phase
type phaseClock struct {
	phase popover.Phase
	since time.Time
}

// progress is how far the overlay is shown: 0 hidden, 1 fully presented.
// Entry runs 0→1 after MarkAttached; dismissal runs 1→0 over the exit delay.
func (pc phaseClock) progress(now time.Time, timing popover.Timing) float64 {
	switch pc.phase {
	case popover.PhaseVisible:
		return easeInOut(ratio(now.Sub(pc.since), timing.Entry))
	case popover.PhaseDismissing:
		return 1 - easeInOut(ratio(now.Sub(pc.since), timing.ExitDelay))
	default:
		return 0
	}
}

// settled reports whether the overlay has nothing left to animate
func (pc phaseClock) settled(now time.Time, timing popover.Timing) bool {
	return pc.phase == popover.PhaseVisible && now.Sub(pc.since) >= timing.Entry
}

// fadeRamp interpolates the stack fade between the values the controller
// reports on EventStackChanged
type fadeRamp struct {
	from, to float64
	since    time.Time
}

func (f fadeRamp) value(now time.Time, d time.Duration) float64 {
	t := easeInOut(ratio(now.Sub(f.since), d))
	return f.from + (f.to-f.from)*t
}

func (f fadeRamp) done(now time.Time, d time.Duration) bool {
	return f.from == f.to || now.Sub(f.since) >= d
}

func ratio(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(total))
}

func easeInOut(t float64) float64 {
	return t * t * (3 - 2*t)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// frame is a rendered popover box plus the adjustments its transitions
// apply at the current progress
type frame struct {
	lines  []string
	width  int
	height int
	dx, dy int
	faded  bool
	hidden bool
}

func newFrame(box string) frame {
	lines := strings.Split(box, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return frame{lines: lines, width: w, height: len(lines)}
}

// transform applies the overlay's transitions at progress p
func (f frame) transform(attrs popover.Attributes, p float64) frame {
	if p >= 1 {
		return f
	}
	if p <= 0 {
		f.hidden = true
		return f
	}

	for _, t := range attrs.Transitions {
		switch t.Kind {
		case popover.TransitionSlide:
			f.dx += int(math.Round((1 - p) * t.DX))
			f.dy += int(math.Round((1 - p) * t.DY))
		case popover.TransitionScale:
			f = f.scale(attrs, p)
		case popover.TransitionOpacity:
			if p < hiddenBelow {
				f.hidden = true
			} else if p < fadedBelow {
				f.faded = true
			}
		}
	}
	return f
}

// scale crops the box to p of its size, keeping the pivot fixed
func (f frame) scale(attrs popover.Attributes, p float64) frame {
	vw := max(1, int(math.Ceil(p*float64(f.width))))
	vh := max(1, int(math.Ceil(p*float64(f.height))))
	if vw >= f.width && vh >= f.height {
		return f
	}

	pivot := attrs.Pivot()
	x0 := int(math.Round(pivot.X * float64(f.width-vw)))
	y0 := int(math.Round(pivot.Y * float64(f.height-vh)))

	lines := make([]string, 0, vh)
	for _, l := range f.lines[y0 : y0+vh] {
		lines = append(lines, ansi.Cut(l, x0, x0+vw))
	}

	f.lines = lines
	f.width = vw
	f.height = vh
	f.dx += x0
	f.dy += y0
	return f
}

func (f frame) String() string {
	return strings.Join(f.lines, "\n")
}
