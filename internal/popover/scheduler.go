package popover

import "time"

// Scheduler runs delayed work, such as evicting an overlay once its exit
// animation has played.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimerScheduler runs delayed work on runtime timers. Work fires on its own
// goroutine; Controller serializes it with its mutex.
type TimerScheduler struct{}

// AfterFunc implements Scheduler
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Timing holds the animation constants the controller needs
type Timing struct {
	// Entry is the duration of the entry animation
	Entry time.Duration
	// ExitDelay is how long a dismissing overlay stays in the stack
	ExitDelay time.Duration
	// InitialFade is the stack fade before the first overlay is attached
	InitialFade float64
}

// DefaultTiming matches the exit delay to the entry animation
func DefaultTiming() Timing {
	return Timing{
		Entry:       350 * time.Millisecond,
		ExitDelay:   350 * time.Millisecond,
		InitialFade: 0.3,
	}
}
