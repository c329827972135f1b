package overlay

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg fires a TickScheduler callback on the Update goroutine
type timerMsg struct {
	id    uint64
	owner *TickScheduler
}

type queuedTimer struct {
	id    uint64
	delay time.Duration
}

// TickScheduler implements popover.Scheduler with tea.Tick so delayed
// evictions run inside the program's Update loop instead of on a timer
// goroutine. Callbacks are queued by AfterFunc and turned into commands by
// Cmd.
type TickScheduler struct {
	mu      sync.Mutex
	next    uint64
	queued  []queuedTimer
	waiting map[uint64]func()
}

// NewTickScheduler creates an idle scheduler
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{waiting: make(map[uint64]func())}
}

// AfterFunc implements popover.Scheduler
func (s *TickScheduler) AfterFunc(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.queued = append(s.queued, queuedTimer{id: s.next, delay: d})
	s.waiting[s.next] = fn
}

// Cmd drains the timers queued since the last call into tick commands
func (s *TickScheduler) Cmd() tea.Cmd {
	s.mu.Lock()
	queued := s.queued
	s.queued = nil
	s.mu.Unlock()

	if len(queued) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(queued))
	for _, q := range queued {
		id := q.id
		cmds = append(cmds, tea.Tick(q.delay, func(time.Time) tea.Msg {
			return timerMsg{id: id, owner: s}
		}))
	}
	return tea.Batch(cmds...)
}

// Handle runs the callback for one of this scheduler's timer messages.
// It reports false for any other message.
func (s *TickScheduler) Handle(msg tea.Msg) bool {
	m, ok := msg.(timerMsg)
	if !ok || m.owner != s {
		return false
	}

	s.mu.Lock()
	fn, ok := s.waiting[m.id]
	delete(s.waiting, m.id)
	s.mu.Unlock()

	if ok {
		fn()
	}
	return true
}

// Pending returns the number of callbacks that have not fired yet
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waiting)
}

// Flush runs every waiting callback immediately, in scheduling order
func (s *TickScheduler) Flush() {
	for {
		s.mu.Lock()
		if len(s.waiting) == 0 {
			s.mu.Unlock()
			return
		}
		var first uint64
		for id := range s.waiting {
			if first == 0 || id < first {
				first = id
			}
		}
		fn := s.waiting[first]
		delete(s.waiting, first)
		s.queued = nil
		s.mu.Unlock()

		fn()
	}
}
