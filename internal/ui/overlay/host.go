package overlay

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/riordanpawley/popover/internal/popover"
	"github.com/riordanpawley/popover/internal/ui/styles"
)

// Scrim levels below which the base view is left untouched, and above
// which it is dimmed heavily
const (
	scrimVisible = 0.05
	scrimHeavy   = 0.35
)

// DefaultFrameInterval is the animation frame delay
const DefaultFrameInterval = 33 * time.Millisecond

// frameMsg advances running animations
type frameMsg struct {
	owner *Host
}

// KeyMap defines the keys the host handles before forwarding to content
type KeyMap struct {
	Dismiss key.Binding
}

// DefaultKeyMap returns the default host bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// Host draws one surface's popover stack. It implements popover.Host and
// must be driven from the Bubble Tea Update goroutine: route messages
// through Update, collect commands with Cmd after mutating the stack from
// outside, and composite with View.
type Host struct {
	contents  *ContentTable
	styles    *styles.Styles
	scheduler *TickScheduler
	logger    *slog.Logger
	keys      KeyMap
	now       func() time.Time
	interval  time.Duration

	controller *popover.Controller
	cancel     func()
	clocks     map[popover.ID]phaseClock
	fade       fadeRamp

	cmds    []tea.Cmd
	animate bool
	ticking bool
}

// HostOption configures a Host
type HostOption func(*Host)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) HostOption {
	return func(h *Host) {
		h.now = now
	}
}

// WithFrameInterval sets the delay between animation frames
func WithFrameInterval(d time.Duration) HostOption {
	return func(h *Host) {
		if d > 0 {
			h.interval = d
		}
	}
}

// WithKeyMap replaces the default key bindings
func WithKeyMap(k KeyMap) HostOption {
	return func(h *Host) {
		h.keys = k
	}
}

// WithHostLogger sets the logger; nil keeps slog.Default()
func WithHostLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHost creates a host drawing contents from table. The scheduler must be
// the one the surface's controllers were created with.
func NewHost(table *ContentTable, st *styles.Styles, scheduler *TickScheduler, opts ...HostOption) *Host {
	h := &Host{
		contents:  table,
		styles:    st,
		scheduler: scheduler,
		logger:    slog.Default(),
		keys:      DefaultKeyMap(),
		now:       time.Now,
		interval:  DefaultFrameInterval,
		clocks:    make(map[popover.ID]phaseClock),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach implements popover.Host
func (h *Host) Attach(c *popover.Controller) {
	if h.cancel != nil {
		h.cancel()
	}
	h.controller = c
	h.clocks = make(map[popover.ID]phaseClock)
	h.fade = fadeRamp{from: c.Fade(), to: c.Fade(), since: h.now()}
	h.cancel = c.Subscribe(func(e popover.Event) { h.handle(c, e) })
	h.logger.Debug("overlay layer attached")
}

// Detach implements popover.Host
func (h *Host) Detach(c *popover.Controller) {
	if c != h.controller {
		return
	}
	if h.cancel != nil {
		h.cancel()
	}
	h.controller = nil
	h.cancel = nil
	h.clocks = make(map[popover.ID]phaseClock)
	h.logger.Debug("overlay layer detached")
}

// Controller returns the attached controller, if any
func (h *Host) Controller() (*popover.Controller, bool) {
	return h.controller, h.controller != nil
}

// Active reports whether any popover is on screen
func (h *Host) Active() bool {
	return h.controller != nil && h.controller.Len() > 0
}

// handle reacts to controller events. It runs after the controller has
// released its lock, so calling back into c is safe.
func (h *Host) handle(c *popover.Controller, e popover.Event) {
	id := e.Overlay.ID
	switch e.Kind {
	case popover.EventPresented:
		content, ok := h.contents.Get(e.Overlay.Content)
		if ok {
			if r, ok := content.(Resetter); ok {
				r.Reset()
			}
			h.cmds = append(h.cmds, content.Init())
		}
		h.clocks[id] = phaseClock{phase: popover.PhasePending, since: h.now()}
		h.measure(c, e.Overlay)
		c.MarkAttached(id)

	case popover.EventUpdated:
		h.measure(c, e.Overlay)

	case popover.EventShown, popover.EventDismissing:
		h.clocks[id] = phaseClock{phase: e.Overlay.Phase, since: h.now()}
		h.animate = true

	case popover.EventRemoved:
		delete(h.clocks, id)

	case popover.EventStackChanged:
		// Events from nested calls can arrive out of order, so ramp
		// towards the controller's current fade rather than e.Fade
		target := c.Fade()
		if target == h.fade.to {
			return
		}
		now := h.now()
		h.fade = fadeRamp{from: h.fade.value(now, c.Timing().Entry), to: target, since: now}
		h.animate = true
	}
}

// measure renders the content box and reports its size
func (h *Host) measure(c *popover.Controller, s popover.Snapshot) {
	content, ok := h.contents.Get(s.Content)
	if !ok {
		h.logger.Warn("no content for popover", "id", s.ID, "handle", s.Content)
		c.Measure(s.ID, geometry.Size{})
		return
	}
	w, ht := lipgloss.Size(h.box(s, content))
	c.Measure(s.ID, geometry.Size{Width: float64(w), Height: float64(ht)})
}

// Remeasure re-reports every overlay's size, for content that changed
// outside a presentation
func (h *Host) Remeasure() {
	if h.controller == nil {
		return
	}
	for _, s := range h.controller.Overlays() {
		if s.Phase.Live() {
			h.measure(h.controller, s)
		}
	}
}

// box renders content inside its popover frame
func (h *Host) box(s popover.Snapshot, content Content) string {
	frame := h.styles.Frame(s.Attributes.CornerRadius)
	if w, ht := content.Size(); w > 0 || ht > 0 {
		frame = frame.Width(w).Height(ht)
	}
	body := content.View()
	if title := content.Title(); title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, h.styles.PopoverTitle.Render(title), body)
	}
	return frame.Render(body)
}

// Update routes msg to the popover stack. It reports whether the message
// was consumed; unconsumed messages belong to the base view.
func (h *Host) Update(msg tea.Msg) (bool, tea.Cmd) {
	handled := false

	switch msg := msg.(type) {
	case timerMsg:
		handled = h.scheduler.Handle(msg)

	case frameMsg:
		if msg.owner == h {
			handled = true
			h.ticking = false
			h.animate = h.animating()
		}

	case CloseOverlayMsg:
		if target, ok := h.closeTarget(msg.Handle); ok {
			handled = true
			h.controller.RequestDismiss(target.ID, false)
		}

	case tea.KeyMsg:
		if !h.Active() {
			break
		}
		handled = true
		if key.Matches(msg, h.keys.Dismiss) && h.controller.PopTop() {
			break
		}
		if top, ok := h.topLive(); ok {
			h.cmds = append(h.cmds, bindClose(top.Content, h.contents.Update(top.Content, msg)))
			h.Remeasure()
		}

	case tea.MouseMsg:
		if !h.Active() {
			break
		}
		handled = true
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		top, ok := h.topLive()
		if !ok {
			break
		}
		p := geometry.Point{X: float64(msg.X), Y: float64(msg.Y)}
		if !top.Frame().Contains(p) {
			// A tap on the scrim
			h.controller.PopTop()
		}
	}

	return handled, h.Cmd()
}

// Cmd returns the commands queued by stack changes: content init, delayed
// evictions and the next animation frame
func (h *Host) Cmd() tea.Cmd {
	cmds := h.cmds
	h.cmds = nil
	cmds = append(cmds, h.scheduler.Cmd())

	if h.animate && !h.ticking {
		h.ticking = true
		cmds = append(cmds, tea.Tick(h.interval, func(time.Time) tea.Msg {
			return frameMsg{owner: h}
		}))
	}
	h.animate = false

	return tea.Batch(cmds...)
}

// animating reports whether another frame would look different
func (h *Host) animating() bool {
	if h.controller == nil {
		return false
	}
	now := h.now()
	timing := h.controller.Timing()
	if !h.fade.done(now, timing.Entry) {
		return true
	}
	for _, pc := range h.clocks {
		if !pc.settled(now, timing) {
			return true
		}
	}
	return false
}

// topLive returns the topmost overlay that is not dismissing
func (h *Host) topLive() (popover.Snapshot, bool) {
	if h.controller == nil {
		return popover.Snapshot{}, false
	}
	overlays := h.controller.Overlays()
	for i := len(overlays) - 1; i >= 0; i-- {
		if overlays[i].Phase.Live() {
			return overlays[i], true
		}
	}
	return popover.Snapshot{}, false
}

// closeTarget returns the topmost live overlay showing handle, or the
// topmost live overlay for the zero handle
func (h *Host) closeTarget(handle popover.ContentHandle) (popover.Snapshot, bool) {
	if handle == 0 {
		return h.topLive()
	}
	if h.controller == nil {
		return popover.Snapshot{}, false
	}
	overlays := h.controller.Overlays()
	for i := len(overlays) - 1; i >= 0; i-- {
		if overlays[i].Phase.Live() && overlays[i].Content == handle {
			return overlays[i], true
		}
	}
	return popover.Snapshot{}, false
}

// ScrimLevel is the current dimming applied behind the stack
func (h *Host) ScrimLevel() float64 {
	if h.controller == nil {
		return 0
	}
	return h.controller.Scrim() * h.fade.value(h.now(), h.controller.Timing().Entry)
}

// View composites the popover stack over base, a width x height view
func (h *Host) View(base string, width, height int) string {
	canvas := NewCanvas(base, width, height)
	if !h.Active() {
		return canvas.String()
	}

	switch level := h.ScrimLevel(); {
	case level >= scrimHeavy:
		canvas.Dim(h.styles.ScrimHeavy)
	case level >= scrimVisible:
		canvas.Dim(h.styles.Scrim)
	}

	now := h.now()
	timing := h.controller.Timing()
	for _, s := range h.controller.Overlays() {
		if !s.Measured {
			continue
		}
		content, ok := h.contents.Get(s.Content)
		if !ok {
			continue
		}

		p := h.clocks[s.ID].progress(now, timing)
		f := newFrame(h.box(s, content)).transform(s.Attributes, p)
		if f.hidden {
			continue
		}

		// Fractional origins round half away from zero on both axes
		origin := s.ContentOrigin()
		x := int(math.Round(origin.X)) + f.dx
		y := int(math.Round(origin.Y)) + f.dy

		if shadow, ok := shadowStyle(s.Attributes); ok && !f.faded {
			canvas.Fill(x+1, y+1, f.width, f.height, shadow)
		}

		block := f.String()
		if f.faded {
			block = h.styles.FadedContent.Render(ansi.Strip(block))
		}
		canvas.Draw(x, y, block)
	}

	return canvas.String()
}

// shadowStyle converts the shadow attributes into a cell background.
// Colors may carry an alpha byte (#RRGGBBAA); fully transparent shadows
// are skipped.
func shadowStyle(a popover.Attributes) (lipgloss.Style, bool) {
	if a.ShadowRadius <= 0 || a.ShadowColor == "" {
		return lipgloss.Style{}, false
	}
	color := a.ShadowColor
	if len(color) == 9 && strings.HasPrefix(color, "#") {
		if color[7:] == "00" {
			return lipgloss.Style{}, false
		}
		color = color[:7]
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(color)), true
}
