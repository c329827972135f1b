// Package app contains the demo application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popover/internal/config"
	"github.com/riordanpawley/popover/internal/geometry"
	"github.com/riordanpawley/popover/internal/popover"
	"github.com/riordanpawley/popover/internal/services/navigation"
	"github.com/riordanpawley/popover/internal/types"
	"github.com/riordanpawley/popover/internal/ui/overlay"
	"github.com/riordanpawley/popover/internal/ui/statusbar"
	"github.com/riordanpawley/popover/internal/ui/styles"
	"github.com/riordanpawley/popover/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal     = types.ModeNormal
	ModePopover    = types.ModePopover
	ModeDismissing = types.ModeDismissing
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// statusBarHeight is the number of rows below the popover surface
const statusBarHeight = 1

// paletteKey tags palette selections
const paletteKey = "anchor"

// toastTickMsg expires toasts
type toastTickMsg time.Time

// Model is the main application state
type Model struct {
	config *config.Config
	keys   KeyMap
	styles *styles.Styles
	logger *slog.Logger
	now    func() time.Time

	// Popover plumbing
	registry  *popover.Registry
	scheduler *overlay.TickScheduler
	contents  *overlay.ContentTable
	host      *overlay.Host
	surface   *popover.Surface
	attached  bool

	// Triggers and their bindings
	nav        *navigation.Service
	triggers   []*Trigger
	presenters []*popover.Presenter

	// Screen-level popovers
	confirm     *popover.Presenter
	help        *popover.Presenter
	helpContent *overlay.HelpOverlay
	palette     *popover.Presenter

	// Toasts
	toasts       []Toast
	toastTicking bool

	// Terminal size
	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger; nil keeps slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces time.Now for animations and toasts
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates the demo model. It fails when the configured popover
// defaults cannot be converted to attributes.
func New(cfg *config.Config, opts ...Option) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	defaults, err := cfg.Attributes()
	if err != nil {
		return nil, fmt.Errorf("invalid popover defaults: %w", err)
	}

	m := &Model{
		config:    cfg,
		keys:      DefaultKeyMap(),
		styles:    styles.New(),
		logger:    slog.Default(),
		now:       time.Now,
		scheduler: overlay.NewTickScheduler(),
		contents:  overlay.NewContentTable(),
		nav:       navigation.NewService(3, 3),
		triggers:  newTriggers(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.host = overlay.NewHost(m.contents, m.styles, m.scheduler,
		overlay.WithClock(m.now),
		overlay.WithFrameInterval(cfg.FrameInterval()),
		overlay.WithHostLogger(m.logger),
	)
	m.registry = popover.NewRegistry(
		popover.WithScheduler(m.scheduler),
		popover.WithTiming(cfg.Timing()),
		popover.WithLogger(m.logger),
	)
	m.surface = popover.NewSurface("main", m.host)

	for _, t := range m.triggers {
		handle := m.contents.Register(newAnchorCard(t, m.styles))
		m.presenters = append(m.presenters, popover.NewPresenter(m.registry, t, handle,
			popover.WithDefaults(defaults),
			popover.WithAttributes(func(a *popover.Attributes) {
				a.Placement = t.Placement()
				if slide, ok := t.Slide(); ok {
					a.Transitions = append(a.Transitions, slide)
				}
			}),
			popover.WithDismissHandler(func() {
				m.addToast(ToastInfo, t.Label()+" dismissed")
			}),
			popover.WithPresenterLogger(m.logger),
		))
	}

	screen := screenTrigger{model: m}

	dialog := overlay.NewConfirmDialog("Dismiss all", "Close every open popover?")
	m.confirm = popover.NewPresenter(m.registry, screen, m.contents.Register(dialog),
		popover.WithDefaults(defaults),
		popover.WithAttributes(func(a *popover.Attributes) {
			a.Placement = geometry.Relative(m.surface.SafeBounds().Center(), geometry.Center)
			a.TapDismiss = false
			a.ScrimOpacity = math.Max(a.ScrimOpacity, 0.5)
		}),
		popover.WithPresenterLogger(m.logger),
	)

	m.helpContent = overlay.NewHelpOverlay(m.keys.helpCategories(overlay.DefaultKeyMap()))
	m.help = popover.NewPresenter(m.registry, screen, m.contents.Register(m.helpContent),
		popover.WithDefaults(defaults),
		popover.WithAttributes(func(a *popover.Attributes) {
			safe := m.surface.SafeBounds()
			a.Placement = geometry.Relative(geometry.Point{X: safe.MaxX(), Y: safe.MaxY()}, geometry.BottomRight)
			a.Transitions = []popover.Transition{popover.Slide(4, 0), popover.Opacity()}
		}),
		popover.WithPresenterLogger(m.logger),
	)

	items := make([]overlay.PaletteItem, len(m.triggers))
	for i, t := range m.triggers {
		items[i] = overlay.PaletteItem{Label: t.Label(), Value: i}
	}
	m.palette = popover.NewPresenter(m.registry, screen,
		m.contents.Register(overlay.NewPalette(paletteKey, "Present at anchor", items)),
		popover.WithDefaults(defaults),
		popover.WithAttributes(func(a *popover.Attributes) {
			safe := m.surface.SafeBounds()
			a.Placement = geometry.Relative(geometry.Point{X: safe.Center().X, Y: safe.Y + 1}, geometry.Top)
			a.Transitions = []popover.Transition{popover.Slide(0, -1), popover.Opacity()}
		}),
		popover.WithPresenterLogger(m.logger),
	)

	return m, nil
}

// Init returns the initial command for the application
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("popover demo")
}

// Update handles incoming messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.batch()

	case toastTickMsg:
		m.toastTicking = false
		m.toasts = toast.Prune(m.toasts, m.now())
		return m, m.batch()

	case overlay.SelectionMsg:
		return m, m.batch(m.handleSelection(msg))

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
	}

	// The popover stack gets first pick while it is on screen
	if handled, cmd := m.host.Update(msg); handled {
		return m, m.batch(cmd)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.batch(m.handleKey(msg))
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.batch()
	}

	return m, nil
}

// handleKey processes keyboard input while no popover is open
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.nav.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.nav.MoveDown()
	case key.Matches(msg, m.keys.Left):
		m.nav.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.nav.MoveRight()
	case key.Matches(msg, m.keys.Present):
		m.toggle(m.nav.Current())
	case key.Matches(msg, m.keys.Confirm):
		m.present(m.confirm)
	case key.Matches(msg, m.keys.Palette):
		m.present(m.palette)
	case key.Matches(msg, m.keys.Help):
		m.present(m.help)
	case key.Matches(msg, m.keys.DismissAll):
		m.dismissAll()
	}
	return nil
}

// handleMouse toggles the trigger under a left click
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	p := geometry.Point{X: float64(msg.X), Y: float64(msg.Y)}
	if i, ok := triggerAt(m.triggers, p); ok {
		m.nav.JumpToIndex(i)
		m.toggle(i)
	}
}

// handleSelection reacts to choices made inside popovers
func (m *Model) handleSelection(msg overlay.SelectionMsg) tea.Cmd {
	switch v := msg.Value.(type) {
	case overlay.ConfirmResult:
		if !v.Confirmed {
			m.addToast(ToastInfo, "Kept popovers open")
			return nil
		}
		n := m.dismissAll()
		m.addToast(ToastSuccess, fmt.Sprintf("Dismissed %d popovers", n))

	case cardAction:
		switch v {
		case actionConfirm:
			m.present(m.confirm)
		case actionPalette:
			m.present(m.palette)
		case actionDismissAll:
			m.dismissAll()
		}

	case int:
		if msg.Key != paletteKey || !m.nav.JumpToIndex(v) {
			return nil
		}
		if m.present(m.presenters[v]) {
			m.addToast(ToastInfo, "Presenting "+m.triggers[v].Label())
		}
	}
	return nil
}

// toggle flips the popover of trigger i
func (m *Model) toggle(i int) {
	if i < 0 || i >= len(m.presenters) {
		return
	}
	p := m.presenters[i]
	if p.IsPresented() {
		_ = p.SetPresented(false)
		return
	}
	m.present(p)
}

// present shows p, reporting failures as toasts
func (m *Model) present(p *popover.Presenter) bool {
	if err := p.SetPresented(true); err != nil {
		m.logger.Warn("popover not presented", "error", err)
		m.addToast(ToastWarning, fmt.Sprintf("Popover dropped: %v", err))
		return false
	}
	return true
}

// dismissAll dismisses every live popover and returns how many
func (m *Model) dismissAll() int {
	c, ok := m.registry.Lookup(m.surface)
	if !ok {
		return 0
	}
	n := c.DismissAll()
	m.logger.Debug("dismissed all popovers", "count", n)
	return n
}

// resize lays the screen out again and moves presented popovers along
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	bounds := geometry.Rect{Width: float64(width), Height: float64(height)}
	safe := geometry.Rect{Width: float64(width), Height: float64(max(0, height-statusBarHeight))}
	m.surface.SetBounds(bounds, safe)
	m.attached = true

	layoutTriggers(m.triggers, safe, m.surface, m.styles)
	m.helpContent.SetViewHeight(max(3, int(safe.Height)-8))

	for _, p := range m.presenters {
		p.Refresh()
	}
	for _, p := range []*popover.Presenter{m.confirm, m.help, m.palette} {
		if p.IsPresented() {
			m.present(p)
		}
	}
	m.host.Remeasure()
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level ToastLevel, message string) {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now()))
}

// batch adds the host's queued commands and the toast timer to cmds
func (m *Model) batch(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.host.Cmd())
	if len(m.toasts) > 0 && !m.toastTicking {
		m.toastTicking = true
		cmds = append(cmds, tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return toastTickMsg(t)
		}))
	}
	return tea.Batch(cmds...)
}

// mode derives the status bar mode from the stack
func (m *Model) mode() Mode {
	c, ok := m.registry.Lookup(m.surface)
	if !ok {
		return ModeNormal
	}
	for _, s := range c.Overlays() {
		if s.Phase.Live() {
			return ModePopover
		}
	}
	if c.Len() > 0 {
		return ModeDismissing
	}
	return ModeNormal
}

// stackInfo summarises the stack for the status bar
func (m *Model) stackInfo() statusbar.StackInfo {
	c, ok := m.registry.Lookup(m.surface)
	if !ok {
		return statusbar.StackInfo{}
	}
	info := statusbar.StackInfo{Depth: c.Len(), Scrim: m.host.ScrimLevel()}
	if top, ok := c.Top(); ok {
		info.TopPhase = top.Phase
	}
	return info
}
