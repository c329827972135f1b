package popover

import (
	"log/slog"
	"sync"

	"github.com/riordanpawley/popover/internal/geometry"
)

// Trigger is the view that presents a popover
type Trigger interface {
	// Frame is the trigger's on-screen rectangle
	Frame() geometry.Rect
	// Surface is the surface the trigger is attached to, or nil
	Surface() *Surface
}

// Presenter binds a boolean "is presented" state of one trigger to an
// overlay. Setting it to true presents a snapshot of the attributes,
// setting it to false dismisses the overlay, and removing the overlay by
// any other path resets it to false.
type Presenter struct {
	registry  *Registry
	trigger   Trigger
	content   ContentHandle
	defaults  Attributes
	build     func(*Attributes)
	onDismiss func()
	logger    *slog.Logger

	mu         sync.Mutex
	presented  bool
	current    ID
	controller *Controller
}

// PresenterOption configures a Presenter
type PresenterOption func(*Presenter)

// WithAttributes sets a builder applied on top of the defaults at every presentation
func WithAttributes(build func(*Attributes)) PresenterOption {
	return func(p *Presenter) {
		p.build = build
	}
}

// WithDefaults replaces DefaultAttributes as the starting point
func WithDefaults(a Attributes) PresenterOption {
	return func(p *Presenter) {
		p.defaults = a.clone()
	}
}

// WithDismissHandler sets a handler called after the overlay was removed
func WithDismissHandler(fn func()) PresenterOption {
	return func(p *Presenter) {
		p.onDismiss = fn
	}
}

// WithPresenterLogger sets the logger
func WithPresenterLogger(l *slog.Logger) PresenterOption {
	return func(p *Presenter) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPresenter creates a presenter for trigger showing content. A nil
// registry means Shared().
func NewPresenter(r *Registry, trigger Trigger, content ContentHandle, opts ...PresenterOption) *Presenter {
	if r == nil {
		r = Shared()
	}
	p := &Presenter{
		registry: r,
		trigger:  trigger,
		content:  content,
		defaults: DefaultAttributes(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsPresented reports the binding's value
func (p *Presenter) IsPresented() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.presented
}

// OverlayID returns the identity of the overlay currently bound
func (p *Presenter) OverlayID() (ID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.controller != nil
}

// Toggle flips the binding
func (p *Presenter) Toggle() error {
	return p.SetPresented(!p.IsPresented())
}

// SetPresented updates the binding. Presenting while the trigger has no
// surface drops the request and returns ErrNoSurface; the binding stays
// false so the caller can retry once the trigger is attached. Presenting
// while the previous overlay is still live updates it in place.
func (p *Presenter) SetPresented(v bool) error {
	if !v {
		p.dismiss()
		return nil
	}

	surface := p.trigger.Surface()
	if surface == nil {
		p.logger.Debug("popover presentation dropped, trigger not attached")
		return ErrNoSurface
	}

	p.mu.Lock()
	id := p.current
	if p.controller == nil {
		id = NewID()
	} else if snap, ok := p.controller.Lookup(id); !ok || !snap.Phase.Live() {
		id = NewID()
	}
	p.mu.Unlock()

	o := NewOverlayWithID(id, p.attributes(surface), p.content).
		OnDismiss(func() { p.dismissed(id) })

	c, err := p.registry.Present(surface, o)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.presented = true
	p.current = id
	p.controller = c
	p.mu.Unlock()
	return nil
}

// Refresh pushes the trigger's current frame to the live overlay
func (p *Presenter) Refresh() bool {
	p.mu.Lock()
	c, id := p.controller, p.current
	p.mu.Unlock()

	if c == nil {
		return false
	}
	snap, ok := c.Lookup(id)
	if !ok || snap.Attributes.Placement.Mode() != geometry.ModeAbsolute {
		return false
	}
	return c.UpdateSource(id, p.trigger.Frame())
}

func (p *Presenter) attributes(surface *Surface) Attributes {
	a := p.defaults.clone()
	if p.build != nil {
		p.build(&a)
	}
	if a.Placement.Mode() == geometry.ModeAbsolute {
		a.SourceRect = p.trigger.Frame()
	} else {
		a.SourceRect = surface.SafeBounds()
	}
	return a
}

func (p *Presenter) dismiss() {
	p.mu.Lock()
	c, id := p.controller, p.current
	p.presented = false
	p.mu.Unlock()

	if c != nil {
		c.RequestDismiss(id, false)
	}
}

func (p *Presenter) dismissed(id ID) {
	p.mu.Lock()
	if p.controller == nil || p.current != id {
		p.mu.Unlock()
		return
	}
	p.presented = false
	p.controller = nil
	p.current = ID{}
	handler := p.onDismiss
	p.mu.Unlock()

	if handler != nil {
		handler()
	}
}
