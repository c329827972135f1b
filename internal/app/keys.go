package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/riordanpawley/popover/internal/ui/overlay"
)

// KeyMap holds the demo's key bindings
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Present    key.Binding
	Confirm    key.Binding
	Palette    key.Binding
	Help       key.Binding
	DismissAll key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "move left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "move right")),
		Present:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "present popover")),
		Confirm:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "confirm dialog")),
		Palette:    key.NewBinding(key.WithKeys("p", "ctrl+k"), key.WithHelp("p", "anchor palette")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		DismissAll: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss all")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// helpCategories lists the bindings for the help popover
func (k KeyMap) helpCategories(host overlay.KeyMap) []overlay.KeyCategory {
	stack := append(
		bindings(k.Confirm, k.Palette, k.Help, k.DismissAll),
		overlay.KeyBinding{Key: host.Dismiss.Help().Key, Description: host.Dismiss.Help().Desc},
		overlay.KeyBinding{Key: "click", Description: "outside the top popover to dismiss it"},
	)
	return []overlay.KeyCategory{
		{Name: "Triggers", Bindings: bindings(k.Up, k.Down, k.Left, k.Right, k.Present)},
		{Name: "Popovers", Bindings: stack},
		{Name: "General", Bindings: bindings(k.Quit, k.ForceQuit)},
	}
}

func bindings(bs ...key.Binding) []overlay.KeyBinding {
	out := make([]overlay.KeyBinding, 0, len(bs))
	for _, b := range bs {
		h := b.Help()
		out = append(out, overlay.KeyBinding{Key: h.Key, Description: h.Desc})
	}
	return out
}
