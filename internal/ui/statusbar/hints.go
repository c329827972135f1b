package statusbar

import "github.com/riordanpawley/popover/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "arrows: move  enter: present  c: confirm  p: palette  ?: help  q: quit"
	case types.ModePopover:
		return "esc: dismiss top  x: dismiss all  click outside: tap scrim"
	default:
		return ""
	}
}
