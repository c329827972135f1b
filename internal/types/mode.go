// Package types contains shared types used across the application.
package types

// Mode represents what currently receives keyboard input
type Mode int

const (
	// ModeNormal routes keys to the trigger grid
	ModeNormal Mode = iota
	// ModePopover routes keys to the topmost popover
	ModePopover
	// ModeDismissing means every popover is playing its exit animation
	ModeDismissing
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModePopover:
		return "POPOVER"
	case ModeDismissing:
		return "CLOSING"
	default:
		return "UNKNOWN"
	}
}
