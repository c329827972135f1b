package statusbar_test

import (
	"fmt"

	"github.com/riordanpawley/popover/internal/types"
	"github.com/riordanpawley/popover/internal/ui/statusbar"
	"github.com/riordanpawley/popover/internal/ui/styles"
)

// Example demonstrates how to use the StatusBar
func Example() {
	style := styles.New()

	// Create a status bar in normal mode
	sb := statusbar.New(types.ModeNormal, 80, style)

	// Render it (output will include ANSI codes for styling)
	rendered := sb.Render()

	// For this example, we just verify it's not empty
	fmt.Println(len(rendered) > 0)
	// Output: true
}

// ExampleGetHints shows how to get hints for different modes
func ExampleGetHints() {
	fmt.Println(statusbar.GetHints(types.ModePopover))
	// Output: esc: dismiss top  x: dismiss all  click outside: tap scrim
}
