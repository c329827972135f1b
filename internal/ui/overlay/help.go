package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popover/internal/ui/styles"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays a scrollable keybinding reference
type HelpOverlay struct {
	styles     *styles.Styles
	categories []KeyCategory
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a help overlay listing categories
func NewHelpOverlay(categories []KeyCategory) *HelpOverlay {
	return &HelpOverlay{
		styles:     styles.New(),
		categories: categories,
		viewHeight: 12,
	}
}

// SetViewHeight sets how many lines are visible before scrolling
func (h *HelpOverlay) SetViewHeight(n int) {
	h.viewHeight = max(1, n)
	h.scroll = min(h.scroll, h.limit())
}

// Reset implements Resetter
func (h *HelpOverlay) Reset() {
	h.scroll = 0
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "q", "?":
		return h, closeOverlay
	case "j", "down":
		if h.scroll < h.limit() {
			h.scroll++
		}
	case "k", "up":
		if h.scroll > 0 {
			h.scroll--
		}
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.limit()
	}

	return h, nil
}

// lines renders every category without scrolling
func (h *HelpOverlay) lines() []string {
	var lines []string
	for i, cat := range h.categories {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, h.styles.MenuItemActive.Render(cat.Name+":"))
		for _, b := range cat.Bindings {
			lines = append(lines, "  "+h.styles.MenuKey.Render(b.Key)+"  "+h.styles.MenuItem.Render(b.Description))
		}
	}
	return lines
}

func (h *HelpOverlay) limit() int {
	return max(0, len(h.lines())-h.viewHeight)
}

// View renders the visible part of the reference
func (h *HelpOverlay) View() string {
	lines := h.lines()
	h.maxScroll = max(0, len(lines)-h.viewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+h.viewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n\n" + h.styles.Footer.Render("[j/k scroll, g/G jump]")
	}
	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size fits the content
func (h *HelpOverlay) Size() (width, height int) {
	return 0, 0
}
