package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/popover/internal/ui/styles"
	"github.com/sahilm/fuzzy"
)

// PaletteItem is one entry in a command palette
type PaletteItem struct {
	Label string
	Value any
}

// paletteMatch is a visible item with the label positions the query hit
type paletteMatch struct {
	item    PaletteItem
	matched []int
}

// Palette is a popover with a text input that fuzzy-filters its items.
// Enter emits a SelectionMsg with the palette key and the item's value.
type Palette struct {
	key      string
	title    string
	items    []PaletteItem
	input    textinput.Model
	visible  []paletteMatch
	selected int
	rows     int
	styles   *styles.Styles
}

// NewPalette creates a palette whose selections are reported under key
func NewPalette(key, title string, items []PaletteItem) *Palette {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 64
	ti.Width = 28
	ti.Focus()

	p := &Palette{
		key:    key,
		title:  title,
		items:  items,
		input:  ti,
		rows:   8,
		styles: styles.New(),
	}
	p.applyFilter()
	return p
}

// Reset implements Resetter; each presentation starts with an empty query
func (p *Palette) Reset() {
	p.input.SetValue("")
	p.input.Focus()
	p.selected = 0
	p.applyFilter()
}

// Query returns the current filter text
func (p *Palette) Query() string {
	return p.input.Value()
}

// Visible returns the labels that match the current query, best first
func (p *Palette) Visible() []string {
	labels := make([]string, len(p.visible))
	for i, m := range p.visible {
		labels[i] = m.item.Label
	}
	return labels
}

// Init implements tea.Model
func (p *Palette) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (p *Palette) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			if len(p.visible) == 0 {
				return p, nil
			}
			item := p.visible[p.selected].item
			return p, tea.Batch(
				func() tea.Msg { return SelectionMsg{Key: p.key, Value: item.Value} },
				closeOverlay,
			)
		case tea.KeyUp, tea.KeyCtrlP:
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case tea.KeyDown, tea.KeyCtrlN:
			if p.selected < len(p.visible)-1 {
				p.selected++
			}
			return p, nil
		}
	}

	prev := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != prev {
		p.selected = 0
		p.applyFilter()
	}
	return p, cmd
}

func (p *Palette) applyFilter() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.visible = make([]paletteMatch, len(p.items))
		for i, item := range p.items {
			p.visible[i] = paletteMatch{item: item}
		}
		return
	}

	labels := make([]string, len(p.items))
	for i, item := range p.items {
		labels[i] = item.Label
	}
	matches := fuzzy.Find(query, labels)
	p.visible = make([]paletteMatch, len(matches))
	for i, m := range matches {
		p.visible[i] = paletteMatch{item: p.items[m.Index], matched: m.MatchedIndexes}
	}
}

// View implements tea.Model
func (p *Palette) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n")

	if len(p.visible) == 0 {
		b.WriteString(p.styles.MenuItemDisabled.Render("  no matches"))
		return b.String()
	}

	start := max(0, p.selected-p.rows+1)
	end := min(start+p.rows, len(p.visible))
	for i := start; i < end; i++ {
		b.WriteString("\n")
		cursor := "  "
		if i == p.selected {
			cursor = p.styles.MenuKey.Render("> ")
		}
		b.WriteString(cursor + p.highlight(p.visible[i], i == p.selected))
	}

	if hidden := len(p.visible) - (end - start); hidden > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.Footer.Render(fmt.Sprintf("  … %d more", hidden)))
	}
	return b.String()
}

// highlight renders a label with its matched characters marked
func (p *Palette) highlight(m paletteMatch, active bool) string {
	base := p.styles.MenuItem
	if active {
		base = p.styles.MenuItemActive
	}
	if len(m.matched) == 0 {
		return base.Render(m.item.Label)
	}

	hit := make(map[int]bool, len(m.matched))
	for _, i := range m.matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range m.item.Label {
		if hit[i] {
			b.WriteString(p.styles.MenuMatch.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Title implements Content
func (p *Palette) Title() string {
	return p.title
}

// Size fits the content
func (p *Palette) Size() (width, height int) {
	return 0, 0
}
