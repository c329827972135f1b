package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Canvas is a fixed-size grid of styled terminal lines that blocks can be
// drawn onto at arbitrary cell positions
type Canvas struct {
	width  int
	height int
	lines  []string
}

// NewCanvas fits base into width x height cells, padding short lines and
// rows and cutting long ones
func NewCanvas(base string, width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)

	src := strings.Split(base, "\n")
	lines := make([]string, height)
	for i := range lines {
		var line string
		if i < len(src) {
			line = src[i]
		}
		lines[i] = fit(line, width)
	}
	return &Canvas{width: width, height: height, lines: lines}
}

// Size returns the canvas dimensions in cells
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Dim re-renders every line in style with its own styling stripped
func (c *Canvas) Dim(style lipgloss.Style) {
	for i, line := range c.lines {
		c.lines[i] = style.Render(ansi.Strip(line))
	}
}

// Draw paints block with its top-left corner at (x, y). Parts outside the
// canvas are clipped.
func (c *Canvas) Draw(x, y int, block string) {
	fg := strings.Split(block, "\n")
	fgW := 0
	for _, line := range fg {
		fgW = max(fgW, ansi.StringWidth(line))
	}
	c.drawLines(x, y, fg, fgW)
}

// Fill paints a w x h rectangle of blank cells in style
func (c *Canvas) Fill(x, y, w, h int, style lipgloss.Style) {
	if w <= 0 || h <= 0 {
		return
	}
	row := style.Render(strings.Repeat(" ", w))
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	c.drawLines(x, y, rows, w)
}

func (c *Canvas) drawLines(x, y int, fg []string, fgW int) {
	if fgW <= 0 {
		return
	}

	// Clip on the left
	skip := 0
	if x < 0 {
		skip = -x
		fgW -= skip
		x = 0
	}
	// Clip on the right
	if x+fgW > c.width {
		fgW = c.width - x
	}
	if fgW <= 0 {
		return
	}

	for i, fgLine := range fg {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= c.height {
			break
		}

		if skip > 0 {
			fgLine = ansi.Cut(fgLine, skip, skip+fgW)
		}
		fgLine = fit(fgLine, fgW)

		bgLine := c.lines[row]
		left := ansi.Cut(bgLine, 0, x)
		right := ansi.Cut(bgLine, x+fgW, c.width)
		c.lines[row] = left + fgLine + right
	}
}

// String joins the canvas rows
func (c *Canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// fit pads or cuts line to exactly w cells
func fit(line string, w int) string {
	n := ansi.StringWidth(line)
	switch {
	case n < w:
		return line + strings.Repeat(" ", w-n)
	case n > w:
		return ansi.Cut(line, 0, w)
	default:
		return line
	}
}
