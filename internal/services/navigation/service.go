// Package navigation provides cursor and navigation state management
package navigation

// Position is a cell of the grid
type Position struct {
	Column int
	Row    int
}

// Cursor tracks the selected cell of a columns x rows grid
type Cursor struct {
	Columns int
	Rows    int
	Pos     Position
}

// Index returns the row-major index of the cursor
func (c *Cursor) Index() int {
	return c.Pos.Row*c.Columns + c.Pos.Column
}

// Move shifts the cursor, clamping at the edges. It reports whether the
// cursor moved.
func (c *Cursor) Move(dCol, dRow int) bool {
	next := Position{
		Column: clamp(c.Pos.Column+dCol, c.Columns),
		Row:    clamp(c.Pos.Row+dRow, c.Rows),
	}
	if next == c.Pos {
		return false
	}
	c.Pos = next
	return true
}

// Set moves the cursor to p if it is inside the grid
func (c *Cursor) Set(p Position) bool {
	if p.Column < 0 || p.Column >= c.Columns || p.Row < 0 || p.Row >= c.Rows {
		return false
	}
	c.Pos = p
	return true
}

func clamp(v, n int) int {
	return max(0, min(v, n-1))
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a navigation service for a columns x rows grid
func NewService(columns, rows int) *Service {
	return &Service{
		cursor: Cursor{Columns: max(1, columns), Rows: max(1, rows)},
	}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// Current returns the row-major index of the selected cell
func (s *Service) Current() int {
	return s.cursor.Index()
}

// MoveDown moves the cursor one row down
func (s *Service) MoveDown() bool {
	return s.cursor.Move(0, 1)
}

// MoveUp moves the cursor one row up
func (s *Service) MoveUp() bool {
	return s.cursor.Move(0, -1)
}

// MoveLeft moves the cursor one column left
func (s *Service) MoveLeft() bool {
	return s.cursor.Move(-1, 0)
}

// MoveRight moves the cursor one column right
func (s *Service) MoveRight() bool {
	return s.cursor.Move(1, 0)
}

// JumpToIndex selects a cell by row-major index
func (s *Service) JumpToIndex(index int) bool {
	if index < 0 {
		return false
	}
	return s.cursor.Set(Position{Column: index % s.cursor.Columns, Row: index / s.cursor.Columns})
}
