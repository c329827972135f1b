package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewService(t *testing.T) {
	s := NewService(3, 3)

	assert.Equal(t, 0, s.Current())
	assert.Equal(t, Position{}, s.GetCursor().Pos)

	s = NewService(0, -1)
	assert.Equal(t, 1, s.GetCursor().Columns)
	assert.Equal(t, 1, s.GetCursor().Rows)
}

func TestService_Move(t *testing.T) {
	s := NewService(3, 3)

	assert.True(t, s.MoveRight())
	assert.True(t, s.MoveDown())
	assert.Equal(t, 4, s.Current())

	assert.True(t, s.MoveRight())
	assert.False(t, s.MoveRight(), "clamped at the right edge")
	assert.Equal(t, 5, s.Current())

	assert.True(t, s.MoveDown())
	assert.False(t, s.MoveDown())
	assert.Equal(t, 8, s.Current())

	s.MoveLeft()
	s.MoveLeft()
	assert.False(t, s.MoveLeft())
	s.MoveUp()
	s.MoveUp()
	assert.False(t, s.MoveUp())
	assert.Equal(t, 0, s.Current())
}

func TestService_JumpToIndex(t *testing.T) {
	s := NewService(3, 2)

	tests := []struct {
		index int
		ok    bool
		want  Position
	}{
		{index: 5, ok: true, want: Position{Column: 2, Row: 1}},
		{index: 3, ok: true, want: Position{Column: 0, Row: 1}},
		{index: 6, ok: false, want: Position{Column: 0, Row: 1}},
		{index: -1, ok: false, want: Position{Column: 0, Row: 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, s.JumpToIndex(tt.index), "index %d", tt.index)
		assert.Equal(t, tt.want, s.GetCursor().Pos, "index %d", tt.index)
	}
}

func TestCursor_Set(t *testing.T) {
	c := Cursor{Columns: 2, Rows: 2}

	assert.True(t, c.Set(Position{Column: 1, Row: 1}))
	assert.Equal(t, 3, c.Index())
	assert.False(t, c.Set(Position{Column: 2, Row: 0}))
	assert.False(t, c.Set(Position{Column: 0, Row: -1}))
	assert.Equal(t, 3, c.Index())
}
