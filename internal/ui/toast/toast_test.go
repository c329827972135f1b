package toast

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riordanpawley/popover/internal/types"
	"github.com/riordanpawley/popover/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func TestToastRenderer_Render_Empty(t *testing.T) {
	renderer := New(styles.New())

	result := renderer.Render([]types.Toast{}, 80, now)

	assert.Equal(t, "", result, "Empty toast list should return empty string")
}

func TestToastRenderer_Render_SkipsExpired(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		{Level: types.ToastInfo, Message: "old", Expires: now.Add(-time.Second)},
		{Level: types.ToastInfo, Message: "exact", Expires: now},
	}

	assert.Equal(t, "", renderer.Render(toasts, 80, now))
}

func TestToastRenderer_Render_MultipleToasts(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "First toast", now),
		types.NewToast(types.ToastSuccess, "Second toast", now),
		types.NewToast(types.ToastError, "Third toast", now),
	}

	result := renderer.Render(toasts, 80, now)

	assert.Contains(t, result, "First toast")
	assert.Contains(t, result, "Second toast")
	assert.Contains(t, result, "Third toast")

	// Check that toasts are stacked (multiple lines)
	lines := strings.Split(result, "\n")
	assert.Greater(t, len(lines), 1, "Multiple toasts should create multiple lines")
}

func TestToastRenderer_Render_KeepsNewest(t *testing.T) {
	renderer := New(styles.New())

	var toasts []types.Toast
	for i := 0; i < MaxVisible+2; i++ {
		toasts = append(toasts, types.NewToast(types.ToastInfo, fmt.Sprintf("toast %d", i), now))
	}

	result := renderer.Render(toasts, 80, now)

	assert.NotContains(t, result, "toast 0")
	assert.NotContains(t, result, "toast 1")
	assert.Contains(t, result, fmt.Sprintf("toast %d", MaxVisible+1))
}

func TestToastRenderer_Render_DifferentLevels(t *testing.T) {
	renderer := New(styles.New())

	tests := []struct {
		name  string
		level types.ToastLevel
	}{
		{"Info", types.ToastInfo},
		{"Success", types.ToastSuccess},
		{"Warning", types.ToastWarning},
		{"Error", types.ToastError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toasts := []types.Toast{types.NewToast(tt.level, "Test "+tt.name, now)}

			result := renderer.Render(toasts, 80, now)

			assert.Contains(t, result, "Test "+tt.name, "Should contain toast message")
		})
	}
}

func TestPrune(t *testing.T) {
	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "a", now.Add(-types.DefaultToastTTL)),
		types.NewToast(types.ToastInfo, "b", now),
		types.NewToast(types.ToastInfo, "c", now.Add(-time.Hour)),
	}

	live := Prune(toasts, now)

	assert.Len(t, live, 1)
	assert.Equal(t, "b", live[0].Message)
}
