package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('S'))
	assert.Equal(t, 2, RuneWidth('会'))
	assert.Equal(t, 2, RuneWidth('🎂'))
	assert.Equal(t, 0, RuneWidth('\u0301'), "combining acute")
	assert.Equal(t, 0, RuneWidth('\t'))
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 7, StringWidth("Standup"))
	assert.Equal(t, 4, StringWidth("会議"))
	assert.Equal(t, 4, StringWidth("caf\u00e9"))
	assert.Equal(t, 4, StringWidth("cafe\u0301"), "decomposed accent")
	assert.Equal(t, 0, StringWidth(""))
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"fits", "Review", 10, "Review"},
		{"exact", "Review", 6, "Review"},
		{"cut", "Planning", 4, "Plan"},
		{"wide rune is not split", "会議室", 3, "会"},
		{"mixed", "Lunch 🍜 at noon", 7, "Lunch "},
		{"zero", "Review", 0, ""},
		{"negative", "Review", -2, ""},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.input, tt.maxWidth)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, StringWidth(got), max(tt.maxWidth, 0))
		})
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	assert.Equal(t, "Standup", TruncateToWidthWithEllipsis("Standup", 7))
	assert.Equal(t, "Sta...", TruncateToWidthWithEllipsis("Standup", 6))
	assert.Equal(t, "会...", TruncateToWidthWithEllipsis("会議室の予約", 6))
	assert.Equal(t, "Sta", TruncateToWidthWithEllipsis("Standup", 3), "no room for an ellipsis")
	assert.Equal(t, "", TruncateToWidthWithEllipsis("", 3))
}

func TestSlotLabel(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		desc     string
		expected string
	}{
		{"both fit", 30, "Standup", "09:00-10:00 Standup"},
		{"description cut", 17, "Sprint planning", "09:00-10:00 Sp..."},
		{"one column for the description", 13, "Standup", "09:00-10:00 S"},
		{"only the clock", 12, "Standup", "09:00-10:00"},
		{"clock cut", 5, "Standup", "09:00"},
		{"empty description", 30, "", "09:00-10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotLabel("09:00-10:00", tt.desc, tt.width)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, StringWidth(got), tt.width)
		})
	}
}

func TestFindRuneCountAtWidth(t *testing.T) {
	assert.Equal(t, 3, FindRuneCountAtWidth("Review", 3))
	assert.Equal(t, 0, FindRuneCountAtWidth("Review", 0))
	assert.Equal(t, 2, FindRuneCountAtWidth("Hi", 10), "past the end")
	assert.Equal(t, 2, FindRuneCountAtWidth("🎂🎂 party", 3))
	assert.Equal(t, 2, FindRuneCountAtWidth("会議室", 4))
}
