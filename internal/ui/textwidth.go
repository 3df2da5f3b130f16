package ui

import (
	"github.com/mattn/go-runewidth"
)

// Widths below are display columns, not bytes or runes. Wide runes (CJK,
// emoji) take two columns and combining marks none.

// RuneWidth returns the display width of a single rune. Control characters
// count as zero.
func RuneWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 0)
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting a
// rune. A wide rune that would straddle the limit is dropped.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// TruncateToWidthWithEllipsis truncates s with "..." if it exceeds maxWidth
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-3) + "..."
}

// SlotLabel fits an event's clock range and description on one line of a
// lane that is width columns wide. The clock wins when there is no room for
// both.
func SlotLabel(clock, description string, width int) string {
	cw := StringWidth(clock)
	if width < cw+2 || description == "" {
		return TruncateToWidth(clock, width)
	}
	return clock + " " + TruncateToWidthWithEllipsis(description, width-cw-1)
}

// FindRuneCountAtWidth returns how many leading runes of s are needed to
// cover at least width columns, or the rune count of s if it is narrower
func FindRuneCountAtWidth(s string, width int) int {
	if width <= 0 {
		return 0
	}

	covered, count := 0, 0
	for _, r := range s {
		covered += RuneWidth(r)
		count++
		if covered >= width {
			return count
		}
	}
	return count
}
