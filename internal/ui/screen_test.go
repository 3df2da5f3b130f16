package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestScreen returns an 80x25 simulation screen with terminal colors
func newTestScreen(t *testing.T) *Screen {
	t.Helper()
	screen, err := NewScreenWithTcell(tcell.NewSimulationScreen("UTF-8"), theme.Default())
	require.NoError(t, err)
	t.Cleanup(func() { screen.Close() })
	return screen
}

// rowText returns the runes drawn on row y, without trailing blanks
func rowText(s *Screen, y int) string {
	var b strings.Builder
	for x := 0; x < s.GetWidth(); {
		r, _, _, width := s.tcellScreen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
		x += max(1, width)
	}
	return strings.TrimRight(b.String(), " ")
}

// screenText returns all rows joined by newlines
func screenText(s *Screen) string {
	rows := make([]string, s.GetHeight())
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestScreen_DrawStringReturnsColumns(t *testing.T) {
	screen := newTestScreen(t)

	assert.Equal(t, 5, screen.DrawString(0, 0, "Hello", tcell.StyleDefault))
	assert.Equal(t, 4, screen.DrawString(0, 1, "中国", tcell.StyleDefault))
	assert.Equal(t, "Hello", rowText(screen, 0))
	assert.Equal(t, "中国", rowText(screen, 1))
}

func TestScreen_DrawStringLimited(t *testing.T) {
	screen := newTestScreen(t)

	screen.DrawStringLimited(0, 0, "Quarterly planning", 10, tcell.StyleDefault)
	assert.Equal(t, "Quarter...", rowText(screen, 0))

	assert.Equal(t, 0, screen.DrawStringLimited(0, 1, "ignored", 0, tcell.StyleDefault))
	assert.Equal(t, "", rowText(screen, 1))
}

func TestScreen_DrawBox(t *testing.T) {
	screen := newTestScreen(t)

	screen.DrawBox(Rect{X: 1, Y: 1, W: 4, H: 3}, tcell.StyleDefault)
	assert.Equal(t, " ┌──┐", rowText(screen, 1))
	assert.Equal(t, " │  │", rowText(screen, 2))
	assert.Equal(t, " └──┘", rowText(screen, 3))
}

func TestScreen_SetCellOutsideIsIgnored(t *testing.T) {
	screen := newTestScreen(t)

	assert.NotPanics(t, func() {
		screen.SetCell(-1, 0, 'x', tcell.StyleDefault)
		screen.SetCell(0, 1000, 'x', tcell.StyleDefault)
	})
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}

	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(5, 4))
	assert.False(t, r.Contains(6, 4))
	assert.False(t, r.Contains(2, 5))
	assert.False(t, r.Contains(1, 3))
}

func TestScreen_SelectedStylesReverseWithoutColors(t *testing.T) {
	screen := newTestScreen(t)

	_, _, attrs := screen.EventSelectedStyle().Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse)

	screen.Theme = theme.TokyoNight()
	_, bg, attrs := screen.EventSelectedStyle().Decompose()
	assert.Zero(t, attrs&tcell.AttrReverse)
	assert.Equal(t, screen.Theme.Colors.EventSelectedBg, bg)
}
