package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/theme"
)

// Rect is a screen region
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates and initializes a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	return NewScreenWithTcell(tcellScreen, t)
}

// NewScreenWithTcell wraps an existing tcell screen, such as a
// tcell.SimulationScreen in tests, and initializes it
func NewScreenWithTcell(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number
// of columns used. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x+col, y, r, style)
		col += w
	}
	return col
}

// DrawStringLimited draws a string, truncating it to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// Fill fills a rectangle with a rune
func (s *Screen) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.SetCell(x, y, ch, style)
		}
	}
}

// DrawBox draws a single-line border around r
func (s *Screen) DrawBox(r Rect, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		s.SetCell(x, r.Y, '─', style)
		s.SetCell(x, bottom, '─', style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetCell(r.X, y, '│', style)
		s.SetCell(right, y, '│', style)
	}
	s.SetCell(r.X, r.Y, '┌', style)
	s.SetCell(right, r.Y, '┐', style)
	s.SetCell(r.X, bottom, '└', style)
	s.SetCell(right, bottom, '┘', style)
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent injects an event into the event queue
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync redraws the whole terminal, used after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// Theme-aware style methods

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}

// HeaderStyle returns the style for panel titles
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderText, s.Theme.Colors.Background).Bold(true)
}

// CalendarDayStyle returns the style for calendar day cells
func (s *Screen) CalendarDayStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CalendarDayText, s.Theme.Colors.CalendarDayBg)
}

// CalendarInactiveDayStyle returns the style for cells outside the month
func (s *Screen) CalendarInactiveDayStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CalendarInactiveDayText, s.Theme.Colors.CalendarInactiveDayBg)
}

// CalendarTodayStyle returns the style for today's day number
func (s *Screen) CalendarTodayStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CalendarTodayText, s.Theme.Colors.CalendarDayBg).Bold(true)
}

// CalendarSelectedStyle returns the style for the selected day
func (s *Screen) CalendarSelectedStyle() tcell.Style {
	st := theme.ColorPairToStyle(s.Theme.Colors.CalendarSelectedText, s.Theme.Colors.CalendarSelectedBg).Bold(true)
	if s.Theme.Colors.CalendarSelectedBg == tcell.ColorDefault {
		st = st.Reverse(true)
	}
	return st
}

// CalendarDayIndicatorStyle returns the style for indicator dots with indicator foreground and day background
func (s *Screen) CalendarDayIndicatorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CalendarIndicator, s.Theme.Colors.CalendarDayBg)
}

// EventStyle returns the style for an event block in the given lane color
func (s *Screen) EventStyle(lane tcell.Color) tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.EventText, lane)
}

// EventSelectedStyle returns the style for the selected event block
func (s *Screen) EventSelectedStyle() tcell.Style {
	st := theme.ColorPairToStyle(s.Theme.Colors.EventText, s.Theme.Colors.EventSelectedBg).Bold(true)
	if s.Theme.Colors.EventSelectedBg == tcell.ColorDefault {
		st = st.Reverse(true)
	}
	return st
}

// EventHourMarkStyle returns the style for the hour gutter
func (s *Screen) EventHourMarkStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EventHourMark).Dim(true)
}

// EventNowLineStyle returns the style for the current time marker
func (s *Screen) EventNowLineStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.EventNowLine).Bold(true)
}

// FormBorderStyle returns the style for the event form border
func (s *Screen) FormBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FormBorder, s.Theme.Colors.HelpBackground)
}

// FormLabelStyle returns the style for event form labels
func (s *Screen) FormLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FormLabel, s.Theme.Colors.HelpBackground)
}

// FormTextStyle returns the style for event form input
func (s *Screen) FormTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FormText, s.Theme.Colors.HelpBackground)
}

// FormCursorStyle returns the style for the event form cursor
func (s *Screen) FormCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.FormCursor).Reverse(true)
}

// FormErrorStyle returns the style for event form errors
func (s *Screen) FormErrorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.FormError, s.Theme.Colors.HelpBackground)
}

// SearchLabelStyle returns the style for search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchLabel)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchText)
}

// SearchResultCountStyle returns the style for search result count
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.SearchResultCount)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	st := theme.ColorPairToStyle(s.Theme.Colors.StatusMode, s.Theme.Colors.StatusModeBg).Bold(true)
	if s.Theme.Colors.StatusModeBg == tcell.ColorDefault {
		st = st.Reverse(true)
	}
	return st
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusErrorStyle returns the style for error messages
func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusError).Bold(true)
}

// DiffAddedStyle returns the style for added events in a diff
func (s *Screen) DiffAddedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DiffAdded, s.Theme.Colors.HelpBackground)
}

// DiffDeletedStyle returns the style for deleted events in a diff
func (s *Screen) DiffDeletedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DiffDeleted, s.Theme.Colors.HelpBackground)
}

// DiffModifiedStyle returns the style for modified events in a diff
func (s *Screen) DiffModifiedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DiffModified, s.Theme.Colors.HelpBackground)
}
