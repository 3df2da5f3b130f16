package ui

import "strings"

// SplashScreen is the welcome screen shown while the calendar has no
// events at all. Any key dismisses it.
type SplashScreen struct {
	visible bool
	version string
}

// NewSplashScreen creates a hidden splash screen for the given version
func NewSplashScreen(version string) *SplashScreen {
	return &SplashScreen{version: version}
}

// Show makes the splash screen visible
func (s *SplashScreen) Show() {
	s.visible = true
}

// Hide makes the splash screen invisible
func (s *SplashScreen) Hide() {
	s.visible = false
}

// IsVisible returns whether the splash screen is visible
func (s *SplashScreen) IsVisible() bool {
	return s.visible
}

// GetContent returns the lines to display on the splash screen
func (s *SplashScreen) GetContent() []string {
	return []string{
		"~~ rayday ~~",
		"",
		"Version " + s.version,
		"",
		"A day planner for the terminal",
		"",
		"Keys:",
		"  h/l j/k   - Move by day / week",
		"  a         - Add an event",
		"  s         - Select events of the day",
		"  /         - Search events",
		"  ?         - Show keybindings",
		"  :q        - Quit",
		"",
		"Press any key to start",
	}
}

// Render draws the content as a centered block
func (s *SplashScreen) Render(screen *Screen) {
	if !s.visible {
		return
	}

	width, height := screen.Size()
	screen.Fill(Rect{W: width, H: height}, ' ', screen.BackgroundStyle())

	content := s.GetContent()
	blockW := 0
	for _, line := range content {
		blockW = max(blockW, StringWidth(line))
	}

	startX := max(0, (width-blockW)/2)
	startY := max(0, (height-len(content))/2)

	textStyle := screen.HeaderStyle()
	dimStyle := screen.StatusMessageStyle()
	for i, line := range content {
		style := textStyle
		if strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "Press") {
			style = dimStyle
		}
		screen.DrawStringLimited(startX, startY+i, line, width-startX, style)
	}
}
