package ui

import "fmt"

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpSection is a titled group of keybindings, one per input mode
type HelpSection struct {
	Title    string
	Bindings []KeyBindingInfo
}

// HelpScreen manages the help overlay
type HelpScreen struct {
	visible  bool
	sections []HelpSection
	offset   int
}

// NewHelpScreen creates a hidden help screen
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetSections sets the keybindings to display
func (h *HelpScreen) SetSections(sections []HelpSection) {
	h.sections = sections
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
	h.offset = 0
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Scroll moves the visible lines by delta, clamped to the content
func (h *HelpScreen) Scroll(delta int) {
	h.offset = max(0, min(h.offset+delta, len(h.Lines())-1))
}

// Lines returns the formatted help text
func (h *HelpScreen) Lines() []string {
	var result []string
	for i, section := range h.sections {
		if i > 0 {
			result = append(result, "")
		}
		result = append(result, section.Title+":")
		for _, kb := range section.Bindings {
			result = append(result, fmt.Sprintf("  %-10s %s", kb.GetKey(), kb.GetDescription()))
		}
	}
	return result
}

// Render draws the help overlay over the whole screen
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	width, height := screen.Size()
	screen.Fill(Rect{W: width, H: height}, ' ', contentStyle)

	box := Rect{X: 2, Y: 1, W: width - 4, H: height - 2}
	if box.W < 10 || box.H < 4 {
		return
	}
	screen.DrawBox(box, screen.HelpBorderStyle())
	screen.DrawString(box.X+2, box.Y, " Keybindings (? or Esc to close, j/k to scroll) ", screen.HelpTitleStyle())

	lines := h.Lines()
	y := box.Y + 1
	for _, line := range lines[min(h.offset, len(lines)):] {
		if y >= box.Y+box.H-1 {
			break
		}
		screen.DrawStringLimited(box.X+2, y, line, box.W-4, contentStyle)
		y++
	}
}
