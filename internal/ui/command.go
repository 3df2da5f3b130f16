package ui

import (
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/history"
)

// CommandMode is a one-line prompt at the bottom of the screen, used for
// `:` commands and `/` searches
type CommandMode struct {
	prompt  string
	active  bool
	input   []rune
	cursor  int
	history *History
}

// NewCommandMode creates a prompt without history persistence
func NewCommandMode(prompt string) *CommandMode {
	return &CommandMode{
		prompt:  prompt,
		history: NewHistory(50),
	}
}

// NewCommandModeWithHistory creates a prompt whose history is stored in
// filename by manager. A history that cannot be loaded starts empty.
func NewCommandModeWithHistory(prompt string, manager *history.Manager, filename string) *CommandMode {
	h, err := NewHistoryWithManager(50, manager, filename)
	if err != nil {
		log.Printf("failed to load %s history: %v", filename, err)
		h = NewHistory(50)
	}

	return &CommandMode{
		prompt:  prompt,
		history: h,
	}
}

// Start activates the prompt with empty input
func (c *CommandMode) Start() {
	c.active = true
	c.input = nil
	c.cursor = 0
	c.history.Reset()
}

// Stop deactivates the prompt
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether the prompt is shown
func (c *CommandMode) IsActive() bool {
	return c.active
}

// History returns the input history
func (c *CommandMode) History() *History {
	return c.history
}

// DeleteWordBackwards deletes the word before the cursor
func (c *CommandMode) DeleteWordBackwards() {
	pos := c.cursor
	for pos > 0 && isBlank(c.input[pos-1]) {
		pos--
	}
	for pos > 0 && !isBlank(c.input[pos-1]) {
		pos--
	}
	c.input = append(c.input[:pos], c.input[c.cursor:]...)
	c.cursor = pos
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

func (c *CommandMode) setInput(s string) {
	c.input = []rune(s)
	c.cursor = len(c.input)
}

// HandleKey processes a key. done is true when the prompt closed; input is
// the trimmed text on Enter and empty when cancelled.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (input string, done bool) {
	switch ev.Key() {
	case tcell.KeyCtrlW:
		c.DeleteWordBackwards()
	case tcell.KeyEscape:
		c.Stop()
		return "", true
	case tcell.KeyEnter:
		cmd := c.GetInput()
		c.history.Add(cmd)
		c.Stop()
		return cmd, true
	case tcell.KeyUp:
		if !c.history.IsNavigating() {
			c.history.SetTemporary(string(c.input))
		}
		if prev, ok := c.history.Previous(); ok {
			c.setInput(prev)
		}
	case tcell.KeyDown:
		if next, ok := c.history.Next(); ok {
			c.setInput(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if c.cursor > 0 {
			c.input = append(c.input[:c.cursor-1], c.input[c.cursor:]...)
			c.cursor--
		} else if len(c.input) == 0 {
			// Backspace on an empty prompt closes it
			c.Stop()
			return "", true
		}
	case tcell.KeyDelete:
		if c.cursor < len(c.input) {
			c.input = append(c.input[:c.cursor], c.input[c.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if c.cursor > 0 {
			c.cursor--
		}
	case tcell.KeyRight:
		if c.cursor < len(c.input) {
			c.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		c.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		c.cursor = len(c.input)
	case tcell.KeyCtrlU:
		c.input = append([]rune(nil), c.input[c.cursor:]...)
		c.cursor = 0
	case tcell.KeyCtrlK:
		c.input = c.input[:c.cursor]
	case tcell.KeyRune:
		c.input = append(c.input[:c.cursor], append([]rune{ev.Rune()}, c.input[c.cursor:]...)...)
		c.cursor++
	}

	return "", false
}

// GetInput returns the current input without surrounding blanks
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(string(c.input))
}

// Render draws the prompt on row y
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}

	textStyle := screen.CommandTextStyle()
	cursorStyle := screen.CommandCursorStyle()
	width := screen.GetWidth()

	screen.Fill(Rect{X: 0, Y: y, W: width, H: 1}, ' ', textStyle)
	x := screen.DrawString(0, y, c.prompt, screen.CommandPromptStyle())

	for i, r := range c.input {
		if x >= width {
			break
		}
		style := textStyle
		if i == c.cursor {
			style = cursorStyle
		}
		screen.SetCell(x, y, r, style)
		x += max(1, RuneWidth(r))
	}

	if c.cursor >= len(c.input) && x < width {
		screen.SetCell(x, y, ' ', cursorStyle)
	}
}
