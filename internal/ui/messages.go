package ui

import (
	"sync"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// Message is a status line message with the time it was shown
type Message struct {
	Text      string
	Timestamp time.Time
	IsError   bool
}

// MessageLogger keeps the last status messages for the :messages overlay
type MessageLogger struct {
	messages []Message
	maxSize  int
	visible  bool
	mu       sync.Mutex

	// Now returns the current time; replaced in tests
	Now func() time.Time
}

// NewMessageLogger creates a logger keeping maxSize messages
func NewMessageLogger(maxSize int) *MessageLogger {
	return &MessageLogger{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		Now:      time.Now,
	}
}

// AddMessage records a status message. Empty messages are ignored.
func (ml *MessageLogger) AddMessage(text string, isError bool) {
	if text == "" {
		return
	}

	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, Timestamp: ml.Now(), IsError: isError})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// GetMessagesReverse returns the messages newest first
func (ml *MessageLogger) GetMessagesReverse() []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Count returns the number of messages kept
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}

// Toggle shows or hides the overlay
func (ml *MessageLogger) Toggle() {
	ml.visible = !ml.visible
}

// IsVisible returns whether the overlay is shown
func (ml *MessageLogger) IsVisible() bool {
	return ml.visible
}

// Render draws the messages, newest first, above the status line
func (ml *MessageLogger) Render(screen *Screen) {
	if !ml.visible {
		return
	}

	width, height := screen.Size()
	messages := ml.GetMessagesReverse()
	boxH := min(len(messages)+2, height-2)
	if boxH < 3 || width < 10 {
		return
	}

	box := Rect{X: 0, Y: height - 1 - boxH, W: width, H: boxH}
	screen.Fill(box, ' ', screen.HelpStyle())
	screen.DrawBox(box, screen.HelpBorderStyle())
	screen.DrawString(box.X+2, box.Y, " Messages ", screen.HelpTitleStyle())

	for i, msg := range messages[:boxH-2] {
		style := screen.HelpStyle()
		if msg.IsError {
			style = screen.StatusErrorStyle()
		}
		line := msg.Timestamp.Format(model.ClockFormat+":05") + "  " + msg.Text
		screen.DrawStringLimited(box.X+2, box.Y+1+i, line, box.W-4, style)
	}
}
