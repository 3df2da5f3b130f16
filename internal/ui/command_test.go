package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeCommand(c *CommandMode, s string) {
	for _, r := range s {
		c.HandleKey(runeKey(r))
	}
}

func TestCommandMode_Enter(t *testing.T) {
	c := NewCommandMode(":")
	c.Start()
	require.True(t, c.IsActive())

	typeCommand(c, "  goto 2023-07-18 ")
	cmd, done := c.HandleKey(key(tcell.KeyEnter))
	assert.True(t, done)
	assert.Equal(t, "goto 2023-07-18", cmd)
	assert.False(t, c.IsActive())
}

func TestCommandMode_Cancel(t *testing.T) {
	c := NewCommandMode(":")
	c.Start()
	typeCommand(c, "q")

	cmd, done := c.HandleKey(key(tcell.KeyEscape))
	assert.True(t, done)
	assert.Equal(t, "", cmd)

	c.Start()
	cmd, done = c.HandleKey(key(tcell.KeyBackspace2))
	assert.True(t, done, "backspace on an empty prompt closes it")
	assert.Equal(t, "", cmd)
}

func TestCommandMode_EditingIsRuneAware(t *testing.T) {
	c := NewCommandMode("/")
	c.Start()

	typeCommand(c, "café")
	c.HandleKey(key(tcell.KeyLeft))
	typeCommand(c, "x")
	assert.Equal(t, "cafxé", c.GetInput())

	c.HandleKey(key(tcell.KeyDelete))
	assert.Equal(t, "cafx", c.GetInput())

	c.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "caf", c.GetInput())

	c.HandleKey(key(tcell.KeyHome))
	typeCommand(c, "é")
	assert.Equal(t, "écaf", c.GetInput())

	c.HandleKey(key(tcell.KeyCtrlK))
	assert.Equal(t, "é", c.GetInput())

	c.HandleKey(key(tcell.KeyEnd))
	c.HandleKey(key(tcell.KeyCtrlU))
	assert.Equal(t, "", c.GetInput())
}

func TestCommandMode_DeleteWordBackwards(t *testing.T) {
	c := NewCommandMode(":")
	c.Start()

	typeCommand(c, "goto 2023-07-18  ")
	c.HandleKey(key(tcell.KeyCtrlW))
	assert.Equal(t, "goto", c.GetInput())

	c.HandleKey(key(tcell.KeyCtrlW))
	assert.Equal(t, "", c.GetInput())

	c.HandleKey(key(tcell.KeyCtrlW))
	assert.Equal(t, "", c.GetInput())
}

func TestCommandMode_HistoryNavigation(t *testing.T) {
	c := NewCommandMode(":")
	for _, cmd := range []string{"today", "goto 2023-01-01"} {
		c.Start()
		typeCommand(c, cmd)
		c.HandleKey(key(tcell.KeyEnter))
	}

	c.Start()
	typeCommand(c, "he")
	c.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "goto 2023-01-01", c.GetInput())
	c.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "today", c.GetInput())
	c.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "today", c.GetInput())
	c.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "goto 2023-01-01", c.GetInput())
	c.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "he", c.GetInput(), "moving past the newest entry restores the typed input")
}

func TestCommandMode_HistoryIsPersisted(t *testing.T) {
	manager, err := history.NewManagerAt(t.TempDir())
	require.NoError(t, err)

	c := NewCommandModeWithHistory(":", manager, "command.toml")
	c.Start()
	typeCommand(c, "debug")
	c.HandleKey(key(tcell.KeyEnter))

	again := NewCommandModeWithHistory(":", manager, "command.toml")
	assert.Equal(t, []string{"debug"}, again.History().GetAll())
}

func TestCommandMode_Render(t *testing.T) {
	screen := newTestScreen(t)
	c := NewCommandMode(":")

	c.Render(screen, 24)
	assert.Equal(t, "", rowText(screen, 24))

	c.Start()
	typeCommand(c, "goto 中")
	c.Render(screen, 24)
	assert.Equal(t, ":goto 中", rowText(screen, 24))
}

func TestHistory_SkipsEmptyAndRepeatedEntries(t *testing.T) {
	h := NewHistory(3)
	h.Add("")
	h.Add("a")
	h.Add("a")
	h.Add("b")
	h.Add("c")
	h.Add("d")

	assert.Equal(t, []string{"b", "c", "d"}, h.GetAll())
	assert.Equal(t, 3, h.Len())
	assert.False(t, h.IsNavigating())

	_, ok := h.Next()
	assert.False(t, ok, "Next without navigating")
}

type binding struct{ key, desc string }

func (b binding) GetKey() string         { return b.key }
func (b binding) GetDescription() string { return b.desc }

func TestHelpScreen(t *testing.T) {
	h := NewHelpScreen()
	h.SetSections([]HelpSection{
		{Title: "Normal", Bindings: []KeyBindingInfo{binding{"a", "Add event"}, binding{"?", "Help"}}},
		{Title: "Select", Bindings: []KeyBindingInfo{binding{"d", "Delete event"}}},
	})

	assert.Equal(t, []string{
		"Normal:",
		"  a          Add event",
		"  ?          Help",
		"",
		"Select:",
		"  d          Delete event",
	}, h.Lines())

	screen := newTestScreen(t)
	h.Render(screen)
	assert.NotContains(t, screenText(screen), "Keybindings")

	h.Toggle()
	require.True(t, h.IsVisible())
	h.Render(screen)
	assert.Contains(t, screenText(screen), "Delete event")

	h.Scroll(100)
	h.Render(screen)
	assert.NotContains(t, screenText(screen), "Add event")
	h.Scroll(-100)

	h.Toggle()
	assert.False(t, h.IsVisible())
}

func TestMessageLogger(t *testing.T) {
	ml := NewMessageLogger(2)
	ml.Now = func() time.Time { return at(9, 30) }

	ml.AddMessage("", false)
	ml.AddMessage("first", false)
	ml.AddMessage("second", true)
	ml.AddMessage("third", false)

	require.Equal(t, 2, ml.Count())
	msgs := ml.GetMessagesReverse()
	assert.Equal(t, "third", msgs[0].Text)
	assert.Equal(t, "second", msgs[1].Text)
	assert.True(t, msgs[1].IsError)

	screen := newTestScreen(t)
	ml.Toggle()
	ml.Render(screen)
	text := screenText(screen)
	assert.Contains(t, text, "09:30:00  third")
	assert.NotContains(t, text, "first")
}
