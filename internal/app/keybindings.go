package app

import (
	"github.com/pstuifzand/rayday/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// GetKey returns the key of this keybinding
func (kb KeyBinding) GetKey() string {
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb KeyBinding) GetDescription() string {
	return kb.Description
}

// helpEntry is a help line for keys handled outside the binding tables
type helpEntry struct {
	key, description string
}

func (h helpEntry) GetKey() string         { return h.key }
func (h helpEntry) GetDescription() string { return h.description }

// InitializeKeybindings sets up the normal mode key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'h',
			Description: "Previous day",
			Handler: func(app *App) {
				app.moveDays(-1)
			},
		},
		{
			Key:         'l',
			Description: "Next day",
			Handler: func(app *App) {
				app.moveDays(1)
			},
		},
		{
			Key:         'k',
			Description: "Previous week",
			Handler: func(app *App) {
				app.moveDays(-7)
			},
		},
		{
			Key:         'j',
			Description: "Next week",
			Handler: func(app *App) {
				app.moveDays(7)
			},
		},
		{
			Key:         'K',
			Description: "Previous month",
			Handler: func(app *App) {
				app.moveMonths(-1)
			},
		},
		{
			Key:         'J',
			Description: "Next month",
			Handler: func(app *App) {
				app.moveMonths(1)
			},
		},
		{
			Key:         'H',
			Description: "Previous year",
			Handler: func(app *App) {
				app.moveMonths(-12)
			},
		},
		{
			Key:         'L',
			Description: "Next year",
			Handler: func(app *App) {
				app.moveMonths(12)
			},
		},
		{
			Key:         't',
			Description: "Go to today",
			Handler: func(app *App) {
				app.selectDate(app.now())
			},
		},
		{
			Key:         'a',
			Description: "Add an event",
			Handler: func(app *App) {
				app.startInsert()
			},
		},
		{
			Key:         's',
			Description: "Select events of the day",
			Handler: func(app *App) {
				app.enterSelectMode()
			},
		},
		{
			Key:         '/',
			Description: "Search events",
			Handler: func(app *App) {
				app.startSearch()
			},
		},
		{
			Key:         'n',
			Description: "Next search match",
			Handler: func(app *App) {
				app.nextMatch()
			},
		},
		{
			Key:         'N',
			Description: "Previous search match",
			Handler: func(app *App) {
				app.prevMatch()
			},
		},
		{
			Key:         'm',
			Description: "Show messages",
			Handler: func(app *App) {
				app.messages.Toggle()
			},
		},
		{
			Key:         ':',
			Description: "Command line",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         '?',
			Description: "Show keybindings",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
	}
}

// InitializeSelectKeybindings sets up the key bindings used while an event
// is selected
func (a *App) InitializeSelectKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Description: "Next event",
			Handler: func(app *App) {
				app.dayView.SelectNext()
			},
		},
		{
			Key:         'k',
			Description: "Previous event",
			Handler: func(app *App) {
				app.dayView.SelectPrev()
			},
		},
		{
			Key:         'd',
			Description: "Delete the selected event",
			Handler: func(app *App) {
				app.deleteSelected()
			},
		},
		{
			Key:         'x',
			Description: "Delete the selected event",
			Handler: func(app *App) {
				app.deleteSelected()
			},
		},
		{
			Key:         'a',
			Description: "Add an event",
			Handler: func(app *App) {
				app.leaveSelectMode()
				app.startInsert()
			},
		},
		{
			Key:         'n',
			Description: "Next search match",
			Handler: func(app *App) {
				app.nextMatch()
			},
		},
		{
			Key:         'N',
			Description: "Previous search match",
			Handler: func(app *App) {
				app.prevMatch()
			},
		},
		{
			Key:         ':',
			Description: "Command line",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Key:         '?',
			Description: "Show keybindings",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Back to the calendar",
			Handler: func(app *App) {
				app.leaveSelectMode()
			},
		},
	}
}

// GetKeybindingByKey returns a normal mode keybinding for a given key
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	return findBinding(a.keybindings, key)
}

// GetSelectKeybindingByKey returns a select mode keybinding for a given key
func (a *App) GetSelectKeybindingByKey(key rune) *KeyBinding {
	return findBinding(a.selectKeybindings, key)
}

func findBinding(bindings []KeyBinding, key rune) *KeyBinding {
	for i := range bindings {
		if bindings[i].Key == key {
			return &bindings[i]
		}
	}
	return nil
}

func (a *App) moveDays(days int) {
	a.calendar.MoveDays(days)
	a.refreshDay()
}

func (a *App) moveMonths(months int) {
	a.calendar.MoveMonths(months)
	a.refreshDay()
}

// helpSections lists every mode's keys and the commands for the help
// overlay
func (a *App) helpSections() []ui.HelpSection {
	sections := []ui.HelpSection{
		{Title: "Calendar", Bindings: toHelp(a.keybindings, helpEntry{"Enter", "Select events of the day"}, helpEntry{"arrows", "Move by day / week"})},
		{Title: "Selected event", Bindings: toHelp(a.selectKeybindings, helpEntry{"Tab", "Next event"}, helpEntry{"Esc", "Back to the calendar"})},
		{Title: "Event form", Bindings: []ui.KeyBindingInfo{
			helpEntry{"Tab", "Next field"},
			helpEntry{"S-Tab", "Previous field"},
			helpEntry{"Enter", "Next field, add on the last"},
			helpEntry{"Esc", "Cancel"},
		}},
	}

	var cmds []ui.KeyBindingInfo
	for _, c := range commandList() {
		cmds = append(cmds, helpEntry{":" + c.Name, c.Description})
	}
	return append(sections, ui.HelpSection{Title: "Commands", Bindings: cmds})
}

func toHelp(bindings []KeyBinding, extra ...helpEntry) []ui.KeyBindingInfo {
	out := make([]ui.KeyBindingInfo, 0, len(bindings)+len(extra))
	for _, kb := range bindings {
		out = append(out, kb)
	}
	for _, e := range extra {
		out = append(out, e)
	}
	return out
}
