package app

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// Command is a `:` command
type Command struct {
	Name        string
	Description string
	Handler     func(a *App, args []string)
}

func commandList() []Command {
	return []Command{
		{Name: "q", Description: "Quit", Handler: func(a *App, _ []string) { a.Quit() }},
		{Name: "quit", Description: "Quit", Handler: func(a *App, _ []string) { a.Quit() }},
		{Name: "today", Description: "Go to today", Handler: func(a *App, _ []string) { a.selectDate(a.now()) }},
		{Name: "goto", Description: "Go to a date: goto YYYY-MM-DD", Handler: cmdGoto},
		{Name: "add", Description: "Add an event: add HH:MM HH:MM description", Handler: cmdAdd},
		{Name: "reload", Description: "Reread the events from storage", Handler: cmdReload},
		{Name: "backups", Description: "Browse and restore backups", Handler: func(a *App, _ []string) { a.openBackups() }},
		{Name: "set", Description: "Show or change settings: set [key value]", Handler: cmdSet},
		{Name: "messages", Description: "Show recent messages", Handler: func(a *App, _ []string) { a.messages.Toggle() }},
		{Name: "help", Description: "Show keybindings", Handler: func(a *App, _ []string) { a.help.Toggle() }},
		{Name: "debug", Description: "Toggle key logging and log the day layout", Handler: cmdDebug},
	}
}

func (a *App) commands() map[string]Command {
	m := make(map[string]Command)
	for _, c := range commandList() {
		m[c.Name] = c
	}
	return m
}

func cmdGoto(a *App, args []string) {
	if len(args) != 1 {
		a.SetError("Usage: goto YYYY-MM-DD", nil)
		return
	}
	day, err := time.ParseInLocation(model.DateFormat, args[0], a.now().Location())
	if err != nil {
		a.SetError("Invalid date "+args[0], nil)
		return
	}
	a.selectDate(day)
}

func cmdAdd(a *App, args []string) {
	if len(args) < 3 {
		a.SetError("Usage: add HH:MM HH:MM description", nil)
		return
	}
	day := a.calendar.SelectedDate()
	e, err := model.ParseEvent(day.Format(model.DateFormat), args[0], args[1], strings.Join(args[2:], " "), day.Location())
	if err != nil {
		a.SetError("Invalid event", err)
		return
	}
	a.addEvent(e)
}

func cmdReload(a *App, _ []string) {
	if err := a.reload(); err != nil {
		a.SetError("Failed to reload events", err)
		return
	}
	a.SetStatus("Reloaded")
}

// cmdSet shows the settings or sets a session override. week_start also
// applies to the calendar.
func cmdSet(a *App, args []string) {
	switch len(args) {
	case 0:
		all := a.cfg.GetAll()
		if len(all) == 0 {
			a.SetStatus("No settings")
			return
		}
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			a.messages.AddMessage(k+" = "+all[k], false)
		}
		a.SetStatus(fmt.Sprintf("%d settings, see :messages", len(keys)))
	case 1:
		a.SetStatus(args[0] + " = " + a.cfg.Get(args[0]))
	default:
		key, value := args[0], strings.Join(args[1:], " ")
		if key == "week_start" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 || n > 6 {
				a.SetError("week_start must be a number from 0 (Sunday) to 6", nil)
				return
			}
			a.calendar.SetWeekStart(n)
		}
		a.cfg.Set(key, value)
		a.SetStatus(key + " = " + value)
	}
}

func cmdDebug(a *App, _ []string) {
	a.debugMode = !a.debugMode
	if a.debugMode {
		a.dumpLayout()
		a.SetStatus("Debug mode ON, layout written to the log")
	} else {
		a.SetStatus("Debug mode OFF")
	}
}

// parseCommand splits a command line into words. Single and double quotes
// group words; inside double quotes \" and \\ are escapes.
func parseCommand(input string) []string {
	var (
		parts   []string
		current strings.Builder
		quoted  bool
		quote   rune
		escaped bool
	)

	flush := func() {
		if current.Len() > 0 || quoted {
			parts = append(parts, current.String())
		}
		current.Reset()
		quoted = false
	}

	for _, r := range input {
		switch {
		case escaped:
			if r != '"' && r != '\\' {
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			escaped = false
		case quote != 0:
			switch {
			case r == quote:
				quote = 0
			case r == '\\' && quote == '"':
				escaped = true
			default:
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			quoted = true
		case r == ' ' || r == '\t':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return parts
}
