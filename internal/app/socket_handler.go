package app

import (
	"log"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/socket"
)

// handleSocketMessage processes messages received from the Unix socket
func (app *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s, date=%s", msg.Command, msg.Date)

	switch msg.Command {
	case socket.CommandReload:
		app.handleReloadCommand(msg)
	case socket.CommandGoto:
		app.handleGotoCommand(msg)
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
	}
}

// handleReloadCommand rereads the store after another rayday process
// changed it
func (app *App) handleReloadCommand(msg socket.Message) {
	if err := app.reload(); err != nil {
		app.SetError("Failed to reload events", err)
		return
	}

	if msg.Date == "" {
		app.SetStatus("Events changed")
		return
	}
	app.SetStatus("Events changed on " + msg.Date)
}

// handleGotoCommand shows the date from the message
func (app *App) handleGotoCommand(msg socket.Message) {
	day, err := time.ParseInLocation(model.DateFormat, msg.Date, app.now().Location())
	if err != nil {
		log.Printf("Goto command with invalid date %q: %v", msg.Date, err)
		app.SetError("Invalid date from socket: "+msg.Date, nil)
		return
	}
	app.selectDate(day)
}
