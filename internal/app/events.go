package app

import (
	"fmt"
	"log"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/storage"
)

// refreshDay reloads the events of the selected date and the calendar marks
// of its month
func (a *App) refreshDay() {
	day := a.calendar.SelectedDate()
	events, err := storage.EventsOn(a.store, day)
	if err != nil {
		a.SetError("Failed to load events", err)
		events = nil
	}
	a.dayView.SetDay(day, events)
	a.refreshMarks()

	if a.mode == SelectMode && a.dayView.Len() == 0 {
		a.mode = NormalMode
	}
}

// refreshMarks marks the days of the shown month that have events
func (a *App) refreshMarks() {
	month := a.calendar.CurrentMonth()
	events, err := a.store.Between(month, month.AddDate(0, 1, 0))
	if err != nil {
		log.Printf("failed to load events of %s: %v", month.Format("2006-01"), err)
		return
	}

	dates := make([]time.Time, 0, len(events))
	for _, e := range events {
		dates = append(dates, e.Start)
	}
	a.calendar.SetMarkedDates(dates)
}

// selectDate moves the calendar to day and shows its events
func (a *App) selectDate(day time.Time) {
	a.calendar.SetSelectedDate(day)
	a.dayView.ClearSelection()
	if a.mode == SelectMode {
		a.mode = NormalMode
	}
	a.refreshDay()
}

// selectEvent selects the event with the given ID in the day view
func (a *App) selectEvent(id int64) bool {
	for i, e := range a.dayView.Events() {
		if e.ID == id {
			a.dayView.Select(i)
			a.mode = SelectMode
			return true
		}
	}
	return false
}

func (a *App) enterSelectMode() {
	if a.dayView.Len() == 0 {
		a.SetStatus("No events on " + a.calendar.SelectedDate().Format(model.DateFormat))
		return
	}
	if a.dayView.SelectedIndex() < 0 {
		a.dayView.Select(0)
	}
	a.mode = SelectMode
}

func (a *App) leaveSelectMode() {
	a.dayView.ClearSelection()
	a.mode = NormalMode
}

func (a *App) startInsert() {
	a.form.Start(a.calendar.SelectedDate())
	a.mode = InsertMode
}

// addEvent stores e, shows its day and reports events it overlaps
func (a *App) addEvent(e model.Event) {
	if err := a.store.Add(&e); err != nil {
		a.SetError("Failed to add event", err)
		return
	}

	a.selectDate(e.Date())

	msg := "Added " + e.String()
	if iv, err := e.Interval(); err == nil {
		if n := len(a.dayView.Index().Overlapping(iv)) - 1; n > 0 {
			msg += fmt.Sprintf(" (overlaps %d %s)", n, plural(n, "event", "events"))
		}
	}
	a.SetStatus(msg)
}

// deleteSelected removes the selected event. The selection moves to the
// next event, or the previous one when the last event was removed.
func (a *App) deleteSelected() {
	e, ok := a.dayView.Selected()
	if !ok {
		return
	}
	if err := a.store.Remove(e.ID); err != nil {
		a.SetError("Failed to delete event", err)
		return
	}

	a.refreshDay()
	a.SetStatus("Deleted " + e.String())
}

func (a *App) startSearch() {
	events, err := a.store.All()
	if err != nil {
		a.SetError("Failed to load events", err)
		return
	}
	a.search.Start(events)
	a.mode = SearchMode
}

// jumpToMatch shows the day of the current search match and selects it
func (a *App) jumpToMatch() {
	e, ok := a.search.GetCurrentMatch()
	if !ok {
		return
	}
	a.selectDate(e.Date())
	a.selectEvent(e.ID)
	a.SetStatus(fmt.Sprintf("Match %d of %d: %s", a.search.GetCurrentMatchNumber(), a.search.GetMatchCount(), e.Description))
}

func (a *App) nextMatch() {
	if !a.search.NextMatch() {
		a.SetStatus("No search results")
		return
	}
	a.jumpToMatch()
}

func (a *App) prevMatch() {
	if !a.search.PrevMatch() {
		a.SetStatus("No search results")
		return
	}
	a.jumpToMatch()
}

// reload rereads a store that caches events, then refreshes the view.
// The selection stays on the same position.
func (a *App) reload() error {
	if r, ok := a.store.(storage.Reloader); ok {
		if err := r.Reload(); err != nil {
			return err
		}
	}
	a.refreshDay()
	return nil
}

// openBackups shows the backup selector
func (a *App) openBackups() {
	if a.backups == nil {
		a.SetError("Backups are not enabled for this storage", nil)
		return
	}
	list, err := a.backups.List()
	if err != nil {
		a.SetError("Failed to list backups", err)
		return
	}
	if len(list) == 0 {
		a.SetStatus("No backups yet")
		return
	}
	current, err := a.store.All()
	if err != nil {
		a.SetError("Failed to load events", err)
		return
	}
	a.backupSelector.Show(list, current, a.restoreBackup, nil)
}

func (a *App) restoreBackup(b storage.BackupMetadata) {
	js, ok := a.store.(*storage.JSONStore)
	if !ok {
		a.SetError("Backups can only be restored into a JSON store", nil)
		return
	}
	if err := js.Restore(b); err != nil {
		a.SetError("Failed to restore backup", err)
		return
	}
	a.leaveSelectMode()
	a.refreshDay()
	a.SetStatus("Restored " + b.Timestamp.Format("2006-01-02 15:04:05"))
}

// dumpLayout writes the lane layout of the shown day to the log
func (a *App) dumpLayout() {
	index := a.dayView.Index()
	log.Printf("layout of %s: %d events, %d groups, overlap degree %d\n%s",
		a.dayView.Day().Format(model.DateFormat), index.Len(), index.Groups(), index.OverlapDegree(),
		spew.Sdump(index.Placements()))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
