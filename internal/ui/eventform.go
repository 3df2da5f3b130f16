package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/model"
)

// FormField identifies an input of the event form
type FormField int

const (
	FieldDate FormField = iota
	FieldStart
	FieldEnd
	FieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldDate:        "Date (YYYY-MM-DD)",
	FieldStart:       "Start (HH:MM)",
	FieldEnd:         "End (HH:MM)",
	FieldDescription: "Description",
}

// FormResult is returned by EventForm.HandleKey
type FormResult int

const (
	FormPending FormResult = iota
	FormCancelled
	FormSubmitted
)

// EventForm is the popup used to enter a new event
type EventForm struct {
	active bool
	values [fieldCount]string
	field  FormField
	err    error
	event  model.Event
	loc    *time.Location
}

// NewEventForm creates an inactive form
func NewEventForm() *EventForm {
	return &EventForm{loc: time.Local}
}

// Start opens the form with the date field set to day
func (f *EventForm) Start(day time.Time) {
	f.active = true
	f.values = [fieldCount]string{}
	f.values[FieldDate] = day.Format(model.DateFormat)
	f.field = FieldStart
	f.err = nil
	f.event = model.Event{}
	f.loc = day.Location()
}

// Stop closes the form
func (f *EventForm) Stop() {
	f.active = false
}

// IsActive returns whether the form is shown
func (f *EventForm) IsActive() bool {
	return f.active
}

// Field returns the focused field
func (f *EventForm) Field() FormField {
	return f.field
}

// Value returns the text of a field
func (f *EventForm) Value(field FormField) string {
	return f.values[field]
}

// Err returns the error of the last submit attempt
func (f *EventForm) Err() error {
	return f.err
}

// Event returns the event built by the last successful submit
func (f *EventForm) Event() model.Event {
	return f.event
}

// HandleKey processes a key. Tab and Enter move to the next field; Enter or
// Tab on the description submits. Backtab on the first field cancels, like
// Escape. A submit that does not parse keeps the form open with Err set.
func (f *EventForm) HandleKey(ev *tcell.EventKey) FormResult {
	if !f.active {
		return FormPending
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		f.Stop()
		return FormCancelled
	case tcell.KeyTab, tcell.KeyEnter:
		if f.field == FieldDescription {
			return f.submit()
		}
		f.field++
	case tcell.KeyBacktab:
		if f.field == FieldDate {
			f.Stop()
			return FormCancelled
		}
		f.field--
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		runes := []rune(f.values[f.field])
		if len(runes) > 0 {
			f.values[f.field] = string(runes[:len(runes)-1])
		}
	case tcell.KeyCtrlU:
		f.values[f.field] = ""
	case tcell.KeyRune:
		f.values[f.field] += string(ev.Rune())
	}

	return FormPending
}

func (f *EventForm) submit() FormResult {
	e, err := model.ParseEvent(
		f.values[FieldDate],
		f.values[FieldStart],
		f.values[FieldEnd],
		f.values[FieldDescription],
		f.loc,
	)
	if err != nil {
		f.err = err
		return FormPending
	}

	f.event = e
	f.err = nil
	f.Stop()
	return FormSubmitted
}

// Render draws the form centered on the screen
func (f *EventForm) Render(screen *Screen) {
	if !f.active {
		return
	}

	width, height := screen.Size()
	boxW := min(width-4, 50)
	boxH := 4 + 2*int(fieldCount)
	box := Rect{X: (width - boxW) / 2, Y: (height - boxH) / 2, W: boxW, H: boxH}

	textStyle := screen.FormTextStyle()
	screen.Fill(box, ' ', textStyle)
	screen.DrawBox(box, screen.FormBorderStyle())
	screen.DrawString(box.X+2, box.Y, " New event ", screen.HelpTitleStyle())

	inner := box.W - 4
	for i := range fieldCount {
		y := box.Y + 1 + 2*int(i)
		screen.DrawStringLimited(box.X+2, y, fieldLabels[i], inner, screen.FormLabelStyle())

		value := f.values[i]
		if w := StringWidth(value); w >= inner {
			// Keep the end of long input visible
			value = string([]rune(value)[FindRuneCountAtWidth(value, w-inner+1):])
		}
		x := box.X + 2 + screen.DrawString(box.X+2, y+1, value, textStyle)
		if i == f.field {
			screen.SetCell(x, y+1, ' ', screen.FormCursorStyle())
		}
	}

	footer := "Tab:next  S-Tab:back  Enter:save  Esc:cancel"
	footerStyle := textStyle.Dim(true)
	if f.err != nil {
		footer = f.err.Error()
		footerStyle = screen.FormErrorStyle()
	}
	screen.DrawStringLimited(box.X+2, box.Y+box.H-2, footer, inner, footerStyle)
}
