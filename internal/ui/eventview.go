package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/pstuifzand/rayday/internal/interval"
	"github.com/pstuifzand/rayday/internal/model"
)

// gutterWidth is the width of the "HH:00 " column
const gutterWidth = 6

// Slot is where an event is drawn in the day view
type Slot struct {
	Event model.Event
	Rect  Rect
	Lane  int
	// Lanes is the lane count of the whole day
	Lanes       int
	HasOverlaps bool
}

// EventView shows the events of one day side by side: overlapping events
// get their own lane, events that overlap nothing use the full width.
type EventView struct {
	day       time.Time
	index     *interval.Index[model.Event]
	placed    []interval.Placement[model.Event]
	selected  int
	startHour int
	endHour   int
}

// NewEventView creates a day view showing at least the hours
// [startHour, endHour)
func NewEventView(startHour, endHour int) *EventView {
	return &EventView{
		index:     interval.NewIndex[model.Event](),
		selected:  -1,
		startHour: startHour,
		endHour:   endHour,
	}
}

// SetDay replaces the shown events. Events with an invalid time range are
// skipped and logged. The selection is kept on the same position when
// possible.
func (v *EventView) SetDay(day time.Time, events []model.Event) {
	v.day = model.DayStart(day)
	index, skipped := model.IndexEvents(events)
	for _, e := range skipped {
		log.Printf("skipping event %d %q: invalid time range %s to %s", e.ID, e.Description,
			e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
	}
	v.index = index

	v.placed = v.index.Placements()
	if v.selected >= 0 {
		v.Select(v.selected)
	}
}

// Day returns the day shown
func (v *EventView) Day() time.Time {
	return v.day
}

// Index returns the overlap index of the day
func (v *EventView) Index() *interval.Index[model.Event] {
	return v.index
}

// Len returns the number of events shown
func (v *EventView) Len() int {
	return len(v.placed)
}

// Events returns the events in display order: by start, then end
func (v *EventView) Events() []model.Event {
	out := make([]model.Event, len(v.placed))
	for i, p := range v.placed {
		out[i] = p.Label
	}
	return out
}

// Select selects the i-th event in display order, clamped to the valid
// range. Selecting in an empty view clears the selection.
func (v *EventView) Select(i int) {
	if len(v.placed) == 0 {
		v.selected = -1
		return
	}
	v.selected = max(0, min(i, len(v.placed)-1))
}

// SelectNext moves the selection to the next event
func (v *EventView) SelectNext() {
	v.Select(v.selected + 1)
}

// SelectPrev moves the selection to the previous event
func (v *EventView) SelectPrev() {
	v.Select(v.selected - 1)
}

// ClearSelection removes the selection
func (v *EventView) ClearSelection() {
	v.selected = -1
}

// SelectedIndex returns the selected position, -1 when nothing is selected
func (v *EventView) SelectedIndex() int {
	return v.selected
}

// Selected returns the selected event
func (v *EventView) Selected() (model.Event, bool) {
	if v.selected < 0 || v.selected >= len(v.placed) {
		return model.Event{}, false
	}
	return v.placed[v.selected].Label, true
}

// VisibleHours returns the hour range drawn: the configured hours widened
// to include every event
func (v *EventView) VisibleHours() (start, end int) {
	start, end = v.startHour, v.endHour
	for _, p := range v.placed {
		start = min(start, p.Start.Hour())
		endHour := 24
		if model.SameDay(p.End, v.day) {
			endHour = p.End.Hour()
			if p.End.Minute() > 0 || p.End.Second() > 0 {
				endHour++
			}
		}
		end = max(end, endHour)
	}
	return start, end
}

// Layout computes the slot of every event inside r. The first gutterWidth
// columns are left for hour marks. Columns are split into OverlapDegree
// lanes of near equal width; rows map linearly to the visible hours. When
// there are more lanes than columns, neighbouring lanes share a column so
// that every slot stays inside r.
func (v *EventView) Layout(r Rect) []Slot {
	if len(v.placed) == 0 || r.W <= gutterWidth || r.H <= 0 {
		return nil
	}

	startHour, endHour := v.VisibleHours()
	lanes := v.index.OverlapDegree()
	areaX := r.X + gutterWidth
	areaW := r.W - gutterWidth
	bottomRow := r.Y + r.H

	slots := make([]Slot, 0, len(v.placed))
	for _, p := range v.placed {
		top := v.row(p.Start, r, startHour, endHour)
		bottom := v.row(p.End, r, startHour, endHour)
		top = min(top, bottomRow-1)
		bottom = max(bottom, top+1)

		x, w := areaX, areaW
		if p.HasOverlaps {
			x = areaX + p.Lane*areaW/lanes
			w = max(1, areaX+(p.Lane+1)*areaW/lanes-x)
		}

		slots = append(slots, Slot{
			Event:       p.Label,
			Rect:        Rect{X: x, Y: top, W: w, H: bottom - top},
			Lane:        p.Lane,
			Lanes:       lanes,
			HasOverlaps: p.HasOverlaps,
		})
	}
	return slots
}

// row maps an instant to a screen row of r
func (v *EventView) row(t time.Time, r Rect, startHour, endHour int) int {
	first := v.hour(startHour)
	total := v.hour(endHour).Sub(first)
	if total <= 0 {
		return r.Y
	}
	offset := t.Sub(first)
	offset = max(0, min(offset, total))
	return r.Y + int(int64(offset)*int64(r.H)/int64(total))
}

// hour returns the wall clock hour h of the shown day. Hour 24 is the next
// midnight.
func (v *EventView) hour(h int) time.Time {
	y, m, d := v.day.Date()
	return time.Date(y, m, d, h, 0, 0, 0, v.day.Location())
}

// SlotAt returns the index in display order of the event drawn at (x, y)
func (v *EventView) SlotAt(r Rect, x, y int) (int, bool) {
	for i, s := range v.Layout(r) {
		if s.Rect.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// Render draws the hour gutter, the events and, when now falls on the shown
// day, a marker at the current time
func (v *EventView) Render(screen *Screen, r Rect, now time.Time) {
	screen.Fill(r, ' ', screen.BackgroundStyle())

	title := v.day.Format("Monday 2 January 2006")
	if degree := v.index.OverlapDegree(); degree > 1 {
		title += fmt.Sprintf("  (%d events, %d lanes)", v.Len(), degree)
	} else if v.Len() > 0 {
		title += fmt.Sprintf("  (%d events)", v.Len())
	}
	screen.DrawStringLimited(r.X, r.Y, title, r.W, screen.HeaderStyle())

	body := Rect{X: r.X, Y: r.Y + 1, W: r.W, H: r.H - 1}
	if body.H <= 0 {
		return
	}

	startHour, endHour := v.VisibleHours()
	hourMark := screen.EventHourMarkStyle()
	for h := startHour; h < endHour; h++ {
		y := v.row(v.hour(h), body, startHour, endHour)
		screen.DrawString(body.X, y, fmt.Sprintf("%02d:00", h), hourMark)
		for x := body.X + gutterWidth; x < body.X+body.W; x++ {
			screen.SetCell(x, y, '┈', hourMark)
		}
	}

	slots := v.Layout(body)
	palette := screen.Theme.LanePalette(v.index.OverlapDegree())
	for i, s := range slots {
		style := screen.EventStyle(palette[s.Lane])
		if i == v.selected {
			style = screen.EventSelectedStyle()
		}

		// One column gap between lanes
		box := s.Rect
		if s.HasOverlaps && s.Lane < s.Lanes-1 && box.W > 1 {
			box.W--
		}
		screen.Fill(box, ' ', style)
		if box.H > 1 {
			screen.DrawStringLimited(box.X, box.Y, s.Event.Clock(), box.W, style)
			screen.DrawStringLimited(box.X, box.Y+1, s.Event.Description, box.W, style)
		} else {
			screen.DrawString(box.X, box.Y, SlotLabel(s.Event.Clock(), s.Event.Description, box.W), style)
		}
	}

	if model.SameDay(now, v.day) {
		y := v.row(now, body, startHour, endHour)
		if y < body.Y+body.H {
			screen.DrawString(body.X, y, now.Format(model.ClockFormat), screen.EventNowLineStyle())
		}
	}

	if len(slots) == 0 {
		screen.DrawStringLimited(body.X+gutterWidth, body.Y, "No events. Press 'a' to add one.", body.W-gutterWidth, hourMark)
	}
}
