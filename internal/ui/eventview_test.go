package ui

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2023, time.July, 18, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return testDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func event(t *testing.T, id int64, desc string, start, end time.Time) model.Event {
	t.Helper()
	e, err := model.NewEvent(desc, start, end)
	require.NoError(t, err)
	e.ID = id
	return e
}

// dayEvents has two overlapping events in the morning and a lone one after
// lunch
func dayEvents(t *testing.T) []model.Event {
	return []model.Event{
		event(t, 3, "Review", at(14, 0), at(15, 0)),
		event(t, 2, "Planning", at(10, 0), at(12, 0)),
		event(t, 1, "Standup", at(9, 0), at(11, 0)),
	}
}

func TestEventView_LayoutSplitsOverlapsIntoLanes(t *testing.T) {
	v := NewEventView(8, 20)
	v.SetDay(testDay, dayEvents(t))

	// 40 columns after the gutter, 24 rows for 12 hours
	slots := v.Layout(Rect{X: 0, Y: 0, W: 46, H: 24})
	require.Len(t, slots, 3)

	assert.Equal(t, "Standup", slots[0].Event.Description)
	assert.Equal(t, Rect{X: 6, Y: 2, W: 20, H: 4}, slots[0].Rect)
	assert.True(t, slots[0].HasOverlaps)

	assert.Equal(t, "Planning", slots[1].Event.Description)
	assert.Equal(t, Rect{X: 26, Y: 4, W: 20, H: 4}, slots[1].Rect)
	assert.Equal(t, 1, slots[1].Lane)
	assert.Equal(t, 2, slots[1].Lanes)

	assert.Equal(t, "Review", slots[2].Event.Description)
	assert.False(t, slots[2].HasOverlaps)
	assert.Equal(t, Rect{X: 6, Y: 12, W: 40, H: 2}, slots[2].Rect, "a lone event spans every lane")
}

func TestEventView_LastLaneTakesRemainder(t *testing.T) {
	v := NewEventView(8, 20)
	v.SetDay(testDay, []model.Event{
		event(t, 1, "a", at(9, 0), at(10, 0)),
		event(t, 2, "b", at(9, 0), at(10, 0)),
		event(t, 3, "c", at(9, 0), at(10, 0)),
	})

	slots := v.Layout(Rect{W: 6 + 10, H: 12})
	require.Len(t, slots, 3)
	assert.Equal(t, 3, slots[0].Rect.W)
	assert.Equal(t, 3, slots[1].Rect.W)
	assert.Equal(t, 4, slots[2].Rect.W)
	assert.Equal(t, 6+10, slots[2].Rect.X+slots[2].Rect.W)
}

func TestEventView_MoreLanesThanColumns(t *testing.T) {
	v := NewEventView(8, 20)
	var events []model.Event
	for i := range 6 {
		events = append(events, event(t, int64(i+1), "Sync", at(9, 0), at(10, 0)))
	}
	v.SetDay(testDay, events)

	r := Rect{X: 2, Y: 1, W: gutterWidth + 4, H: 20}
	slots := v.Layout(r)
	require.Len(t, slots, 6)
	for _, s := range slots {
		assert.GreaterOrEqual(t, s.Rect.W, 1, "lane %d", s.Lane)
		assert.GreaterOrEqual(t, s.Rect.X, r.X+gutterWidth, "lane %d", s.Lane)
		assert.LessOrEqual(t, s.Rect.X+s.Rect.W, r.X+r.W, "lane %d", s.Lane)
		assert.True(t, r.Contains(s.Rect.X, s.Rect.Y), "lane %d", s.Lane)
	}

	// Every lane can still be picked with the mouse
	for _, s := range slots {
		i, ok := v.SlotAt(r, s.Rect.X, s.Rect.Y)
		require.True(t, ok, "lane %d", s.Lane)
		assert.Equal(t, s.Rect.X, slots[i].Rect.X)
	}
}

func TestEventView_EventAtEndOfVisibleHoursStaysInside(t *testing.T) {
	v := NewEventView(0, 24)
	v.SetDay(testDay, []model.Event{event(t, 1, "Late", at(23, 59), at(24, 0))})

	r := Rect{W: 40, H: 12}
	slots := v.Layout(r)
	require.Len(t, slots, 1)
	assert.Equal(t, 11, slots[0].Rect.Y)
	assert.Equal(t, 1, slots[0].Rect.H)
}

func TestEventView_HoursFollowWallClockOnDSTChange(t *testing.T) {
	amsterdam, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	// Clocks moved from 02:00 to 03:00 on this day
	day := time.Date(2023, time.March, 26, 0, 0, 0, 0, amsterdam)
	start := time.Date(2023, time.March, 26, 10, 0, 0, 0, amsterdam)
	e, err := model.NewEvent("Brunch", start, start.Add(time.Hour))
	require.NoError(t, err)

	v := NewEventView(8, 20)
	v.SetDay(day, []model.Event{e})

	// 12 hours on 24 rows, so 10:00 is two hours below the top
	slots := v.Layout(Rect{W: 46, H: 24})
	require.Len(t, slots, 1)
	assert.Equal(t, 4, slots[0].Rect.Y)
	assert.Equal(t, 2, slots[0].Rect.H)

	screen := newTestScreen(t)
	v.Render(screen, Rect{W: 80, H: 25}, testDay)
	assert.True(t, strings.HasPrefix(rowText(screen, 1+4), "10:00"), "hour mark on the event's row")
}

func TestEventView_ShortEventsGetOneRow(t *testing.T) {
	v := NewEventView(0, 24)
	v.SetDay(testDay, []model.Event{event(t, 1, "Coffee", at(9, 0), at(9, 5))})

	slots := v.Layout(Rect{W: 40, H: 24})
	require.Len(t, slots, 1)
	assert.Equal(t, 9, slots[0].Rect.Y)
	assert.Equal(t, 1, slots[0].Rect.H)
}

func TestEventView_VisibleHoursWidenToEvents(t *testing.T) {
	v := NewEventView(8, 20)
	v.SetDay(testDay, nil)
	start, end := v.VisibleHours()
	assert.Equal(t, 8, start)
	assert.Equal(t, 20, end)

	v.SetDay(testDay, []model.Event{
		event(t, 1, "Early run", at(6, 30), at(7, 15)),
		event(t, 2, "Night shift", at(22, 0), at(24, 0)),
	})
	start, end = v.VisibleHours()
	assert.Equal(t, 6, start)
	assert.Equal(t, 24, end)

	v.SetDay(testDay, []model.Event{event(t, 1, "Dinner", at(19, 0), at(20, 30))})
	_, end = v.VisibleHours()
	assert.Equal(t, 21, end)
}

func TestEventView_SkipsInvalidEvents(t *testing.T) {
	v := NewEventView(8, 20)
	broken := model.Event{ID: 9, Description: "backwards", Start: at(11, 0), End: at(10, 0)}
	v.SetDay(testDay, append(dayEvents(t), broken))

	assert.Equal(t, 3, v.Len())
	for _, e := range v.Events() {
		assert.NotEqual(t, int64(9), e.ID)
	}
}

func TestEventView_Selection(t *testing.T) {
	v := NewEventView(8, 20)
	v.SetDay(testDay, dayEvents(t))

	_, ok := v.Selected()
	assert.False(t, ok)
	assert.Equal(t, -1, v.SelectedIndex())

	v.Select(0)
	v.SelectNext()
	e, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "Planning", e.Description)

	v.Select(10)
	assert.Equal(t, 2, v.SelectedIndex())
	v.SelectNext()
	assert.Equal(t, 2, v.SelectedIndex())
	v.Select(-4)
	assert.Equal(t, 0, v.SelectedIndex())
	v.SelectPrev()
	assert.Equal(t, 0, v.SelectedIndex())

	// Removing the selected last event clamps the selection
	v.Select(2)
	v.SetDay(testDay, dayEvents(t)[1:])
	assert.Equal(t, 1, v.SelectedIndex())

	v.SetDay(testDay, nil)
	assert.Equal(t, -1, v.SelectedIndex())

	v.SetDay(testDay, dayEvents(t))
	v.Select(1)
	v.ClearSelection()
	_, ok = v.Selected()
	assert.False(t, ok)
}

func TestEventView_SlotAt(t *testing.T) {
	v := NewEventView(8, 20)
	v.SetDay(testDay, dayEvents(t))
	r := Rect{W: 46, H: 24}

	i, ok := v.SlotAt(r, 30, 5)
	require.True(t, ok)
	assert.Equal(t, "Planning", v.Events()[i].Description)

	_, ok = v.SlotAt(r, 2, 5)
	assert.False(t, ok, "the gutter holds no events")
}

func TestEventView_Render(t *testing.T) {
	screen := newTestScreen(t)
	v := NewEventView(8, 20)
	v.SetDay(testDay, dayEvents(t))
	v.Select(2)

	v.Render(screen, Rect{X: 0, Y: 0, W: 80, H: 25}, at(14, 30))
	text := screenText(screen)

	assert.True(t, strings.HasPrefix(rowText(screen, 0), "Tuesday 18 July 2023  (3 events, 2 lanes)"))
	assert.Contains(t, text, "08:00")
	assert.Contains(t, text, "09:00-11:00")
	assert.Contains(t, text, "Planning")
	assert.Contains(t, text, "Review")
	assert.Contains(t, text, "14:30", "now marker")
}

func TestEventView_RenderEmptyDay(t *testing.T) {
	screen := newTestScreen(t)
	v := NewEventView(8, 20)
	v.SetDay(testDay, nil)

	v.Render(screen, Rect{W: 80, H: 25}, at(9, 0).AddDate(0, 0, 1))
	assert.Contains(t, screenText(screen), "No events. Press 'a' to add one.")
	assert.Equal(t, "Tuesday 18 July 2023", rowText(screen, 0))
}
