// Package model contains the calendar event model
package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/interval"
)

const (
	// DateFormat is the layout used for dates in forms, keys and the CLI
	DateFormat = "2006-01-02"
	// ClockFormat is the layout used for times of day
	ClockFormat = "15:04"

	keyFormat = "2006-01-02 15:04:05"
)

var (
	ErrEmptyDescription = errors.New("event description is empty")
	ErrMultiDay         = errors.New("event spans midnight")
	ErrBadKey           = errors.New("malformed event key")
)

// Event is a single calendar entry on one day
type Event struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// NewEvent validates and creates an event without an ID.
// The end may be exactly the following midnight but not later.
func NewEvent(description string, start, end time.Time) (Event, error) {
	if _, err := interval.New(start, end); err != nil {
		return Event{}, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return Event{}, ErrEmptyDescription
	}

	if end.After(DayStart(start).AddDate(0, 0, 1)) {
		return Event{}, fmt.Errorf("%w: %s ends on %s", ErrMultiDay,
			start.Format(DateFormat), end.Format(DateFormat))
	}

	return Event{Description: description, Start: start, End: end}, nil
}

// ParseEvent builds an event from form fields: a date (2006-01-02) and two
// clock times (15:04). "24:00" is accepted as an end time.
func ParseEvent(date, startClock, endClock, description string, loc *time.Location) (Event, error) {
	day, err := time.ParseInLocation(DateFormat, strings.TrimSpace(date), loc)
	if err != nil {
		return Event{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	start, err := ParseClock(day, startClock)
	if err != nil {
		return Event{}, err
	}
	end, err := ParseClock(day, endClock)
	if err != nil {
		return Event{}, err
	}

	return NewEvent(description, start, end)
}

// ParseClock returns the instant at the given time of day on day
func ParseClock(day time.Time, clock string) (time.Time, error) {
	clock = strings.TrimSpace(clock)
	if clock == "24:00" {
		return DayStart(day).AddDate(0, 0, 1), nil
	}

	t, err := time.Parse(ClockFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// DayStart returns midnight at the beginning of t's day
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Interval returns the event's time range, validating it again since events
// may come from a hand-edited file.
func (e Event) Interval() (interval.Interval, error) {
	return interval.New(e.Start, e.End)
}

// Date returns the day the event starts on
func (e Event) Date() time.Time {
	return DayStart(e.Start)
}

// OnDate reports whether the event starts on the given day
func (e Event) OnDate(day time.Time) bool {
	return SameDay(e.Start, day)
}

// Key serializes the event's time range as "start|end"
func (e Event) Key() string {
	return e.Start.Format(keyFormat) + "|" + e.End.Format(keyFormat)
}

// ParseKey reverses Key
func ParseKey(key string, loc *time.Location) (start, end time.Time, err error) {
	startStr, endStr, ok := strings.Cut(key, "|")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrBadKey, key)
	}

	start, err = time.ParseInLocation(keyFormat, startStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrBadKey, err)
	}
	end, err = time.ParseInLocation(keyFormat, endStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrBadKey, err)
	}
	return start, end, nil
}

// Clock returns "15:04-16:00". A next-midnight end is shown as 24:00.
func (e Event) Clock() string {
	return e.Start.Format(ClockFormat) + "-" + e.EndClock()
}

// EndClock formats the end time, using "24:00" for an end at the next
// midnight
func (e Event) EndClock() string {
	if !SameDay(e.Start, e.End) {
		return "24:00"
	}
	return e.End.Format(ClockFormat)
}

func (e Event) String() string {
	return e.Clock() + " " + e.Description
}

// Compare orders events by start, end and then ID
func Compare(a, b Event) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}
	if c := a.End.Compare(b.End); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// Sort sorts events in place with Compare
func Sort(events []Event) {
	slices.SortStableFunc(events, Compare)
}

// IndexEvents adds events to a new overlap index. Events with an invalid
// time range are returned in skipped instead.
func IndexEvents(events []Event) (index *interval.Index[Event], skipped []Event) {
	index = interval.NewIndex[Event]()
	for _, e := range events {
		iv, err := e.Interval()
		if err != nil {
			skipped = append(skipped, e)
			continue
		}
		index.Add(iv, e)
	}
	return index, skipped
}
