// Package interval lays out time-bounded entries into lanes.
//
// Intervals are half-open [Start, End). Two intervals overlap when they
// share at least one instant, so intervals that merely touch
// (a.End == b.Start) do not overlap and may share a lane.
package interval

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval does not start strictly
// before it ends.
var ErrInvalidInterval = errors.New("invalid interval")

const clockFormat = "2006-01-02 15:04:05"

// Interval is a half-open time range [Start, End) with Start < End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New creates an interval, rejecting start >= end.
func New(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, start.Format(clockFormat), end.Format(clockFormat))
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the two intervals share at least one instant
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether t lies inside [Start, End)
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Duration returns End - Start
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Union returns the smallest interval covering both.
func (iv Interval) Union(other Interval) Interval {
	out := iv
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if other.End.After(out.End) {
		out.End = other.End
	}
	return out
}

// Compare orders intervals by start, then by end.
func (iv Interval) Compare(other Interval) int {
	if c := iv.Start.Compare(other.Start); c != 0 {
		return c
	}
	return iv.End.Compare(other.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(clockFormat), iv.End.Format(clockFormat))
}
