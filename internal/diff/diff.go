package diff

import (
	"github.com/pstuifzand/rayday/internal/model"
)

// ComputeDiff compares two event sets. Events are matched by ID; an event
// whose description or time range differs counts as modified.
func ComputeDiff(before, after []model.Event) *DiffResult {
	old := make(map[int64]model.Event, len(before))
	for _, e := range before {
		old[e.ID] = e
	}

	result := &DiffResult{}
	seen := make(map[int64]bool, len(after))
	for _, e := range after {
		seen[e.ID] = true
		prev, ok := old[e.ID]
		if !ok {
			result.NewEvents = append(result.NewEvents, e)
			continue
		}
		if change, changed := compareEvents(prev, e); changed {
			result.ModifiedEvents = append(result.ModifiedEvents, change)
		}
	}

	for _, e := range before {
		if !seen[e.ID] {
			result.DeletedEvents = append(result.DeletedEvents, e)
		}
	}

	model.Sort(result.NewEvents)
	model.Sort(result.DeletedEvents)
	return result
}

func compareEvents(old, new model.Event) (EventChange, bool) {
	change := EventChange{
		Event:              new,
		OldEvent:           old,
		DescriptionChanged: old.Description != new.Description,
		TimeChanged:        !old.Start.Equal(new.Start) || !old.End.Equal(new.End),
	}
	return change, change.DescriptionChanged || change.TimeChanged
}
