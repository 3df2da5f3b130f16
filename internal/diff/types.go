package diff

import "github.com/pstuifzand/rayday/internal/model"

// DiffResult contains the changes between two sets of events, matched by ID
type DiffResult struct {
	NewEvents      []model.Event
	DeletedEvents  []model.Event
	ModifiedEvents []EventChange
}

// EventChange describes what changed for an event
type EventChange struct {
	Event              model.Event
	OldEvent           model.Event
	DescriptionChanged bool
	TimeChanged        bool
}

// IsEmpty reports whether both sets hold the same events
func (r *DiffResult) IsEmpty() bool {
	return len(r.NewEvents) == 0 && len(r.DeletedEvents) == 0 && len(r.ModifiedEvents) == 0
}

// DiffLineType indicates the type of diff line for rendering
type DiffLineType int

const (
	DiffTypeHeader DiffLineType = iota
	DiffTypeNewSection
	DiffTypeDeletedSection
	DiffTypeModifiedSection
	DiffTypeNewEvent
	DiffTypeDeletedEvent
	DiffTypeModifiedEvent
	DiffTypeEventDetail
	DiffTypeSummary
	DiffTypeBlank
)

// DiffLine represents a rendered line in diff output
type DiffLine struct {
	Type    DiffLineType
	Content string
	Indent  int
}
