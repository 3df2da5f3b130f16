package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/history"
	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/search"
)

// Search is the incremental `/` search over all events. Matches are kept
// after the prompt closes so n and N can step through them.
type Search struct {
	prompt     *CommandMode
	events     []model.Event
	query      string
	results    []model.Event
	current    int
	parseError string

	// Location is used for dates typed in queries
	Location *time.Location
}

// NewSearch creates a new Search without history persistence
func NewSearch() *Search {
	return &Search{prompt: NewCommandMode("/"), Location: time.Local}
}

// NewSearchWithHistory creates a Search whose queries are kept in
// search.toml
func NewSearchWithHistory(manager *history.Manager) *Search {
	return &Search{
		prompt:   NewCommandModeWithHistory("/", manager, "search.toml"),
		Location: time.Local,
	}
}

// Start opens the prompt to search events
func (s *Search) Start(events []model.Event) {
	s.events = events
	s.prompt.Start()
	s.updateResults()
}

// Stop closes the prompt, keeping the matches
func (s *Search) Stop() {
	s.prompt.Stop()
}

// IsActive returns whether the prompt is open
func (s *Search) IsActive() bool {
	return s.prompt.IsActive()
}

// GetHistory returns the search history
func (s *Search) GetHistory() []string {
	return s.prompt.History().GetAll()
}

// HandleKey edits the query and updates the matches as the user types.
// done reports that the prompt closed; found is true when it closed with
// Enter and there is something to jump to.
func (s *Search) HandleKey(ev *tcell.EventKey) (done, found bool) {
	if !s.IsActive() {
		return false, false
	}

	_, done = s.prompt.HandleKey(ev)
	if done && ev.Key() != tcell.KeyEnter {
		s.Clear()
		return true, false
	}

	s.updateResults()
	return done, done && len(s.results) > 0
}

func (s *Search) updateResults() {
	s.query = s.prompt.GetInput()
	s.current = 0
	s.parseError = ""

	results, err := search.EventsIn(s.query, s.events, s.Location)
	if err != nil {
		s.parseError = err.Error()
		s.results = nil
		return
	}
	s.results = results
}

// Clear forgets the query and its matches
func (s *Search) Clear() {
	s.query = ""
	s.results = nil
	s.current = 0
	s.parseError = ""
}

// GetQuery returns the current search query
func (s *Search) GetQuery() string {
	return s.query
}

// GetResults returns the matching events, best match first
func (s *Search) GetResults() []model.Event {
	return s.results
}

// NextMatch moves to the next match, wrapping around
func (s *Search) NextMatch() bool {
	if len(s.results) == 0 {
		return false
	}
	s.current = (s.current + 1) % len(s.results)
	return true
}

// PrevMatch moves to the previous match, wrapping around
func (s *Search) PrevMatch() bool {
	if len(s.results) == 0 {
		return false
	}
	s.current = (s.current - 1 + len(s.results)) % len(s.results)
	return true
}

// GetCurrentMatch returns the match the cursor is on
func (s *Search) GetCurrentMatch() (model.Event, bool) {
	if len(s.results) == 0 {
		return model.Event{}, false
	}
	return s.results[s.current], true
}

// GetMatchCount returns the number of matches
func (s *Search) GetMatchCount() int {
	return len(s.results)
}

// GetCurrentMatchNumber returns the current match number (1-based) or 0 if no matches
func (s *Search) GetCurrentMatchNumber() int {
	if len(s.results) == 0 {
		return 0
	}
	return s.current + 1
}

// GetParseError returns the last parse error, if any
func (s *Search) GetParseError() string {
	return s.parseError
}

// HasResults returns true if there are active search results
func (s *Search) HasResults() bool {
	return len(s.results) > 0
}

// Render draws the prompt and the match count on row y
func (s *Search) Render(screen *Screen, y int) {
	if !s.IsActive() {
		return
	}
	s.prompt.Render(screen, y)

	var resultText string
	switch {
	case s.parseError != "":
		resultText = " (error: " + s.parseError + ")"
	case s.query == "":
		return
	case len(s.results) == 0:
		resultText = " (no matches)"
	default:
		resultText = fmt.Sprintf(" (%d of %d matches)", s.GetCurrentMatchNumber(), len(s.results))
	}
	if StringWidth(resultText) > screen.GetWidth()/2 {
		resultText = " (error: syntax)"
	}
	screen.DrawString(screen.GetWidth()-StringWidth(resultText), y, resultText, screen.SearchResultCountStyle())
}
