// Package search filters calendar events with a small query language:
//
//	lunch            description contains "lunch"
//	"team sync"      description contains the quoted phrase
//	~stndp           fuzzy match on the description
//	/^1:1 /          regular expression on the description
//	d:2023-07-18     starts on that day (also d:>=, d:<, ...)
//	t:>=12:00        starts at or after 12:00
//	len:>30m         lasts longer than 30 minutes
//
// Terms are combined with implicit AND, | for OR, - for NOT and parentheses.
package search

import (
	"slices"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// Events returns the events matching query. Results keep the input order,
// except that fuzzy terms rank closer matches first. An empty query matches
// nothing.
func Events(query string, events []model.Event) ([]model.Event, error) {
	return EventsIn(query, events, time.Local)
}

// EventsIn is Events with dates in the query read in loc
func EventsIn(query string, events []model.Event, loc *time.Location) ([]model.Event, error) {
	expr, err := ParseQueryIn(query, loc)
	if err != nil {
		return nil, err
	}
	if _, ok := expr.(*AlwaysMatchExpr); ok {
		return nil, nil
	}

	type ranked struct {
		event model.Event
		rank  int
	}

	fuzzyTerms := collectFuzzy(expr, nil)

	var matches []ranked
	for _, e := range events {
		if !expr.Matches(e) {
			continue
		}
		rank := 0
		for _, f := range fuzzyTerms {
			if d := f.Distance(e); d > 0 {
				rank += d
			}
		}
		matches = append(matches, ranked{event: e, rank: rank})
	}

	slices.SortStableFunc(matches, func(a, b ranked) int {
		return a.rank - b.rank
	})

	out := make([]model.Event, len(matches))
	for i, m := range matches {
		out[i] = m.event
	}
	return out, nil
}

// collectFuzzy returns the fuzzy terms that are not negated
func collectFuzzy(expr FilterExpr, acc []*FuzzyExpr) []*FuzzyExpr {
	switch e := expr.(type) {
	case *FuzzyExpr:
		return append(acc, e)
	case *AndExpr:
		return collectFuzzy(e.right, collectFuzzy(e.left, acc))
	case *OrExpr:
		return collectFuzzy(e.right, collectFuzzy(e.left, acc))
	}
	return acc
}
