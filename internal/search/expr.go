package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/rayday/internal/model"
)

// FilterExpr represents a filter expression that can match events
type FilterExpr interface {
	Matches(e model.Event) bool
	String() string // For debug output
}

// TextExpr matches events whose description contains the term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(ev model.Event) bool {
	return strings.Contains(strings.ToLower(ev.Description), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches events whose description fuzzy-matches the term (case-insensitive)
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(ev model.Event) bool {
	return fuzzy.MatchFold(e.term, ev.Description)
}

// Distance is the Levenshtein distance used to rank matches, -1 when the
// description does not match
func (e *FuzzyExpr) Distance(ev model.Event) int {
	return fuzzy.RankMatchFold(e.term, ev.Description)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches events whose description matches a regular expression
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(ev model.Event) bool {
	return e.re.MatchString(ev.Description)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// AlwaysMatchExpr matches all events (for empty queries)
type AlwaysMatchExpr struct{}

func NewAlwaysMatchExpr() *AlwaysMatchExpr {
	return &AlwaysMatchExpr{}
}

func (e *AlwaysMatchExpr) Matches(model.Event) bool {
	return true
}

func (e *AlwaysMatchExpr) String() string {
	return "always-match"
}

// AndExpr matches if both sub-expressions match
type AndExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(ev model.Event) bool {
	return e.left.Matches(ev) && e.right.Matches(ev)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("and(%s, %s)", e.left, e.right)
}

// OrExpr matches if either sub-expression matches
type OrExpr struct {
	left  FilterExpr
	right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(ev model.Event) bool {
	return e.left.Matches(ev) || e.right.Matches(ev)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("or(%s, %s)", e.left, e.right)
}

// NotExpr inverts a sub-expression
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(ev model.Event) bool {
	return !e.expr.Matches(ev)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("not(%s)", e.expr)
}

// DateFilter compares the day an event starts on
type DateFilter struct {
	op  ComparisonOp
	day time.Time
}

func NewDateFilter(op ComparisonOp, day time.Time) *DateFilter {
	return &DateFilter{op: op, day: model.DayStart(day)}
}

func (e *DateFilter) Matches(ev model.Event) bool {
	start := ev.Start.In(e.day.Location())
	return compare(e.op, model.DayStart(start).Compare(e.day))
}

func (e *DateFilter) String() string {
	return fmt.Sprintf("date(%s %s)", e.op, e.day.Format(model.DateFormat))
}

// TimeFilter compares the time of day an event starts at, in minutes
type TimeFilter struct {
	op      ComparisonOp
	minutes int
}

func NewTimeFilter(op ComparisonOp, minutes int) *TimeFilter {
	return &TimeFilter{op: op, minutes: minutes}
}

func (e *TimeFilter) Matches(ev model.Event) bool {
	m := ev.Start.Hour()*60 + ev.Start.Minute()
	return compare(e.op, m-e.minutes)
}

func (e *TimeFilter) String() string {
	return fmt.Sprintf("time(%s %02d:%02d)", e.op, e.minutes/60, e.minutes%60)
}

// LengthFilter compares event durations
type LengthFilter struct {
	op ComparisonOp
	d  time.Duration
}

func NewLengthFilter(op ComparisonOp, d time.Duration) *LengthFilter {
	return &LengthFilter{op: op, d: d}
}

func (e *LengthFilter) Matches(ev model.Event) bool {
	return compare(e.op, int(ev.End.Sub(ev.Start)-e.d))
}

func (e *LengthFilter) String() string {
	return fmt.Sprintf("len(%s %s)", e.op, e.d)
}

// compare applies op to the sign of c
func compare(op ComparisonOp, c int) bool {
	switch op {
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpGreater:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	case OpLess:
		return c < 0
	case OpLessEqual:
		return c <= 0
	}
	return false
}
