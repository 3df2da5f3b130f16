package import_parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// ImportFormat represents different file formats that can be imported
type ImportFormat string

const (
	FormatMarkdown     ImportFormat = "markdown"
	FormatIndentedText ImportFormat = "indented"
	FormatAuto         ImportFormat = "auto" // Auto-detect from extension
)

var (
	ErrNoDay  = errors.New("event before the first date")
	ErrBadDay = errors.New("expected a YYYY-MM-DD date")
)

// ParseError reports the line an import failed on
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser interface for different import formats
type Parser interface {
	Parse(content string, loc *time.Location) ([]model.Event, error)
	Name() string
}

// ImportFile parses an agenda and returns its events in file order.
// Dates and times are read in loc.
func ImportFile(content string, format ImportFormat, loc *time.Location) ([]model.Event, error) {
	var parser Parser

	switch format {
	case FormatMarkdown:
		parser = &MarkdownParser{}
	case FormatIndentedText:
		parser = &IndentedTextParser{}
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}

	events, err := parser.Parse(content, loc)
	if err != nil {
		return nil, fmt.Errorf("parse error (%s): %w", parser.Name(), err)
	}

	return events, nil
}

// DetectFormat detects the file format from its extension
func DetectFormat(filename string) ImportFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatIndentedText
	}
}

// parseDay reads a date from the first word of text, "2023-07-18 Tuesday"
func parseDay(text string, loc *time.Location) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(model.DateFormat, fields[0], loc)
	return day, err == nil
}

// parseEventLine reads "09:00-10:30 description" on day
func parseEventLine(day time.Time, text string) (model.Event, error) {
	clocks, description, _ := strings.Cut(strings.TrimSpace(text), " ")
	start, end, ok := strings.Cut(clocks, "-")
	if !ok {
		return model.Event{}, fmt.Errorf("expected HH:MM-HH:MM description")
	}
	return model.ParseEvent(day.Format(model.DateFormat), start, end, description, day.Location())
}
