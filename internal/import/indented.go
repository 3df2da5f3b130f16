package import_parser

import (
	"bufio"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// IndentedTextParser imports plain text agendas: a date on an unindented
// line and the day's events indented below it
//
//	2023-07-18
//	  09:00-09:15 Standup
//	  14:00-15:00 Review
type IndentedTextParser struct{}

func (p *IndentedTextParser) Name() string {
	return "Indented Text"
}

// Parse converts indented text to events
func (p *IndentedTextParser) Parse(content string, loc *time.Location) ([]model.Event, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var events []model.Event
	var day time.Time
	lineNo := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		text := strings.TrimSpace(line)
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}

		if getIndent(line) == 0 {
			d, ok := parseDay(text, loc)
			if !ok {
				return nil, &ParseError{Line: lineNo, Text: line, Err: ErrBadDay}
			}
			day = d
			continue
		}

		if day.IsZero() {
			return nil, &ParseError{Line: lineNo, Text: line, Err: ErrNoDay}
		}
		e, err := parseEventLine(day, text)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		events = append(events, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// getIndent counts leading columns, a tab counting as two spaces
func getIndent(line string) int {
	indent := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			indent += 2
		} else if line[i] == ' ' {
			indent++
		} else {
			break
		}
	}
	return indent
}
