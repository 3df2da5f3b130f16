package import_parser

import (
	"bufio"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// MarkdownParser imports markdown agendas: a "# 2023-07-18" heading per day
// and a top level bullet per event. Nested bullets, other text and bullets
// under headings without a date are skipped.
type MarkdownParser struct{}

func (p *MarkdownParser) Name() string {
	return "Markdown"
}

// Parse converts markdown content to events
func (p *MarkdownParser) Parse(content string, loc *time.Location) ([]model.Event, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	var events []model.Event
	var day time.Time
	lineNo := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		// Skip empty lines
		if strings.TrimSpace(line) == "" {
			continue
		}

		// A heading starting with a date opens that day, other headings
		// close it
		if strings.HasPrefix(line, "#") {
			if level, text := parseHeader(line); level >= 0 {
				day, _ = parseDay(text, loc)
				continue
			}
		}

		listLevel, text := parseListItem(line)
		if listLevel != 0 || day.IsZero() {
			continue
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

// parseHeader extracts level and text from markdown header
func parseHeader(line string) (level int, text string) {
	level = 0
	for i := 0; i < len(line) && line[i] == '#'; i++ {
		level++
	}

	if level == 0 || level > len(line) {
		return -1, ""
	}

	text = strings.TrimSpace(line[level:])
	return level - 1, text // Convert to 0-based level
}

// parseListItem extracts indentation level and text from list item
func parseListItem(line string) (level int, text string) {
	indent := getIndent(line)
	trimmed := strings.TrimSpace(line)

	// Check for list markers
	if len(trimmed) > 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		text = strings.TrimSpace(trimmed[2:])
		level = indent / 2 // 2 spaces per level
		return level, text
	}

	return -1, ""
}
