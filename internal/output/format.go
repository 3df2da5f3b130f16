// Package output formats event listings for the command line
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pstuifzand/rayday/internal/model"
	"gopkg.in/yaml.v3"
)

// Format specifies how rows are written
type Format int

const (
	FormatTable Format = iota
	FormatFields
	FormatJSON
	FormatJSONL
	FormatYAML
)

// Row is one listed event. The lane fields are filled in by day listings.
type Row struct {
	Event       model.Event
	Lane        int
	Lanes       int
	HasOverlaps bool
}

// DefaultFields are written when no --fields flag is given
var DefaultFields = []string{"id", "date", "time", "description"}

var knownFields = map[string]bool{
	"id":          true,
	"date":        true,
	"time":        true,
	"start":       true,
	"end":         true,
	"duration":    true,
	"description": true,
	"lane":        true,
	"lanes":       true,
	"overlaps":    true,
}

// ParseFormatFlag parses the --format flag
func ParseFormatFlag(flagValue string) (Format, error) {
	switch strings.ToLower(flagValue) {
	case "", "table":
		return FormatTable, nil
	case "fields":
		return FormatFields, nil
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return FormatTable, fmt.Errorf("invalid format: %s (valid options: table, fields, json, jsonl, yaml)", flagValue)
	}
}

// ParseFieldsFlag parses the --fields flag into a list of known field
// names; an empty flag selects DefaultFields
func ParseFieldsFlag(flagValue string) ([]string, error) {
	var fields []string
	for _, field := range strings.Split(flagValue, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		if !knownFields[field] {
			return nil, fmt.Errorf("unknown field: %s", field)
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return DefaultFields, nil
	}
	return fields, nil
}

// Write writes rows to w in the given format
func Write(w io.Writer, rows []Row, format Format, fields []string) error {
	if len(fields) == 0 {
		fields = DefaultFields
	}

	switch format {
	case FormatFields:
		return writeFields(w, rows, fields)
	case FormatJSON:
		return writeJSON(w, rows, fields)
	case FormatJSONL:
		return writeJSONL(w, rows, fields)
	case FormatYAML:
		return writeYAML(w, rows, fields)
	default:
		return writeTable(w, rows, fields)
	}
}

func writeTable(w io.Writer, rows []Row, fields []string) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	header := make(table.Row, len(fields))
	for i, field := range fields {
		header[i] = field
	}
	tbl.AppendHeader(header)

	for _, r := range rows {
		row := make(table.Row, len(fields))
		for i, field := range fields {
			row[i] = fieldValue(r, field)
		}
		tbl.AppendRow(row)
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d events", len(rows))})
	tbl.Render()
	return nil
}

// writeFields writes tab-separated values, one event per line
func writeFields(w io.Writer, rows []Row, fields []string) error {
	for _, r := range rows {
		values := make([]string, len(fields))
		for i, field := range fields {
			values[i] = fmt.Sprint(fieldValue(r, field))
		}
		if _, err := fmt.Fprintln(w, strings.Join(values, "\t")); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, rows []Row, fields []string) error {
	objects := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		objects = append(objects, rowObject(r, fields))
	}

	data, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeJSONL(w io.Writer, rows []Row, fields []string) error {
	enc := json.NewEncoder(w)
	for _, r := range rows {
		if err := enc.Encode(rowObject(r, fields)); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	}
	return nil
}

func writeYAML(w io.Writer, rows []Row, fields []string) error {
	objects := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		objects = append(objects, rowObject(r, fields))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(objects); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func rowObject(r Row, fields []string) map[string]any {
	obj := make(map[string]any, len(fields))
	for _, field := range fields {
		obj[field] = fieldValue(r, field)
	}
	return obj
}

func fieldValue(r Row, field string) any {
	e := r.Event
	switch field {
	case "id":
		return e.ID
	case "date":
		return e.Start.Format(model.DateFormat)
	case "time":
		return e.Clock()
	case "start":
		return e.Start.Format(model.ClockFormat)
	case "end":
		return e.EndClock()
	case "duration":
		return FormatDuration(e.End.Sub(e.Start))
	case "description":
		return e.Description
	case "lane":
		return r.Lane
	case "lanes":
		return r.Lanes
	case "overlaps":
		return r.HasOverlaps
	default:
		return ""
	}
}

// FormatDuration formats d as "1h30m", "45m" or "2h"
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h, m := int(d/time.Hour), int(d%time.Hour/time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
