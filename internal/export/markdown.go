// Package export writes events to other formats
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pstuifzand/rayday/internal/model"
)

// ExportToMarkdown exports events to a markdown file with one heading per
// day and a bullet per event. The file can be read back with the markdown
// importer.
func ExportToMarkdown(events []model.Event, filePath string) error {
	var sb strings.Builder
	if err := WriteMarkdown(&sb, events); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}

	return nil
}

// WriteMarkdown writes the sorted events as a markdown agenda. Events that
// overlap others get a nested bullet naming their lane.
func WriteMarkdown(w io.Writer, events []model.Event) error {
	var sb strings.Builder

	for len(events) > 0 {
		n := 1
		for n < len(events) && model.SameDay(events[n].Start, events[0].Start) {
			n++
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		writeDay(&sb, events[:n])
		events = events[n:]
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeDay(sb *strings.Builder, events []model.Event) {
	day := events[0].Start
	fmt.Fprintf(sb, "# %s %s\n\n", day.Format(model.DateFormat), day.Weekday())

	index, _ := model.IndexEvents(events)
	lanes := make(map[int64]int, index.Len())
	for p := range index.All() {
		if p.HasOverlaps {
			lanes[p.Label.ID] = p.Lane + 1
		}
	}

	for _, e := range events {
		// Skip events without a description, the importer would reject them
		if strings.TrimSpace(e.Description) == "" {
			continue
		}

		sb.WriteString("- ")
		sb.WriteString(e.Clock())
		sb.WriteString(" ")
		sb.WriteString(e.Description)
		sb.WriteString("\n")

		if lane, ok := lanes[e.ID]; ok {
			fmt.Fprintf(sb, "  - lane %d of %d\n", lane, index.OverlapDegree())
		}
	}
}
