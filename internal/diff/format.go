package diff

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/rayday/internal/model"
)

// BuildDiffLines converts a DiffResult into formatted display lines.
// This is suitable for both CLI and TUI output.
func BuildDiffLines(result *DiffResult) []DiffLine {
	var lines []DiffLine

	if len(result.NewEvents) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeNewSection, Content: "New Events:"})
		for _, e := range result.NewEvents {
			lines = append(lines, DiffLine{Type: DiffTypeNewEvent, Content: eventLine(e), Indent: 1})
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	if len(result.DeletedEvents) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeDeletedSection, Content: "Deleted Events:"})
		for _, e := range result.DeletedEvents {
			lines = append(lines, DiffLine{Type: DiffTypeDeletedEvent, Content: eventLine(e), Indent: 1})
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	if len(result.ModifiedEvents) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeModifiedSection, Content: "Modified Events:"})
		for _, change := range result.ModifiedEvents {
			lines = append(lines, formatModifiedEvent(change)...)
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	if result.IsEmpty() {
		lines = append(lines, DiffLine{Type: DiffTypeSummary, Content: "No changes"})
		return lines
	}

	lines = append(lines, DiffLine{Type: DiffTypeSummary, Content: Summary(result)})
	return lines
}

// Summary returns a one-line count of the changes
func Summary(result *DiffResult) string {
	return fmt.Sprintf("%d modified, %d added, %d deleted",
		len(result.ModifiedEvents), len(result.NewEvents), len(result.DeletedEvents))
}

// FormatLine renders a line with its indent and a +/-/~ marker, for plain
// text output
func FormatLine(line DiffLine) string {
	marker := ""
	switch line.Type {
	case DiffTypeNewEvent:
		marker = "+ "
	case DiffTypeDeletedEvent:
		marker = "- "
	case DiffTypeModifiedEvent:
		marker = "~ "
	}
	return strings.Repeat("  ", line.Indent) + marker + line.Content
}

func formatModifiedEvent(change EventChange) []DiffLine {
	lines := []DiffLine{{
		Type:    DiffTypeModifiedEvent,
		Content: eventLine(change.Event),
		Indent:  1,
	}}

	if change.DescriptionChanged {
		lines = append(lines, DiffLine{
			Type: DiffTypeEventDetail,
			Content: fmt.Sprintf("DESCRIPTION: %s → %s",
				truncateText(change.OldEvent.Description, 40),
				truncateText(change.Event.Description, 40)),
			Indent: 2,
		})
	}
	if change.TimeChanged {
		lines = append(lines, DiffLine{
			Type: DiffTypeEventDetail,
			Content: fmt.Sprintf("TIME: %s %s → %s %s",
				change.OldEvent.Start.Format(model.DateFormat), change.OldEvent.Clock(),
				change.Event.Start.Format(model.DateFormat), change.Event.Clock()),
			Indent: 2,
		})
	}
	return lines
}

func eventLine(e model.Event) string {
	return fmt.Sprintf("%d: %s %s %s", e.ID, e.Start.Format(model.DateFormat), e.Clock(),
		truncateText(e.Description, 60))
}

// truncateText shortens text to maxLen runes, adding "..." when cut
func truncateText(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
