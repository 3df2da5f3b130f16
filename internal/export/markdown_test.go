package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

func event(id int64, desc string, day, start, end string) model.Event {
	start0, _ := time.Parse("2006-01-02 15:04", day+" "+start)
	end0, _ := time.Parse("2006-01-02 15:04", day+" "+end)
	return model.Event{ID: id, Description: desc, Start: start0, End: end0}
}

func TestExportToMarkdown(t *testing.T) {
	events := []model.Event{
		event(1, "Standup", "2023-07-18", "09:00", "11:00"),
		event(2, "Planning", "2023-07-18", "10:00", "12:00"),
		event(3, "Review", "2023-07-18", "14:00", "15:00"),
		event(4, "Dentist", "2023-07-19", "08:00", "09:00"),
	}

	// Create a temporary file for output
	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "agenda.md")

	if err := ExportToMarkdown(events, outputFile); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	expected := `# 2023-07-18 Tuesday

- 09:00-11:00 Standup
  - lane 1 of 2
- 10:00-12:00 Planning
  - lane 2 of 2
- 14:00-15:00 Review

# 2023-07-19 Wednesday

- 08:00-09:00 Dentist
`

	if string(content) != expected {
		t.Errorf("Export output mismatch.\nExpected:\n%s\nGot:\n%s", expected, string(content))
	}
}

func TestExportToMarkdownEmpty(t *testing.T) {
	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "empty.md")

	if err := ExportToMarkdown(nil, outputFile); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	if string(content) != "" {
		t.Errorf("Expected empty output, got:\n%s", string(content))
	}
}

func TestExportToMarkdownMidnight(t *testing.T) {
	late := event(1, "Night shift", "2023-07-18", "22:00", "00:00")
	late.End = late.End.AddDate(0, 0, 1)

	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "late.md")
	if err := ExportToMarkdown([]model.Event{late}, outputFile); err != nil {
		t.Fatalf("ExportToMarkdown failed: %v", err)
	}

	content, _ := os.ReadFile(outputFile)
	expected := "# 2023-07-18 Tuesday\n\n- 22:00-24:00 Night shift\n"
	if string(content) != expected {
		t.Errorf("Expected %q, got %q", expected, string(content))
	}
}
