package import_parser

import (
	"testing"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describe(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Start.Format(model.DateFormat) + " " + e.String()
	}
	return out
}

func TestMarkdownParser(t *testing.T) {
	content := `# Agenda

- not an event, no day yet

# 2023-07-18 Tuesday

- 09:00-11:00 Standup
  - lane 1 of 2
* 10:00-12:00 Sprint planning
Some notes about the day

## 2023-07-19
- 22:00-24:00 Night shift
`
	events, err := ImportFile(content, FormatMarkdown, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2023-07-18 09:00-11:00 Standup",
		"2023-07-18 10:00-12:00 Sprint planning",
		"2023-07-19 22:00-24:00 Night shift",
	}, describe(events))
	assert.Equal(t, time.UTC, events[0].Start.Location())
}

func TestMarkdownParser_InvalidEvent(t *testing.T) {
	content := "# 2023-07-18\n\n- 09:00-11:00 Standup\n- 11:00-10:00 Backwards\n"

	_, err := ImportFile(content, FormatMarkdown, time.UTC)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Line)
	assert.Contains(t, err.Error(), "parse error (Markdown)")

	_, err = ImportFile("# 2023-07-18\n- Standup\n", FormatMarkdown, time.UTC)
	assert.ErrorContains(t, err, "expected HH:MM-HH:MM description")
}

func TestIndentedTextParser(t *testing.T) {
	content := `// week 29
2023-07-18
  09:00-09:15 Standup
	14:00-15:00 Review

2023-07-19 Wednesday
    08:00-09:00 Dentist
`
	events, err := ImportFile(content, FormatIndentedText, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2023-07-18 09:00-09:15 Standup",
		"2023-07-18 14:00-15:00 Review",
		"2023-07-19 08:00-09:00 Dentist",
	}, describe(events))
}

func TestIndentedTextParser_Errors(t *testing.T) {
	_, err := ImportFile("  09:00-10:00 Standup\n", FormatIndentedText, time.UTC)
	assert.ErrorIs(t, err, ErrNoDay)

	_, err = ImportFile("Tuesday\n  09:00-10:00 Standup\n", FormatIndentedText, time.UTC)
	assert.ErrorIs(t, err, ErrBadDay)

	_, err = ImportFile("2023-07-18\n  09:00-10:00\n", FormatIndentedText, time.UTC)
	assert.ErrorIs(t, err, model.ErrEmptyDescription)
}

func TestImportFile_UnknownFormat(t *testing.T) {
	_, err := ImportFile("", ImportFormat("ics"), time.UTC)
	assert.ErrorContains(t, err, "unsupported import format")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatMarkdown, DetectFormat("agenda.md"))
	assert.Equal(t, FormatMarkdown, DetectFormat("AGENDA.MARKDOWN"))
	assert.Equal(t, FormatIndentedText, DetectFormat("agenda.txt"))
	assert.Equal(t, FormatIndentedText, DetectFormat("agenda"))
}
