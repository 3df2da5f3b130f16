package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var day = time.Date(2023, time.July, 18, 0, 0, 0, 0, time.UTC)

func testRows(t *testing.T) []Row {
	t.Helper()
	standup, err := model.NewEvent("Standup", day.Add(9*time.Hour), day.Add(9*time.Hour+15*time.Minute))
	require.NoError(t, err)
	standup.ID = 1
	late, err := model.NewEvent("Late shift", day.Add(22*time.Hour), day.Add(24*time.Hour))
	require.NoError(t, err)
	late.ID = 2
	return []Row{
		{Event: standup, Lane: 0, Lanes: 2, HasOverlaps: true},
		{Event: late, Lane: 0, Lanes: 2},
	}
}

func TestParseFormatFlag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Format
		shouldErr bool
	}{
		{"default", "", FormatTable, false},
		{"table format", "table", FormatTable, false},
		{"fields format", "fields", FormatFields, false},
		{"json format", "json", FormatJSON, false},
		{"jsonl format", "jsonl", FormatJSONL, false},
		{"yaml format", "yaml", FormatYAML, false},
		{"case insensitive", "JSON", FormatJSON, false},
		{"invalid format", "xml", FormatTable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseFormatFlag(tt.input)
			if tt.shouldErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseFieldsFlag(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", DefaultFields},
		{"single field", "id", []string{"id"}},
		{"multiple fields", "id,start,end", []string{"id", "start", "end"}},
		{"fields with spaces", " id , Lane ", []string{"id", "lane"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseFieldsFlag(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := ParseFieldsFlag("id,colour")
	assert.ErrorContains(t, err, "unknown field: colour")
}

func TestWriteFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRows(t), FormatFields, []string{"id", "start", "end", "duration", "description"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1\t09:00\t09:15\t15m\tStandup", lines[0])
	assert.Equal(t, "2\t22:00\t24:00\t2h\tLate shift", lines[1])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRows(t), FormatTable, nil))

	out := buf.String()
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "09:00-09:15")
	assert.Contains(t, out, "Late shift")
	assert.Contains(t, strings.ToLower(out), "total: 2 events")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRows(t), FormatJSON, []string{"id", "lane", "overlaps"}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, float64(1), got[0]["id"])
	assert.Equal(t, true, got[0]["overlaps"])
	assert.Equal(t, false, got[1]["overlaps"])
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRows(t), FormatJSONL, []string{"description"}))

	assert.Equal(t, "{\"description\":\"Standup\"}\n{\"description\":\"Late shift\"}\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testRows(t), FormatYAML, []string{"date", "time"}))

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]string{
		{"date": "2023-07-18", "time": "09:00-09:15"},
		{"date": "2023-07-18", "time": "22:00-24:00"},
	}, got)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h", FormatDuration(2*time.Hour))
	assert.Equal(t, "1h30m", FormatDuration(90*time.Minute))
	assert.Equal(t, "0m", FormatDuration(0))
}
