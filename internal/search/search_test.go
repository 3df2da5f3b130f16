package search

import (
	"testing"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2023, time.July, 18, 0, 0, 0, 0, time.UTC)

func ev(id int64, desc string, sh, sm, eh, em int) model.Event {
	return model.Event{
		ID:          id,
		Description: desc,
		Start:       day.Add(time.Duration(sh)*time.Hour + time.Duration(sm)*time.Minute),
		End:         day.Add(time.Duration(eh)*time.Hour + time.Duration(em)*time.Minute),
	}
}

var events = []model.Event{
	ev(1, "Standup", 9, 0, 9, 15),
	ev(2, "Lunch with Anna", 12, 0, 13, 0),
	ev(3, "Team sync", 14, 0, 15, 0),
	ev(4, "standup notes", 9, 15, 9, 30),
	{ID: 5, Description: "Dentist", Start: day.AddDate(0, 0, 1).Add(8 * time.Hour), End: day.AddDate(0, 0, 1).Add(9 * time.Hour)},
}

func ids(events []model.Event) []int64 {
	var out []int64
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func find(t *testing.T, query string) []int64 {
	t.Helper()
	got, err := EventsIn(query, events, time.UTC)
	require.NoError(t, err)
	return ids(got)
}

func TestEvents_EmptyQuery(t *testing.T) {
	assert.Empty(t, find(t, ""))
	assert.Empty(t, find(t, "   "))
}

func TestEvents_Text(t *testing.T) {
	assert.Equal(t, []int64{1, 4}, find(t, "STANDUP"))
	assert.Equal(t, []int64{3}, find(t, `"team sync"`))
	assert.Empty(t, find(t, "retro"))
}

func TestEvents_Operators(t *testing.T) {
	assert.Equal(t, []int64{1}, find(t, "standup -notes"))
	assert.Equal(t, []int64{2, 3}, find(t, "lunch | sync"))
	assert.Equal(t, []int64{4}, find(t, "standup + notes"))
	assert.Equal(t, []int64{2, 3}, find(t, "(lunch | sync) -standup"))
}

func TestEvents_FuzzyRanksCloserMatchesFirst(t *testing.T) {
	// "standup notes" needs more edits than "Standup"
	assert.Equal(t, []int64{1, 4}, find(t, "~stndp"))

	reversed := []model.Event{events[3], events[0]}
	got, err := EventsIn("~stndp", reversed, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids(got))
}

func TestEvents_Regex(t *testing.T) {
	assert.Equal(t, []int64{1, 5}, find(t, "/^(S|D)/"))

	_, err := EventsIn("/([/", events, time.UTC)
	assert.ErrorContains(t, err, "invalid regex")
}

func TestEvents_Filters(t *testing.T) {
	assert.Equal(t, []int64{5}, find(t, "d:2023-07-19"))
	assert.Equal(t, []int64{1, 2, 3, 4}, find(t, "d:<2023-07-19"))
	assert.Equal(t, []int64{2, 3}, find(t, "t:>=12:00 d:2023-07-18"))
	assert.Equal(t, []int64{1, 4}, find(t, "len:<30m"))
	assert.Equal(t, []int64{2, 3, 5}, find(t, "len:=1h"))
}

func TestEvents_FilterErrors(t *testing.T) {
	for _, q := range []string{"d:tomorrow", "t:noon", "len:long", "d:>", "(lunch"} {
		_, err := EventsIn(q, events, time.UTC)
		assert.Error(t, err, q)
	}
}

func TestEvents_UnknownFilterIsText(t *testing.T) {
	got, err := EventsIn("x:y", []model.Event{ev(9, "ratio x:y", 1, 0, 2, 0)}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids(got))
}

func TestTokenizer(t *testing.T) {
	tokens := NewTokenizer(`-"a b" | ~fz /r+/ d:>=2023-01-01`).AllTokens()

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{TokenNot, TokenText, TokenOr, TokenFuzzy, TokenRegex, TokenFilter, TokenEOF}, types)
	assert.Equal(t, "d:>=2023-01-01", tokens[5].Value)
}

func TestParseQuery_String(t *testing.T) {
	expr, err := ParseQueryIn("lunch -~sync", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, `and(text("lunch"), not(fuzzy("sync")))`, expr.String())
}
