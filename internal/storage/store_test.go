package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pstuifzand/rayday/internal/interval"
	"github.com/pstuifzand/rayday/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2023, time.July, 18, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func newEvent(t *testing.T, desc string, start, end time.Time) *model.Event {
	t.Helper()
	e, err := model.NewEvent(desc, start, end)
	require.NoError(t, err)
	return &e
}

// openers runs each test against both backends
var openers = map[string]func(t *testing.T, dir string) Store{
	BackendJSON: func(t *testing.T, dir string) Store {
		s, err := NewJSONStore(filepath.Join(dir, "events.json"))
		require.NoError(t, err)
		return s
	},
	BackendSQLite: func(t *testing.T, dir string) Store {
		s, err := NewSQLiteStore(filepath.Join(dir, "events.db"))
		require.NoError(t, err)
		return s.InLocation(time.UTC)
	},
}

func TestStore_AddGetRemove(t *testing.T) {
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			s := open(t, t.TempDir())
			defer s.Close()

			e := newEvent(t, "Lunch", clock(12, 0), clock(13, 0))
			require.NoError(t, s.Add(e))
			assert.NotZero(t, e.ID)

			got, err := s.Get(e.ID)
			require.NoError(t, err)
			assert.Equal(t, "Lunch", got.Description)
			assert.True(t, got.Start.Equal(e.Start))
			assert.True(t, got.End.Equal(e.End))

			require.NoError(t, s.Remove(e.ID))

			_, err = s.Get(e.ID)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, s.Remove(e.ID), ErrNotFound)
		})
	}
}

func TestStore_RejectsInvalidEvents(t *testing.T) {
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			s := open(t, t.TempDir())
			defer s.Close()

			err := s.Add(&model.Event{Description: "backwards", Start: clock(11, 0), End: clock(10, 0)})
			assert.ErrorIs(t, err, interval.ErrInvalidInterval)

			err = s.Add(&model.Event{Description: " ", Start: clock(10, 0), End: clock(11, 0)})
			assert.ErrorIs(t, err, model.ErrEmptyDescription)

			all, err := s.All()
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestStore_EventsOnSorted(t *testing.T) {
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			s := open(t, t.TempDir())
			defer s.Close()

			require.NoError(t, s.Add(newEvent(t, "late", clock(15, 0), clock(16, 0))))
			require.NoError(t, s.Add(newEvent(t, "long", clock(9, 0), clock(11, 0))))
			require.NoError(t, s.Add(newEvent(t, "short", clock(9, 0), clock(9, 30))))
			require.NoError(t, s.Add(newEvent(t, "tomorrow", clock(24+9, 0), clock(24+10, 0))))

			events, err := EventsOn(s, day)
			require.NoError(t, err)

			var got []string
			for _, e := range events {
				got = append(got, e.Description)
			}
			assert.Equal(t, []string{"short", "long", "late"}, got)

			all, err := s.All()
			require.NoError(t, err)
			assert.Len(t, all, 4)
			assert.Equal(t, "tomorrow", all[3].Description)
		})
	}
}

func TestStore_Reopen(t *testing.T) {
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()

			s := open(t, dir)
			first := newEvent(t, "first", clock(8, 0), clock(9, 0))
			require.NoError(t, s.Add(first))
			require.NoError(t, s.Close())

			s = open(t, dir)
			defer s.Close()

			second := newEvent(t, "second", clock(10, 0), clock(11, 0))
			require.NoError(t, s.Add(second))
			assert.Greater(t, second.ID, first.ID)

			all, err := s.All()
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "first", all[0].Description)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("csv", filepath.Join(t.TempDir(), "events.csv"))
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_DefaultPathUsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	s, err := Open(BackendSQLite, "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Add(newEvent(t, "x", clock(1, 0), clock(2, 0))))

	_, err = os.Stat(filepath.Join(dir, "rayday", "events.db"))
	assert.NoError(t, err)
}

func TestJSONStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0644))

	s, err := NewJSONStore(path)
	require.NoError(t, err)

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONStore(path)
	assert.ErrorContains(t, err, "failed to parse JSON")
}

func TestJSONStore_FailedAddLeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	s, err := NewJSONStore(path)
	require.NoError(t, err)

	// A regular file where the data directory should be makes the save fail
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	s.FilePath = filepath.Join(blocker, "events.json")

	e := newEvent(t, "Lunch", clock(12, 0), clock(13, 0))
	require.Error(t, s.Add(e))
	assert.Zero(t, e.ID)
	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	s.FilePath = path
	require.NoError(t, s.Add(e))
	assert.Equal(t, int64(1), e.ID, "the failed add did not use up an ID")
}

func TestJSONStore_NextIDRepairedFromEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	data := `{"next_id": 1, "events": [
		{"id": 7, "description": "kept", "start": "2023-07-18T10:00:00Z", "end": "2023-07-18T11:00:00Z"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := NewJSONStore(path)
	require.NoError(t, err)

	e := newEvent(t, "new", clock(12, 0), clock(13, 0))
	require.NoError(t, s.Add(e))
	assert.Equal(t, int64(8), e.ID)
}

func TestSQLiteStore_SchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)

	var version int
	require.NoError(t, s.conn.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, SchemaVersion, version)
	assert.Equal(t, path, s.Path())

	_, err = s.conn.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = NewSQLiteStore(path)
	assert.ErrorContains(t, err, "newer than supported")
}

func TestJSONStore_ReloadPicksUpOtherWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")

	tui, err := NewJSONStore(path)
	require.NoError(t, err)
	require.NoError(t, tui.Add(newEvent(t, "Standup", clock(9, 0), clock(9, 15))))

	cli, err := NewJSONStore(path)
	require.NoError(t, err)
	require.NoError(t, cli.Add(newEvent(t, "Review", clock(10, 0), clock(11, 0))))

	got, err := tui.All()
	require.NoError(t, err)
	assert.Len(t, got, 1)

	var r Reloader = tui
	require.NoError(t, r.Reload())

	got, err = tui.All()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Review", got[1].Description)
}
