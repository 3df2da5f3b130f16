package ui

import (
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/rayday/internal/diff"
	"github.com/pstuifzand/rayday/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backupsOf returns a store with three events added one by one, which
// leaves two backups behind
func backupsOf(t *testing.T) (*storage.JSONStore, []storage.BackupMetadata) {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewJSONStore(filepath.Join(dir, "events.json"))
	require.NoError(t, err)
	bm, err := storage.EnableBackups(s, filepath.Join(dir, "backups"), 0)
	require.NoError(t, err)

	for _, e := range dayEvents(t) {
		e := e
		require.NoError(t, s.Add(&e))
	}

	backups, err := bm.List()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	return s, backups
}

func TestBackupSelector_NewestFirstWithDiff(t *testing.T) {
	s, backups := backupsOf(t)
	current, err := s.All()
	require.NoError(t, err)

	bs := NewBackupSelectorWidget()
	bs.Show(backups, current, nil, nil)
	require.True(t, bs.IsVisible())

	selected, ok := bs.Selected()
	require.True(t, ok)
	assert.Equal(t, backups[1], selected)

	// The newest backup holds two events; restoring it deletes the third
	var deleted []string
	for _, line := range bs.DiffLines() {
		if line.Type == diff.DiffTypeDeletedEvent {
			deleted = append(deleted, line.Content)
		}
	}
	assert.Len(t, deleted, 1)

	bs.HandleKeyEvent(runeKey('j'))
	selected, _ = bs.Selected()
	assert.Equal(t, backups[0], selected)

	bs.HandleKeyEvent(runeKey('j'))
	selected, _ = bs.Selected()
	assert.Equal(t, backups[0], selected, "moving past the oldest backup stays put")

	bs.HandleKeyEvent(runeKey('g'))
	selected, _ = bs.Selected()
	assert.Equal(t, backups[1], selected)
}

func TestBackupSelector_EnterRestoresEscCancels(t *testing.T) {
	s, backups := backupsOf(t)
	current, err := s.All()
	require.NoError(t, err)

	var restored []string
	cancelled := false
	bs := NewBackupSelectorWidget()
	bs.Show(backups, current, func(b storage.BackupMetadata) {
		restored = append(restored, b.Name())
	}, func() { cancelled = true })

	bs.HandleKeyEvent(key(tcell.KeyDown))
	bs.HandleKeyEvent(key(tcell.KeyEnter))
	assert.Equal(t, []string{backups[0].Name()}, restored)
	assert.False(t, bs.IsVisible())

	bs.Show(backups, current, nil, func() { cancelled = true })
	bs.HandleKeyEvent(key(tcell.KeyEscape))
	assert.True(t, cancelled)
	assert.False(t, bs.IsVisible())
}

func TestBackupSelector_ShowWithoutBackups(t *testing.T) {
	bs := NewBackupSelectorWidget()
	bs.Show(nil, nil, nil, nil)
	assert.False(t, bs.IsVisible())

	_, ok := bs.Selected()
	assert.False(t, ok)
}

func TestBackupSelector_Render(t *testing.T) {
	s, backups := backupsOf(t)
	current, err := s.All()
	require.NoError(t, err)

	screen := newTestScreen(t)
	bs := NewBackupSelectorWidget()
	bs.Render(screen)
	assert.NotContains(t, screenText(screen), "Backups (2)")

	bs.Show(backups, current, nil, nil)
	bs.Render(screen)

	text := screenText(screen)
	assert.Contains(t, text, "Backups (2)")
	assert.Contains(t, text, "> "+backups[1].Timestamp.Format("2006-01-02 15:04:05"))
	assert.Contains(t, text, "-1")
	assert.Contains(t, text, "Deleted Events:")
	assert.Contains(t, text, "0 modified, 0 added, 1 deleted")
}
