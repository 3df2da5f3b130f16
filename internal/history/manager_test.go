package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SaveLoad(t *testing.T) {
	m, err := NewManagerAt(filepath.Join(t.TempDir(), "history"))
	require.NoError(t, err)

	entries, err := m.Load("command.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, m.Save("command.toml", []string{"today", "goto 2023-07-18"}))

	entries, err = m.Load("command.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"today", "goto 2023-07-18"}, entries)
}

func TestManager_SaveKeepsNewest(t *testing.T) {
	m, err := NewManagerAt(t.TempDir())
	require.NoError(t, err)

	var entries []string
	for i := range MaxEntries + 5 {
		entries = append(entries, fmt.Sprint(i))
	}
	require.NoError(t, m.Save("search.toml", entries))

	loaded, err := m.Load("search.toml")
	require.NoError(t, err)
	require.Len(t, loaded, MaxEntries)
	assert.Equal(t, "5", loaded[0])
}

func TestManager_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManagerAt(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "command.toml"), []byte("entries = ["), 0644))

	entries, err := m.Load("command.toml")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewManager_UsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	_, err := NewManager()
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "rayday", "history"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
