package history

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// MaxEntries is the number of entries kept per history file
const MaxEntries = 100

// Manager handles loading and saving history to TOML files
type Manager struct {
	historyDir string
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager in $XDG_DATA_HOME/rayday/history,
// falling back to ~/.local/share/rayday/history
func NewManager() (*Manager, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return NewManagerAt(filepath.Join(dataDir, "rayday", "history"))
}

// NewManagerAt creates a history manager that stores files in historyDir
func NewManagerAt(historyDir string) (*Manager, error) {
	if err := os.MkdirAll(historyDir, 0755); err != nil {
		return nil, err
	}

	return &Manager{
		historyDir: historyDir,
	}, nil
}

// Load loads history entries from a TOML file
func (m *Manager) Load(filename string) ([]string, error) {
	filePath := filepath.Join(m.historyDir, filename)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		// A corrupted history file is not worth failing over
		log.Printf("ignoring corrupted history file %s: %v", filePath, err)
		return []string{}, nil
	}

	return histFile.Entries, nil
}

// Save saves the newest MaxEntries history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	filePath := filepath.Join(m.historyDir, filename)

	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return err
	}

	return os.WriteFile(filePath, data, 0644)
}
