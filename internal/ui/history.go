package ui

import (
	"log"

	"github.com/pstuifzand/rayday/internal/history"
)

// History is the input history of a prompt, navigated with Up and Down
type History struct {
	entries      []string
	currentIndex int // -1 when not navigating
	maxEntries   int
	// temporaryInput is the unsent input, restored after the newest entry
	temporaryInput string
	manager        *history.Manager
	filename       string
}

// NewHistory creates an in-memory history
func NewHistory(maxEntries int) *History {
	return &History{
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewHistoryWithManager creates a history persisted in filename
func NewHistoryWithManager(maxEntries int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(maxEntries)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add appends an entry, skipping empty input and repeats of the newest
// entry, and saves the history when it is persisted
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry) {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	if err := h.Save(); err != nil {
		log.Printf("failed to save history %s: %v", h.filename, err)
	}
}

// Save persists the entries; a no-op for in-memory histories
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous returns the next older entry, stopping at the oldest
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.currentIndex < 0 {
		h.currentIndex = len(h.entries) - 1
	} else if h.currentIndex > 0 {
		h.currentIndex--
	}
	return h.entries[h.currentIndex], true
}

// Next returns the next newer entry. Moving past the newest entry returns
// the input saved with SetTemporary and ends navigation.
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}

	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		temp := h.temporaryInput
		h.Reset()
		return temp, true
	}
	return h.entries[h.currentIndex], true
}

// Reset ends navigation
func (h *History) Reset() {
	h.currentIndex = -1
	h.temporaryInput = ""
}

// SetTemporary stores the input typed before navigation started
func (h *History) SetTemporary(input string) {
	h.temporaryInput = input
}

// GetAll returns a copy of the entries, oldest first
func (h *History) GetAll() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating reports whether Up was pressed since the last reset
func (h *History) IsNavigating() bool {
	return h.currentIndex >= 0
}
