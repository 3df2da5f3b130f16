// Package storage persists calendar events
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var (
	ErrNotFound       = errors.New("event not found")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Store is the event source used by the calendar views and the CLI
type Store interface {
	// Add validates and stores the event, setting its ID
	Add(e *model.Event) error
	Remove(id int64) error
	Get(id int64) (model.Event, error)
	// Between returns the events starting in [from, to), sorted
	Between(from, to time.Time) ([]model.Event, error)
	All() ([]model.Event, error)
	Close() error
}

// Reloader is implemented by stores that cache events in memory
type Reloader interface {
	Reload() error
}

// Open opens the store for the given backend. An empty path selects the
// default location for that backend.
func Open(backend, path string) (Store, error) {
	if backend == "" {
		backend = BackendJSON
	}

	if path == "" {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	} else {
		p, err := expandHome(path)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch backend {
	case BackendJSON:
		return NewJSONStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// EventsOn returns the events starting on the given day
func EventsOn(s Store, day time.Time) ([]model.Event, error) {
	start := model.DayStart(day)
	return s.Between(start, start.AddDate(0, 0, 1))
}

// DataDir returns $XDG_DATA_HOME/rayday, falling back to ~/.local/share/rayday
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "rayday"), nil
}

// DefaultPath returns the default data file for a backend
func DefaultPath(backend string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}

	switch backend {
	case BackendSQLite:
		return filepath.Join(dir, "events.db"), nil
	default:
		return filepath.Join(dir, "events.json"), nil
	}
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// normalize rejects events that could not have been created with
// model.NewEvent so an invalid interval is never persisted
func normalize(e *model.Event) error {
	v, err := model.NewEvent(e.Description, e.Start, e.End)
	if err != nil {
		return err
	}
	e.Description = v.Description
	return nil
}
