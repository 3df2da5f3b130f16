package cli

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
	"github.com/pstuifzand/rayday/internal/socket"
	"github.com/pstuifzand/rayday/internal/storage"
)

// session is the opened event store of one command
type session struct {
	store   storage.Store
	backups *storage.BackupManager
	path    string
}

// openSession opens the store selected by the flags and the config.
// JSON stores keep cfg.Backups backups in a directory next to the file.
func openSession() (*session, error) {
	backend := storageFlag
	if backend == "" {
		backend = cfg.Storage
	}

	path := dataPath
	if path == "" {
		path = cfg.DataPath
	}
	if path == "" {
		p, err := storage.DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	store, err := storage.Open(backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	s := &session{store: store, path: path}
	if cfg.Backups > 0 {
		s.backups, err = storage.EnableBackups(store, filepath.Join(filepath.Dir(path), "backups"), cfg.Backups)
		if err != nil {
			store.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// notify tells a running calendar that the events of date changed, or any
// events for an empty date. Nothing running is not an error.
func notify(date string) {
	err := socket.Notify(socket.Message{Command: socket.CommandReload, Date: date})
	if err != nil && !errors.Is(err, socket.ErrNoInstance) {
		log.Printf("Failed to notify the running calendar: %v", err)
	}
}

// parseDate parses a YYYY-MM-DD argument in local time; empty means today
func parseDate(s string) (time.Time, error) {
	if s == "" || s == "today" {
		return model.DayStart(now()), nil
	}
	day, err := time.ParseInLocation(model.DateFormat, s, now().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return day, nil
}
