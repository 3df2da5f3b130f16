package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

// JSONStore keeps all events in memory and rewrites the JSON file on every
// change
type JSONStore struct {
	FilePath string
	backups  *BackupManager
	data     jsonFile
}

type jsonFile struct {
	NextID int64         `json:"next_id"`
	Events []model.Event `json:"events"`
}

// NewJSONStore opens the JSON store at filePath. A missing file is an empty
// store; the file is created on the first write.
func NewJSONStore(filePath string) (*JSONStore, error) {
	s := &JSONStore{
		FilePath: filePath,
		data:     jsonFile{NextID: 1},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// WithBackups makes the store copy the previous file into the backup
// directory before each write
func (s *JSONStore) WithBackups(bm *BackupManager) *JSONStore {
	s.backups = bm
	return s
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var file jsonFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	// Keep IDs unique even if next_id was edited by hand
	for _, e := range file.Events {
		if e.ID >= file.NextID {
			file.NextID = e.ID + 1
		}
	}
	if file.NextID < 1 {
		file.NextID = 1
	}

	s.data = file
	return nil
}

func (s *JSONStore) save() error {
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if s.backups != nil && s.FileExists() {
		if err := s.backups.CreateBackup(s.FilePath); err != nil {
			log.Printf("backup of %s failed: %v", s.FilePath, err)
		}
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Add stores a new event and assigns its ID
func (s *JSONStore) Add(e *model.Event) error {
	if err := normalize(e); err != nil {
		return err
	}

	e.ID = s.data.NextID
	s.data.NextID++
	s.data.Events = append(s.data.Events, *e)

	if err := s.save(); err != nil {
		s.data.Events = s.data.Events[:len(s.data.Events)-1]
		s.data.NextID--
		e.ID = 0
		return err
	}

	log.Printf("added event %d: %s on %s", e.ID, e, e.Start.Format(model.DateFormat))
	return nil
}

// Remove deletes the event with the given ID
func (s *JSONStore) Remove(id int64) error {
	for i, e := range s.data.Events {
		if e.ID != id {
			continue
		}

		old := s.data.Events
		s.data.Events = append(append([]model.Event(nil), old[:i]...), old[i+1:]...)
		if err := s.save(); err != nil {
			s.data.Events = old
			return err
		}

		log.Printf("removed event %d", id)
		return nil
	}
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Get returns the event with the given ID
func (s *JSONStore) Get(id int64) (model.Event, error) {
	for _, e := range s.data.Events {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Event{}, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Between returns the events starting in [from, to)
func (s *JSONStore) Between(from, to time.Time) ([]model.Event, error) {
	var out []model.Event
	for _, e := range s.data.Events {
		if !e.Start.Before(from) && e.Start.Before(to) {
			out = append(out, e)
		}
	}
	model.Sort(out)
	return out, nil
}

// All returns every stored event, sorted
func (s *JSONStore) All() ([]model.Event, error) {
	out := append([]model.Event(nil), s.data.Events...)
	model.Sort(out)
	return out, nil
}

// Close is a no-op; every change is already on disk
func (s *JSONStore) Close() error {
	return nil
}

// Reload discards the in-memory events and reads the file again, picking up
// changes written by another process
func (s *JSONStore) Reload() error {
	old := s.data
	s.data = jsonFile{NextID: 1}
	if err := s.load(); err != nil {
		s.data = old
		return err
	}
	return nil
}

// Restore replaces the events with the contents of a backup. The current
// file is backed up first, so a restore can be undone.
func (s *JSONStore) Restore(b BackupMetadata) error {
	data, err := os.ReadFile(b.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	restored := &JSONStore{FilePath: b.FilePath, data: jsonFile{NextID: 1}}
	if err := restored.load(); err != nil {
		return fmt.Errorf("backup %s is not usable: %w", b.Name(), err)
	}

	if s.backups != nil && s.FileExists() {
		if err := s.backups.CreateBackup(s.FilePath); err != nil {
			return fmt.Errorf("failed to back up current events: %w", err)
		}
	}
	if err := os.WriteFile(s.FilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.data = restored.data
	log.Printf("restored %s from backup %s", s.FilePath, b.Name())
	return nil
}

// FileExists checks if the events file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
