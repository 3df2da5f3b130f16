package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pstuifzand/rayday/internal/model"
)

const (
	// SchemaVersion is stored in PRAGMA user_version
	SchemaVersion = 1

	createEventsTableSQL = `
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL,
			starts_at INTEGER NOT NULL,
			ends_at INTEGER NOT NULL,
			CHECK (starts_at < ends_at)
		);
	`

	createEventsIndexSQL = `
		CREATE INDEX IF NOT EXISTS idx_events_start ON events (starts_at, ends_at);
	`

	selectEventsSQL = `SELECT id, description, starts_at, ends_at FROM events`
)

// SQLiteStore keeps events in a SQLite database. Times are stored as unix
// seconds and returned in the store's location.
type SQLiteStore struct {
	conn *sql.DB
	path string
	loc  *time.Location
}

// NewSQLiteStore opens the database at dbPath, creating the file and schema
// when needed
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Busy timeout first, so schema setup can wait for a concurrent CLI call
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &SQLiteStore{conn: conn, path: dbPath, loc: time.Local}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// InLocation sets the location returned events are converted to
func (s *SQLiteStore) InLocation(loc *time.Location) *SQLiteStore {
	s.loc = loc
	return s
}

func (s *SQLiteStore) initSchema() error {
	var version int
	if err := s.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to check schema version: %w", err)
	}
	if version == SchemaVersion {
		return nil
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	if _, err := s.conn.Exec(createEventsTableSQL); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}
	if _, err := s.conn.Exec(createEventsIndexSQL); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	if _, err := s.conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	log.Printf("initialized event database %s", s.path)
	return nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

// Add inserts the event and sets its ID
func (s *SQLiteStore) Add(e *model.Event) error {
	if err := normalize(e); err != nil {
		return err
	}

	result, err := s.conn.Exec(
		"INSERT INTO events (description, starts_at, ends_at) VALUES (?, ?, ?)",
		e.Description, e.Start.Unix(), e.End.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	e.ID = id
	return nil
}

// Remove deletes the event with the given ID
func (s *SQLiteStore) Remove(id int64) error {
	result, err := s.conn.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Get returns the event with the given ID
func (s *SQLiteStore) Get(id int64) (model.Event, error) {
	row := s.conn.QueryRow(selectEventsSQL+" WHERE id = ?", id)
	e, err := s.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to query event: %w", err)
	}
	return e, nil
}

// Between returns the events starting in [from, to)
func (s *SQLiteStore) Between(from, to time.Time) ([]model.Event, error) {
	return s.query(selectEventsSQL+" WHERE starts_at >= ? AND starts_at < ? ORDER BY starts_at, ends_at, id",
		from.Unix(), to.Unix())
}

// All returns every stored event, sorted
func (s *SQLiteStore) All() ([]model.Event, error) {
	return s.query(selectEventsSQL + " ORDER BY starts_at, ends_at, id")
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) query(query string, args ...any) ([]model.Event, error) {
	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scan(row scanner) (model.Event, error) {
	var (
		e          model.Event
		start, end int64
	)
	if err := row.Scan(&e.ID, &e.Description, &start, &end); err != nil {
		return model.Event{}, err
	}
	e.Start = time.Unix(start, 0).In(s.loc)
	e.End = time.Unix(end, 0).In(s.loc)
	return e, nil
}
