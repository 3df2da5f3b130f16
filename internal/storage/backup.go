package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pstuifzand/rayday/internal/model"
)

const backupTimeFormat = "20060102_150405.000"

var ErrBackupNotFound = errors.New("backup not found")

// BackupManager keeps timestamped copies of the events file
type BackupManager struct {
	backupDir string
	keep      int
}

// NewBackupManager creates the backup directory and keeps at most keep
// backups (0 keeps all)
func NewBackupManager(backupDir string, keep int) (*BackupManager, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: backupDir,
		keep:      keep,
	}, nil
}

// EnableBackups attaches a backup manager for dir to s when s is a JSON
// store. It returns nil for other stores and when keep is negative.
func EnableBackups(s Store, dir string, keep int) (*BackupManager, error) {
	js, ok := s.(*JSONStore)
	if !ok || keep < 0 {
		return nil, nil
	}

	bm, err := NewBackupManager(dir, keep)
	if err != nil {
		return nil, err
	}
	js.WithBackups(bm)
	return bm, nil
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath  string
	Timestamp time.Time
}

// Name returns the file name of the backup
func (b BackupMetadata) Name() string {
	return filepath.Base(b.FilePath)
}

// Events reads the events stored in the backup
func (b BackupMetadata) Events() ([]model.Event, error) {
	s, err := NewJSONStore(b.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup %s: %w", b.Name(), err)
	}
	return s.All()
}

// Dir returns the backup directory
func (bm *BackupManager) Dir() string {
	return bm.backupDir
}

// Find returns the backup with the given file name
func (bm *BackupManager) Find(name string) (BackupMetadata, error) {
	backups, err := bm.List()
	if err != nil {
		return BackupMetadata{}, err
	}
	for _, b := range backups {
		if b.Name() == name {
			return b, nil
		}
	}
	return BackupMetadata{}, fmt.Errorf("%w: %s", ErrBackupNotFound, name)
}

// CreateBackup copies the file at path into the backup directory and prunes
// old backups
func (bm *BackupManager) CreateBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file for backup: %w", err)
	}

	target := bm.generateBackupFilename(filepath.Base(path), time.Now())
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return bm.prune()
}

// generateBackupFilename returns a free path in the backup directory named
// YYYYMMDD_HHMMSS.mmm_<original name>. Backups made within the same
// millisecond get later timestamps.
func (bm *BackupManager) generateBackupFilename(original string, ts time.Time) string {
	for {
		path := filepath.Join(bm.backupDir, ts.Format(backupTimeFormat)+"_"+original)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		ts = ts.Add(time.Millisecond)
	}
}

// List returns all backups, oldest first
func (bm *BackupManager) List() ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseBackupFilename(entry.Name())
		if !ok {
			continue
		}
		backups = append(backups, BackupMetadata{
			FilePath:  filepath.Join(bm.backupDir, entry.Name()),
			Timestamp: ts,
		})
	}

	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.FilePath, b.FilePath)
	})
	return backups, nil
}

func (bm *BackupManager) prune() error {
	if bm.keep <= 0 {
		return nil
	}

	backups, err := bm.List()
	if err != nil {
		return err
	}

	for len(backups) > bm.keep {
		if err := os.Remove(backups[0].FilePath); err != nil {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
		backups = backups[1:]
	}
	return nil
}

func parseBackupFilename(name string) (time.Time, bool) {
	if len(name) <= len(backupTimeFormat)+1 || name[len(backupTimeFormat)] != '_' {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(backupTimeFormat, name[:len(backupTimeFormat)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
