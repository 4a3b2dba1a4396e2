// Package jsonfile stores every day in a single JSON document, written
// atomically through an afero filesystem.
package jsonfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/storage/codec"
)

type Store struct {
	fs   afero.Fs
	path string
}

// New returns a store for path on the OS filesystem.
func New(path string) *Store {
	return NewWithFs(afero.NewOsFs(), path)
}

// NewWithFs returns a store for path on fs.
func NewWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

func (s *Store) Init() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	if exists {
		return nil
	}
	return s.SaveSchedules(models.DayMap{})
}

func (s *Store) Load() error {
	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	if !exists {
		return fmt.Errorf("storage not initialized, run 'tokei init' first")
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// LoadSchedules reads the document. A document that is not a JSON object is
// moved aside and an empty map is returned, so the next save starts clean
// without destroying the original bytes.
func (s *Store) LoadSchedules() (models.DayMap, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	days, report, err := codec.DecodeMap(data)
	if err != nil {
		if !errors.Is(err, codec.ErrCorrupt) {
			return nil, err
		}
		aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
		if renameErr := s.fs.Rename(s.path, aside); renameErr != nil {
			logger.Error("failed to move corrupt schedule file aside", "path", s.path, "error", renameErr)
		}
		logger.Warn("schedule file unreadable, starting empty", "path", s.path, "moved_to", aside, "error", err)
		return models.DayMap{}, nil
	}
	if len(report.BadDays) > 0 {
		logger.Warn("dropped or emptied unreadable days", "days", report.BadDays)
	}
	if report.SkippedRecords > 0 {
		logger.Warn("skipped malformed interval records", "count", report.SkippedRecords)
	}
	return days, nil
}

// SaveSchedules writes to a temp file and renames it over the document.
func (s *Store) SaveSchedules(days models.DayMap) error {
	data, err := codec.EncodeMap(days)
	if err != nil {
		return fmt.Errorf("failed to encode schedules: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}
