package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/migration"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/storage/codec"
	"github.com/julianstephens/tokei/migrations"
)

// Store keeps one row per day in a local SQLite database. The row payload is
// the codec's JSON record array for that day.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tokei init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	// Older databases are brought forward on open.
	if _, err := runner.ApplyMigrations(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverSQLite)
}

func (s *Store) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

// LoadSchedules reads every stored day. Rows with an unreadable day key are
// skipped and rows with a corrupt payload load as empty days.
func (s *Store) LoadSchedules() (models.DayMap, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT day, payload FROM schedules")
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	days := models.DayMap{}
	for rows.Next() {
		var day, payload string
		if err := rows.Scan(&day, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan schedule row: %w", err)
		}
		if !models.ValidDayKey(day) {
			logger.Warn("skipping schedule with invalid day key", "day", day)
			continue
		}
		res := codec.DecodeDay([]byte(payload))
		if res.Err != nil {
			logger.Warn("schedule payload unreadable, loading empty day", "day", day, "error", res.Err)
		}
		if res.Skipped > 0 {
			logger.Warn("skipped malformed interval records", "day", day, "count", res.Skipped)
		}
		days[day] = res.Intervals
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedules: %w", err)
	}
	return days, nil
}

// SaveSchedules replaces the stored map with days in one transaction.
func (s *Store) SaveSchedules(days models.DayMap) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM schedules"); err != nil {
		return fmt.Errorf("failed to clear schedules: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO schedules (day, payload, updated_at, interval_count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, day := range days.Days() {
		intervals := days[day]
		payload, err := codec.EncodeDay(intervals)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", day, err)
		}
		if _, err := stmt.Exec(day, string(payload), now, len(intervals)); err != nil {
			return fmt.Errorf("failed to save %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schedules: %w", err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init or
// Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
