// Package diskv stores one file per day using peterbourgon/diskv, sharded
// into year/month directories.
package diskv

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/storage/codec"
)

type Store struct {
	basePath string
	d        *diskv.Diskv
}

func New(basePath string) *Store {
	return &Store{basePath: basePath}
}

// dayTransform shards "2026-03-07" into 2026/03.
func dayTransform(key string) []string {
	parts := strings.SplitN(key, "-", 3)
	if len(parts) != 3 {
		return []string{}
	}
	return parts[:2]
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		Transform:    dayTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.basePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tokei init' first")
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", s.basePath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.basePath)
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) keys() []string {
	cancel := make(chan struct{})
	defer close(cancel)

	var keys []string
	for key := range s.d.Keys(cancel) {
		keys = append(keys, key)
	}
	return keys
}

func (s *Store) LoadSchedules() (models.DayMap, error) {
	if s.d == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	days := models.DayMap{}
	for _, key := range s.keys() {
		if !models.ValidDayKey(key) {
			logger.Warn("ignoring unexpected file in schedule store", "key", key)
			continue
		}
		data, err := s.d.Read(key)
		if err != nil {
			logger.Warn("failed to read day, loading empty", "day", key, "error", err)
			days[key] = []models.Interval{}
			continue
		}
		res := codec.DecodeDay(data)
		if res.Err != nil {
			logger.Warn("schedule payload unreadable, loading empty day", "day", key, "error", res.Err)
		}
		if res.Skipped > 0 {
			logger.Warn("skipped malformed interval records", "day", key, "count", res.Skipped)
		}
		days[key] = res.Intervals
	}
	return days, nil
}

// SaveSchedules writes every day in days and erases stored days that are no
// longer present.
func (s *Store) SaveSchedules(days models.DayMap) error {
	if s.d == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, day := range days.Days() {
		payload, err := codec.EncodeDay(days[day])
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", day, err)
		}
		if err := s.d.Write(day, payload); err != nil {
			return fmt.Errorf("failed to save %s: %w", day, err)
		}
	}
	for _, key := range s.keys() {
		if _, ok := days[key]; ok || !models.ValidDayKey(key) {
			continue
		}
		if err := s.d.Erase(key); err != nil {
			return fmt.Errorf("failed to erase %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.basePath
}
