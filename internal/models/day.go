package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/tokei/internal/constants"
)

// ErrInvalidDayKey is returned for day keys that are not YYYY-MM-DD dates.
var ErrInvalidDayKey = errors.New("invalid day key")

// DayMap partitions intervals by day key (YYYY-MM-DD). Each list is kept
// sorted by start minute.
type DayMap map[string][]Interval

// Clone returns a deep copy; the interval slices are not shared.
func (m DayMap) Clone() DayMap {
	out := make(DayMap, len(m))
	for day, intervals := range m {
		cp := make([]Interval, len(intervals))
		copy(cp, intervals)
		out[day] = cp
	}
	return out
}

// Days returns the day keys in ascending order.
func (m DayMap) Days() []string {
	days := make([]string, 0, len(m))
	for day := range m {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Count returns the total number of intervals across all days.
func (m DayMap) Count() int {
	n := 0
	for _, intervals := range m {
		n += len(intervals)
	}
	return n
}

// SortIntervals orders intervals by start minute, keeping the relative order
// of equal starts.
func SortIntervals(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].StartMinute() < intervals[j].StartMinute()
	})
}

// FormatDayKey returns the day key for t in t's location.
func FormatDayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDayKey parses a YYYY-MM-DD day key in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, key)
	}
	return t, nil
}

// ValidDayKey reports whether key is a well-formed YYYY-MM-DD date.
func ValidDayKey(key string) bool {
	_, err := time.Parse(constants.DateFormat, key)
	return err == nil
}

// ShiftDayKey moves a day key by n calendar days.
func ShiftDayKey(key string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayKey, key)
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}
