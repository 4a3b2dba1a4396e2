// Package schedule owns the day-keyed interval collection. It enforces the
// no-overlap rule within a day, persists every change through a background
// Saver, and tells subscribers what changed.
package schedule

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/storage"
	"github.com/julianstephens/tokei/internal/timeline"
)

// ErrOverlapConflict is matched by every *ConflictError.
var ErrOverlapConflict = errors.New("interval overlaps an existing interval")

// ConflictError reports the stored interval that blocked a candidate.
type ConflictError struct {
	Candidate models.Interval
	Existing  models.Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%s) overlaps %s (%s)",
		e.Candidate.DisplayTitle(), e.Candidate.Span(),
		e.Existing.DisplayTitle(), e.Existing.Span())
}

func (e *ConflictError) Unwrap() error {
	return ErrOverlapConflict
}

// Options tunes a Store.
type Options struct {
	// ResaveDelay schedules one extra save of the loaded map after
	// construction. Zero disables it.
	ResaveDelay time.Duration
}

// DefaultOptions returns the options used by the application.
func DefaultOptions() Options {
	return Options{ResaveDelay: constants.DeferredResaveDelay}
}

// Store is the authoritative schedule state. All methods are safe to call
// from multiple goroutines, but the application mutates it from one.
type Store struct {
	mu sync.Mutex

	days       models.DayMap
	active     string
	generation uint64
	analysis   analysisState
	done       map[string]bool
	subs       subscribers

	saver  *Saver
	resave *time.Timer
}

// New loads the full map from provider once and activates day.
func New(provider storage.Provider, day string, opts Options) (*Store, error) {
	if !models.ValidDayKey(day) {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidDayKey, day)
	}

	days, err := provider.LoadSchedules()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	if days == nil {
		days = models.DayMap{}
	}
	for key := range days {
		models.SortIntervals(days[key])
	}

	s := &Store{
		days:   days,
		active: day,
		done:   make(map[string]bool),
		saver:  NewSaver(provider),
	}
	logger.Debug("schedule store loaded", "days", len(days), "intervals", days.Count(), "active", day)

	if opts.ResaveDelay > 0 {
		s.resave = time.AfterFunc(opts.ResaveDelay, func() {
			s.mu.Lock()
			snap := s.days.Clone()
			s.mu.Unlock()
			s.saver.Enqueue(snap)
		})
	}
	return s, nil
}

// ActiveDay returns the day key currently being edited.
func (s *Store) ActiveDay() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Load returns a copy of the cached intervals for day.
func (s *Store) Load(day string) []models.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyIntervals(s.days[day])
}

// Intervals returns a copy of the active day's intervals, sorted by start.
func (s *Store) Intervals() []models.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyIntervals(s.days[s.active])
}

// Count returns the number of intervals on the active day.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.days[s.active])
}

// Snapshot returns a deep copy of every day.
func (s *Store) Snapshot() models.DayMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days.Clone()
}

// Generation increases on every change to the active day's data and on every
// day switch.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func copyIntervals(list []models.Interval) []models.Interval {
	out := make([]models.Interval, len(list))
	copy(out, list)
	return out
}

func rangeOf(iv models.Interval) timeline.Range {
	return timeline.Range{Start: iv.StartMinute(), End: iv.EndMinute()}
}

// conflictLocked returns the first interval on the active day that overlaps
// candidate, ignoring excludingID.
func (s *Store) conflictLocked(candidate models.Interval, excludingID string) (models.Interval, bool) {
	r := rangeOf(candidate)
	for _, existing := range s.days[s.active] {
		if existing.ID == excludingID {
			continue
		}
		if timeline.Overlaps(rangeOf(existing), r) {
			return existing, true
		}
	}
	return models.Interval{}, false
}

// HasConflict reports whether candidate would overlap any interval on the
// active day other than excludingID. AddOrUpdate uses the same check.
func (s *Store) HasConflict(candidate models.Interval, excludingID string) bool {
	_, ok := s.Conflict(candidate, excludingID)
	return ok
}

// Conflict is HasConflict that also returns the blocking interval.
func (s *Store) Conflict(candidate models.Interval, excludingID string) (models.Interval, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conflictLocked(candidate, excludingID)
}

// AddOrUpdate inserts iv into the active day, or replaces the interval with
// the same id. A candidate that overlaps another interval is rejected with a
// *ConflictError and nothing changes.
func (s *Store) AddOrUpdate(iv models.Interval) error {
	if err := iv.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if existing, ok := s.conflictLocked(iv, iv.ID); ok {
		day := s.active
		s.mu.Unlock()
		logger.Debug("rejected overlapping interval", "day", day, "id", iv.ID, "conflict", existing.ID)
		return &ConflictError{Candidate: iv, Existing: existing}
	}

	list := s.days[s.active]
	replaced := false
	for i := range list {
		if list[i].ID == iv.ID {
			list[i] = iv
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, iv)
	}
	models.SortIntervals(list)
	s.days[s.active] = list
	day := s.active
	s.touchLocked()
	snap := s.days.Clone()
	fns := s.subs.snapshot()
	s.mu.Unlock()

	logger.Debug("interval saved", "day", day, "id", iv.ID, "span", iv.Span(), "replaced", replaced)
	s.saver.Enqueue(snap)
	emit(fns, Event{Kind: EventIntervalSaved, Day: day, Interval: iv})
	return nil
}

// Remove deletes the interval with id from the active day. It reports
// whether anything was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	list := s.days[s.active]
	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.days[s.active] = append(list[:idx:idx], list[idx+1:]...)
	delete(s.done, id)
	day := s.active
	s.touchLocked()
	snap := s.days.Clone()
	fns := s.subs.snapshot()
	s.mu.Unlock()

	logger.Debug("interval deleted", "day", day, "id", id)
	s.saver.Enqueue(snap)
	emit(fns, Event{Kind: EventIntervalDeleted, Day: day, ID: id})
	return true
}

// ChangeDay switches the active day. Other days are untouched; the analysis
// state belongs to the day being left and is reset.
func (s *Store) ChangeDay(day string) error {
	if !models.ValidDayKey(day) {
		return fmt.Errorf("%w: %q", models.ErrInvalidDayKey, day)
	}

	s.mu.Lock()
	if day == s.active {
		s.mu.Unlock()
		return nil
	}
	s.active = day
	s.generation++
	s.analysis = analysisState{}
	fns := s.subs.snapshot()
	s.mu.Unlock()

	logger.Debug("active day changed", "day", day)
	emit(fns, Event{Kind: EventDayChanged, Day: day})
	return nil
}

// IntervalAt returns the active-day interval containing minute.
func (s *Store) IntervalAt(minute int) (models.Interval, bool) {
	minute = timeline.NormalizeMinute(minute)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iv := range s.days[s.active] {
		if timeline.Contains(iv.StartMinute(), iv.EndMinute(), minute) {
			return iv, true
		}
	}
	return models.Interval{}, false
}

// Get returns the active-day interval with id.
func (s *Store) Get(id string) (models.Interval, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iv := range s.days[s.active] {
		if iv.ID == id {
			return iv, true
		}
	}
	return models.Interval{}, false
}

// FreeRanges returns the free parts of [segStart, segEnd) on the active day.
func (s *Store) FreeRanges(segStart, segEnd int) []timeline.Range {
	return timeline.Gaps(s.ranges(), segStart, segEnd)
}

// OccupiedRanges returns the busy parts of [segStart, segEnd) on the active day.
func (s *Store) OccupiedRanges(segStart, segEnd int) []timeline.Range {
	return timeline.Occupied(s.ranges(), segStart, segEnd)
}

func (s *Store) ranges() []timeline.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.days[s.active]
	out := make([]timeline.Range, len(list))
	for i, iv := range list {
		out[i] = rangeOf(iv)
	}
	return out
}

// ToggleDone flips the transient checked mark for id and returns the new
// state. Marks are not persisted.
func (s *Store) ToggleDone(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done[id] {
		delete(s.done, id)
		return false
	}
	s.done[id] = true
	return true
}

func (s *Store) IsDone(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done[id]
}

// Subscribe registers fn for change events and returns a function that
// removes it. Callbacks run on the goroutine that made the change, after the
// store lock is released.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.subs.add(fn)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.subs.remove(id)
			s.mu.Unlock()
		})
	}
}

// Flush writes the full map synchronously.
func (s *Store) Flush() error {
	s.mu.Lock()
	snap := s.days.Clone()
	s.mu.Unlock()
	return s.saver.Flush(snap)
}

// Suspend flushes unconditionally and notifies subscribers. Hosts call it
// when the application is about to stop or be backgrounded.
func (s *Store) Suspend() error {
	err := s.Flush()

	s.mu.Lock()
	day := s.active
	fns := s.subs.snapshot()
	s.mu.Unlock()

	emit(fns, Event{Kind: EventSuspended, Day: day})
	return err
}

// Close flushes and stops the background saver. The store must not be used
// afterwards.
func (s *Store) Close() error {
	if s.resave != nil {
		s.resave.Stop()
	}
	flushErr := s.Flush()
	closeErr := s.saver.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Release stops the background saver without forcing a full save. Pending
// writes still complete. Read-only callers use it instead of Close.
func (s *Store) Release() error {
	if s.resave != nil {
		s.resave.Stop()
	}
	return s.saver.Close()
}

// SaveErr returns the last background save failure, if any.
func (s *Store) SaveErr() error {
	return s.saver.Err()
}

// touchLocked records a change to the active day's data.
func (s *Store) touchLocked() {
	s.generation++
	s.analysis.analyzed = false
}

func emit(fns []func(Event), ev Event) {
	for _, fn := range fns {
		fn(ev)
	}
}
