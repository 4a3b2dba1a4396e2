package schedule

import (
	"sync"

	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/storage"
)

// Saver writes schedule snapshots through a storage.Provider on a background
// goroutine. Only the newest pending snapshot is kept, and a snapshot is
// never written after a newer one has been.
type Saver struct {
	provider storage.Provider

	mu      sync.Mutex
	seq     uint64
	written uint64
	pending *snapshot
	err     error
	closed  bool

	// writeMu serializes provider writes between the loop and Flush.
	writeMu sync.Mutex

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

type snapshot struct {
	seq  uint64
	days models.DayMap
}

// NewSaver starts the background writer.
func NewSaver(provider storage.Provider) *Saver {
	s := &Saver{
		provider: provider,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *Saver) loop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.wake:
			s.writePending()
		case <-s.done:
			s.writePending()
			return
		}
	}
}

func (s *Saver) writePending() {
	s.mu.Lock()
	snap := s.pending
	s.pending = nil
	s.mu.Unlock()
	if snap != nil {
		_ = s.write(snap)
	}
}

// Enqueue schedules days for a background write and returns immediately.
// The caller must not modify days afterwards.
func (s *Saver) Enqueue(days models.DayMap) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.Warn("save requested after saver closed")
		return
	}
	s.seq++
	s.pending = &snapshot{seq: s.seq, days: days}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush writes days synchronously, superseding anything still pending.
func (s *Saver) Flush(days models.DayMap) error {
	s.mu.Lock()
	s.seq++
	snap := &snapshot{seq: s.seq, days: days}
	if s.pending != nil && s.pending.seq < snap.seq {
		s.pending = nil
	}
	s.mu.Unlock()
	return s.write(snap)
}

func (s *Saver) write(snap *snapshot) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	stale := snap.seq <= s.written
	s.mu.Unlock()
	if stale {
		return nil
	}

	err := s.provider.SaveSchedules(snap.days)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		logger.Error("failed to save schedules", "seq", snap.seq, "error", err)
		return err
	}
	s.written = snap.seq
	s.err = nil
	return nil
}

// Err returns the error from the most recent failed write, cleared by the
// next successful one.
func (s *Saver) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Written returns the sequence number of the newest snapshot on disk.
func (s *Saver) Written() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

// Close writes any pending snapshot and stops the goroutine.
func (s *Saver) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
	return s.Err()
}
