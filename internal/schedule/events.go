package schedule

import "github.com/julianstephens/tokei/internal/models"

// EventKind identifies what changed in a Store.
type EventKind int

const (
	EventDayChanged EventKind = iota
	EventIntervalSaved
	EventIntervalDeleted
	EventAnalysisUpdated
	EventSuspended
)

func (k EventKind) String() string {
	switch k {
	case EventDayChanged:
		return "day-changed"
	case EventIntervalSaved:
		return "interval-saved"
	case EventIntervalDeleted:
		return "interval-deleted"
	case EventAnalysisUpdated:
		return "analysis-updated"
	case EventSuspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a store change has been applied.
type Event struct {
	Kind EventKind
	Day  string
	// Interval is set for EventIntervalSaved.
	Interval models.Interval
	// ID is set for EventIntervalDeleted.
	ID string
}

type subscribers struct {
	next int
	fns  map[int]func(Event)
}

func (s *subscribers) add(fn func(Event)) int {
	if s.fns == nil {
		s.fns = make(map[int]func(Event))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return id
}

func (s *subscribers) remove(id int) {
	delete(s.fns, id)
}

// snapshot returns the callbacks in registration order.
func (s *subscribers) snapshot() []func(Event) {
	out := make([]func(Event), 0, len(s.fns))
	for id := 0; id < s.next; id++ {
		if fn, ok := s.fns[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
