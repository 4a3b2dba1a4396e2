package schedule

// AnalysisTicket identifies the data an analysis request was issued for.
type AnalysisTicket struct {
	Day        string
	Generation uint64
}

type analysisState struct {
	text     string
	hasText  bool
	analyzed bool
	inFlight *AnalysisTicket
}

// BeginAnalysis returns a ticket for analysing the active day. It returns
// false when the current data has already been analysed or a request for it
// is still outstanding.
func (s *Store) BeginAnalysis() (AnalysisTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := AnalysisTicket{Day: s.active, Generation: s.generation}
	if s.analysis.analyzed {
		return AnalysisTicket{}, false
	}
	if s.analysis.inFlight != nil && *s.analysis.inFlight == ticket {
		return AnalysisTicket{}, false
	}
	s.analysis.inFlight = &ticket
	return ticket, true
}

// ApplyAnalysis records the outcome of a request. Results for a ticket that
// no longer matches the active day and generation are discarded and false is
// returned. A failed request (ok false) clears the text without marking the
// data analysed, so the next explicit request may try again.
func (s *Store) ApplyAnalysis(ticket AnalysisTicket, text string, ok bool) bool {
	s.mu.Lock()
	if s.analysis.inFlight != nil && *s.analysis.inFlight == ticket {
		s.analysis.inFlight = nil
	}
	if ticket.Day != s.active || ticket.Generation != s.generation {
		s.mu.Unlock()
		return false
	}

	if ok {
		s.analysis.text = text
		s.analysis.hasText = true
		s.analysis.analyzed = true
	} else {
		s.analysis.text = ""
		s.analysis.hasText = false
		s.analysis.analyzed = false
	}
	day := s.active
	fns := s.subs.snapshot()
	s.mu.Unlock()

	emit(fns, Event{Kind: EventAnalysisUpdated, Day: day})
	return true
}

// Analysis returns the cached analysis text for the active day, if any.
func (s *Store) Analysis() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis.text, s.analysis.hasText
}

// Analyzed reports whether the current data already has an analysis.
func (s *Store) Analyzed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis.analyzed
}
