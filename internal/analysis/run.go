package analysis

import (
	"context"

	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/schedule"
)

// Gate is the part of *schedule.Store that coordinates analysis requests.
type Gate interface {
	Intervals() []models.Interval
	BeginAnalysis() (schedule.AnalysisTicket, bool)
	ApplyAnalysis(ticket schedule.AnalysisTicket, text string, ok bool) bool
}

// Outcome describes what Run did.
type Outcome int

const (
	// Skipped means the current data was already analysed or a request
	// for it is still outstanding.
	Skipped Outcome = iota
	// Applied means a result (or a failure) was recorded for the current data.
	Applied
	// Discarded means the data changed while the request was in flight.
	Discarded
)

// Ticket is a prepared request: the intervals captured when it was issued
// and the ticket identifying them.
type Ticket struct {
	ticket    schedule.AnalysisTicket
	intervals []models.Interval
}

// Begin captures the current data if a request is allowed.
func Begin(g Gate) (Ticket, bool) {
	t, ok := g.BeginAnalysis()
	if !ok {
		return Ticket{}, false
	}
	return Ticket{ticket: t, intervals: g.Intervals()}, true
}

// Complete performs the request for t and hands the result back to g. It
// may run on any goroutine.
func Complete(ctx context.Context, g Gate, a Analyzer, t Ticket) Outcome {
	text, ok := a.Analyze(ctx, t.intervals)
	if !g.ApplyAnalysis(t.ticket, text, ok) {
		return Discarded
	}
	return Applied
}

// Run is Begin followed by Complete on the calling goroutine.
func Run(ctx context.Context, g Gate, a Analyzer) Outcome {
	t, ok := Begin(g)
	if !ok {
		return Skipped
	}
	return Complete(ctx, g, a, t)
}
