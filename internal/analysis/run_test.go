package analysis

import (
	"context"
	"testing"

	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/schedule"
)

type fakeGate struct {
	ticket     schedule.AnalysisTicket
	allow      bool
	accept     bool
	applied    string
	appliedOK  bool
	applyCalls int
}

func (g *fakeGate) Intervals() []models.Interval { return sample() }

func (g *fakeGate) BeginAnalysis() (schedule.AnalysisTicket, bool) {
	return g.ticket, g.allow
}

func (g *fakeGate) ApplyAnalysis(t schedule.AnalysisTicket, text string, ok bool) bool {
	g.applyCalls++
	g.applied, g.appliedOK = text, ok
	return g.accept && t == g.ticket
}

type stubAnalyzer struct {
	text  string
	ok    bool
	calls int
	seen  []models.Interval
}

func (a *stubAnalyzer) Analyze(_ context.Context, intervals []models.Interval) (string, bool) {
	a.calls++
	a.seen = intervals
	return a.text, a.ok
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		allow  bool
		accept bool
		want   Outcome
		calls  int
	}{
		{"gated", false, true, Skipped, 0},
		{"applied", true, true, Applied, 1},
		{"stale", true, false, Discarded, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &fakeGate{ticket: schedule.AnalysisTicket{Day: "2026-03-07", Generation: 3}, allow: tt.allow, accept: tt.accept}
			a := &stubAnalyzer{text: "ok", ok: true}
			if got := Run(context.Background(), g, a); got != tt.want {
				t.Errorf("Run = %v, want %v", got, tt.want)
			}
			if a.calls != tt.calls {
				t.Errorf("analyzer called %d times, want %d", a.calls, tt.calls)
			}
			if tt.calls > 0 && (g.applied != "ok" || !g.appliedOK || len(a.seen) != 2) {
				t.Errorf("unexpected result handoff %q %v", g.applied, g.appliedOK)
			}
		})
	}
}
