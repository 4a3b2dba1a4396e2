package dial

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/tokei/internal/geometry"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/timeline"
)

const testDay = "2026-03-07"

func iv(id, title string, sh, eh int, tag models.ColorTag) models.Interval {
	return models.Interval{ID: id, Title: title, Start: models.Clock{Hour: sh}, End: models.Clock{Hour: eh}, Color: tag}
}

func TestNewLayout(t *testing.T) {
	tests := []struct {
		rows, cols int
		wantRows   int
	}{
		{20, 100, 20},
		{20, 30, 15},
		{1, 100, 3},
	}
	for _, tt := range tests {
		l := NewLayout(tt.rows, tt.cols)
		if l.Rows != tt.wantRows || l.Cols != tt.wantRows*2 {
			t.Errorf("NewLayout(%d, %d) = %dx%d", tt.rows, tt.cols, l.Rows, l.Cols)
		}
		if l.Radius != float64(l.Rows)-1 {
			t.Errorf("radius = %v", l.Radius)
		}
	}
}

func TestCellRoundTrip(t *testing.T) {
	l := NewLayout(20, 80)
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			gc, gr := l.Cell(l.CellPoint(c, r))
			if gc != c || gr != r {
				t.Fatalf("Cell(CellPoint(%d, %d)) = (%d, %d)", c, r, gc, gr)
			}
		}
	}
}

func TestPaintRing(t *testing.T) {
	l := NewLayout(20, 80)
	// Future day: no elapsed shading; hands at 00:00:00 point up.
	f := Frame{
		Day:       "2099-01-01",
		Now:       time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		Intervals: []models.Interval{iv("w", "", 6, 7, models.ColorGreen)},
	}
	grid := paint(l, f)

	// Just below the 3 o'clock line, inside the ring: minute ~368.
	c := grid[10][38]
	if c.kind != kindInterval || c.tag != models.ColorGreen || c.ch != '█' {
		t.Errorf("expected green interval cell at 06:08, got %+v", c)
	}
	// Just above it is 05:48, which is free.
	if grid[9][38].kind == kindInterval {
		t.Error("05:48 should not be painted as booked")
	}

	f.Selected = "w"
	if got := paint(l, f)[10][38]; got.kind != kindSelected {
		t.Errorf("selected interval cell = %+v", got)
	}
}

func TestPaintElapsedAndRecording(t *testing.T) {
	l := NewLayout(20, 80)
	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	// 3 o'clock (06:00) has passed at noon.
	grid := paint(l, Frame{Day: testDay, Now: now})
	if grid[10][38].kind != kindElapsed {
		t.Errorf("06:08 at noon should be elapsed, got %+v", grid[10][38])
	}
	// Nine o'clock on the dial is 18:00, still ahead.
	if grid[10][1].kind == kindElapsed {
		t.Error("18:00 should not be elapsed at noon")
	}

	grid = paint(l, Frame{Day: testDay, Now: now, Recording: true, RecordStart: now.Add(-7 * time.Hour)})
	if grid[10][38].kind != kindRecording {
		t.Errorf("06:08 should be inside a 05:00-12:00 recording, got %+v", grid[10][38])
	}
}

func TestPaintLabelsAndHands(t *testing.T) {
	l := NewLayout(20, 80)
	now := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sleep := iv("s", "sleep", 22, 2, models.ColorPurple)
	grid := paint(l, Frame{Day: "2099-01-01", Now: now, Intervals: []models.Interval{sleep}})

	pos := geometry.LabelPosition(sleep, l.Center, l.Radius*labelRadius)
	c, r := l.Cell(pos)
	if got := grid[r][c]; got.ch != 'S' || got.kind != kindLabel {
		t.Errorf("label cell = %+v", got)
	}
	if got := grid[10][20]; got.ch != 'o' {
		t.Errorf("center = %q", got.ch)
	}
	// The hour hand points straight up at midnight.
	if got := grid[7][20]; got.kind != kindHand {
		t.Errorf("expected hour hand above center, got %+v", got)
	}
}

func TestRenderShape(t *testing.T) {
	l := NewLayout(12, 80)
	out := Render(l, Frame{Day: testDay, Now: time.Date(2026, 3, 7, 9, 30, 0, 0, time.UTC),
		Intervals: []models.Interval{iv("a", "Work", 9, 17, models.ColorBlue)}})
	lines := strings.Split(out, "\n")
	if len(lines) != l.Rows {
		t.Fatalf("expected %d lines, got %d", l.Rows, len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(stripANSI(line)); n != l.Cols {
			t.Errorf("line %d has %d cells, want %d", i, n, l.Cols)
		}
	}
}

// stripANSI drops CSI sequences in case the test terminal reports colors.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

type fakeLocator struct {
	intervals []models.Interval
}

func (f fakeLocator) IntervalAt(minute int) (models.Interval, bool) {
	for _, iv := range f.intervals {
		if timeline.Contains(iv.StartMinute(), iv.EndMinute(), minute) {
			return iv, true
		}
	}
	return models.Interval{}, false
}

func (f fakeLocator) FreeRanges(segStart, segEnd int) []timeline.Range {
	ranges := make([]timeline.Range, len(f.intervals))
	for i, iv := range f.intervals {
		ranges[i] = timeline.Range{Start: iv.StartMinute(), End: iv.EndMinute()}
	}
	return timeline.Gaps(ranges, segStart, segEnd)
}

func TestHit(t *testing.T) {
	l := NewLayout(20, 80)
	loc := fakeLocator{intervals: []models.Interval{iv("w", "Walk", 6, 7, models.ColorGreen)}}

	if h := Hit(l, loc, 38, 10); h.Kind != geometry.HitInterval || h.Interval.ID != "w" {
		t.Errorf("expected interval hit, got %+v", h)
	}
	h := Hit(l, loc, 38, 9)
	if h.Kind != geometry.HitEmpty || h.Proposal.Span() != "05:00-06:00" {
		t.Errorf("expected empty hit proposing 05:00-06:00, got %+v", h)
	}
	if h := Hit(l, loc, 0, 0); h.Kind != geometry.HitNone {
		t.Errorf("corner should miss, got %+v", h)
	}
	if h := Hit(l, loc, -1, 5); h.Kind != geometry.HitNone {
		t.Errorf("off-grid cell should miss, got %+v", h)
	}
}
