package geometry

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/timeline"
)

var center = Point{X: 100, Y: 100}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPointToMinute_Cardinals(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"top is midnight", Point{100, 60}, 0},
		{"right is 06:00", Point{140, 100}, 360},
		{"bottom is noon", Point{100, 140}, 720},
		{"left is 18:00", Point{60, 100}, 1080},
		{"center", Point{100, 100}, 360},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PointToMinute(tt.p, center, 50)
			if !ok {
				t.Fatal("expected hit inside dial")
			}
			if got != tt.want {
				t.Errorf("PointToMinute(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestPointToMinute_OutsideDial(t *testing.T) {
	if _, ok := PointToMinute(Point{100, 49.9}, center, 50); ok {
		t.Error("point beyond radius should miss")
	}
	if _, ok := PointToMinute(Point{100, 50}, center, 50); !ok {
		t.Error("point exactly on the rim should hit")
	}
}

func TestMinuteToPoint_RoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		p := MinuteToPoint(float64(m), center, 40)
		got, ok := PointToMinute(p, center, 50)
		if !ok || got != m {
			t.Fatalf("round trip of minute %d gave %d (ok=%v) via %v", m, got, ok, p)
		}
	}
}

func TestHandAngles(t *testing.T) {
	ts := time.Date(2026, 3, 7, 3, 30, 15, 500_000_000, time.UTC)
	if got := HourHandAngle(ts); !near(got, -37.5) {
		t.Errorf("HourHandAngle = %v, want -37.5", got)
	}
	if got := SecondHandAngle(ts); !near(got, 3) {
		t.Errorf("SecondHandAngle = %v, want 3", got)
	}
	if got := MinuteOfDay(ts); !near(got, 210+15.5/60) {
		t.Errorf("MinuteOfDay = %v", got)
	}

	// The hour hand points where the dial places the same minute.
	hands := HandTips(ts, center, 30, 45)
	want := MinuteToPoint(210, center, 30)
	if !near(hands.Hour.X, want.X) || !near(hands.Hour.Y, want.Y) {
		t.Errorf("hour tip %v, want %v", hands.Hour, want)
	}
	if d := math.Hypot(hands.Second.X-center.X, hands.Second.Y-center.Y); !near(d, 45) {
		t.Errorf("second hand length %v", d)
	}
}

func TestNumeralPositions(t *testing.T) {
	nums := NumeralPositions(center, 50, 6)
	if len(nums) != 4 {
		t.Fatalf("expected 4 numerals, got %d", len(nums))
	}
	if nums[0].Label != "0" || !near(nums[0].Pos.X, 100) || !near(nums[0].Pos.Y, 50) {
		t.Errorf("midnight numeral misplaced: %+v", nums[0])
	}
	if nums[2].Hour != 12 || !near(nums[2].Pos.Y, 150) {
		t.Errorf("noon numeral misplaced: %+v", nums[2])
	}
}

func TestElapsedArc(t *testing.T) {
	now := time.Date(2026, 3, 7, 6, 0, 0, 0, time.Local)

	arc, ok := ElapsedArc("2026-03-06", now)
	if !ok || arc.Sweep() != 1440 {
		t.Errorf("past day should be fully elapsed, got %+v %v", arc, ok)
	}
	arc, ok = ElapsedArc("2026-03-07", now)
	if !ok || !near(arc.End, 360) || arc.Start != 0 {
		t.Errorf("today should be elapsed to now, got %+v %v", arc, ok)
	}
	if !arc.Contains(100) || arc.Contains(400) {
		t.Error("unexpected Contains result for today's arc")
	}
	if _, ok := ElapsedArc("2026-03-08", now); ok {
		t.Error("future day should have no elapsed arc")
	}
}

func TestRecordingArc_AcrossMidnight(t *testing.T) {
	start := time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)
	arc := RecordingArc(start, start.Add(90*time.Minute))
	if !near(arc.Sweep(), 90) {
		t.Errorf("Sweep = %v, want 90", arc.Sweep())
	}
	if !arc.Contains(1430) || !arc.Contains(10) || arc.Contains(60) {
		t.Error("wrapping arc containment wrong")
	}
	a0, a1 := arc.Angles()
	if !near(a0, timeline.AngleForMinute(1380)) || !near(a1-a0, 22.5) {
		t.Errorf("Angles = %v, %v", a0, a1)
	}
}

func TestSegmentSpans(t *testing.T) {
	intervals := []models.Interval{
		{ID: "sleep", Start: models.Clock{Hour: 22}, End: models.Clock{Hour: 0, Minute: 20}, Color: models.ColorPurple},
		{ID: "wake", Start: models.Clock{Hour: 0, Minute: 40}, End: models.Clock{Hour: 1}, Color: models.ColorYellow},
	}
	spans := SegmentSpans(intervals, 0)
	want := []struct {
		r    timeline.Range
		kind SpanKind
		id   string
	}{
		{timeline.Range{Start: 0, End: 20}, SpanOccupied, "sleep"},
		{timeline.Range{Start: 20, End: 40}, SpanFree, ""},
		{timeline.Range{Start: 40, End: 60}, SpanOccupied, "wake"},
	}
	if len(spans) != len(want) {
		t.Fatalf("SegmentSpans = %+v", spans)
	}
	for i, w := range want {
		if spans[i].Range != w.r || spans[i].Kind != w.kind || spans[i].IntervalID != w.id {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], w)
		}
	}

	if spans := SegmentSpans(nil, 13); len(spans) != 1 || spans[0].Kind != SpanFree {
		t.Errorf("empty hour should be one free span, got %+v", spans)
	}
}

func TestLabelPosition(t *testing.T) {
	iv := models.Interval{ID: "x", Start: models.Clock{Hour: 23}, End: models.Clock{Hour: 1}}
	p := LabelPosition(iv, center, 50)
	// Midpoint of 23:00-01:00 is midnight, straight up.
	if !near(p.X, 100) || !near(p.Y, 50) {
		t.Errorf("LabelPosition = %v", p)
	}
}
