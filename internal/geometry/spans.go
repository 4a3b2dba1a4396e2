package geometry

import (
	"sort"

	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/timeline"
)

// SpanKind tells whether part of an hour segment is free or booked.
type SpanKind int

const (
	SpanFree SpanKind = iota
	SpanOccupied
)

// Span is one piece of an hour segment.
type Span struct {
	Range      timeline.Range
	Kind       SpanKind
	IntervalID string
	Color      models.ColorTag
}

// SegmentSpans splits hour into booked pieces (tagged with their interval)
// and free pieces. The spans are ordered and cover the hour exactly once
// when intervals do not overlap.
func SegmentSpans(intervals []models.Interval, hour int) []Span {
	seg := timeline.HourSegment(hour)

	var spans []Span
	ranges := make([]timeline.Range, 0, len(intervals))
	for _, iv := range intervals {
		r := timeline.Range{Start: iv.StartMinute(), End: iv.EndMinute()}
		ranges = append(ranges, r)
		for _, piece := range timeline.Occupied([]timeline.Range{r}, seg.Start, seg.End) {
			spans = append(spans, Span{Range: piece, Kind: SpanOccupied, IntervalID: iv.ID, Color: iv.Color})
		}
	}
	for _, free := range timeline.Gaps(ranges, seg.Start, seg.End) {
		spans = append(spans, Span{Range: free, Kind: SpanFree})
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Range.Start < spans[j].Range.Start
	})
	return spans
}

// LabelPosition places an interval's label at its circular midpoint.
func LabelPosition(iv models.Interval, center Point, r float64) Point {
	mid := timeline.Midpoint(timeline.Range{Start: iv.StartMinute(), End: iv.EndMinute()})
	return MinuteToPoint(float64(mid), center, r)
}
