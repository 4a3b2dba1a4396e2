// Package timeline implements arithmetic over the circular minute-of-day
// domain [0, 1440). A range whose end is not after its start wraps past
// midnight.
package timeline

import (
	"math"
	"sort"

	"github.com/julianstephens/tokei/internal/constants"
)

// Range is a half-open span of minutes [Start, End). When End <= Start the
// range wraps through midnight.
type Range struct {
	Start int
	End   int
}

// Wraps reports whether the range crosses midnight.
func (r Range) Wraps() bool {
	return r.End <= r.Start
}

// Len returns the number of minutes covered by a non-wrapping range, or the
// circular length of a wrapping one.
func (r Range) Len() int {
	if r.Wraps() {
		return constants.MinutesPerDay - r.Start + r.End
	}
	return r.End - r.Start
}

// NormalizeMinute folds any integer into [0, 1440).
func NormalizeMinute(m int) int {
	return ((m % constants.MinutesPerDay) + constants.MinutesPerDay) % constants.MinutesPerDay
}

// Contains reports whether minute t lies in [s, e) on the circle.
func Contains(s, e, t int) bool {
	if e > s {
		return s <= t && t < e
	}
	return t >= s || t < e
}

// Overlaps reports whether two circular ranges intersect. Ranges that only
// touch at an endpoint never overlap, even when one or both wrap.
func Overlaps(a, b Range) bool {
	if a.End == b.Start || b.End == a.Start {
		return false
	}
	aw, bw := a.Wraps(), b.Wraps()
	switch {
	case aw && bw:
		return true
	case aw:
		return b.Start < a.End || b.End > a.Start
	case bw:
		return a.Start < b.End || a.End > b.Start
	default:
		return a.Start < b.End && b.Start < a.End
	}
}

// split returns the non-wrapping pieces of r.
func split(r Range) []Range {
	if !r.Wraps() {
		return []Range{r}
	}
	pieces := make([]Range, 0, 2)
	if r.Start < constants.MinutesPerDay {
		pieces = append(pieces, Range{Start: r.Start, End: constants.MinutesPerDay})
	}
	if r.End > 0 {
		pieces = append(pieces, Range{Start: 0, End: r.End})
	}
	return pieces
}

// Occupied returns the parts of ranges that fall inside the non-wrapping
// segment [segStart, segEnd), clipped and sorted by start.
func Occupied(ranges []Range, segStart, segEnd int) []Range {
	var out []Range
	for _, r := range ranges {
		for _, p := range split(r) {
			start := max(p.Start, segStart)
			end := min(p.End, segEnd)
			if start < end {
				out = append(out, Range{Start: start, End: end})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

// Gaps returns the free sub-ranges of the non-wrapping segment
// [segStart, segEnd) not covered by any of ranges. Together with the output
// of Occupied the result partitions the segment.
func Gaps(ranges []Range, segStart, segEnd int) []Range {
	if segEnd <= segStart {
		return nil
	}
	var free []Range
	cursor := segStart
	for _, p := range Occupied(ranges, segStart, segEnd) {
		if p.Start > cursor {
			free = append(free, Range{Start: cursor, End: p.Start})
		}
		cursor = max(cursor, p.End)
	}
	if cursor < segEnd {
		free = append(free, Range{Start: cursor, End: segEnd})
	}
	return free
}

// HourSegment returns the segment [h*60, (h+1)*60) for hour h.
func HourSegment(hour int) Range {
	hour = ((hour % constants.HoursPerDay) + constants.HoursPerDay) % constants.HoursPerDay
	start := hour * constants.MinutesPerHour
	return Range{Start: start, End: start + constants.MinutesPerHour}
}

// Midpoint returns the minute halfway through r, measured across midnight
// for wrapping ranges.
func Midpoint(r Range) int {
	return NormalizeMinute(r.Start + r.Len()/2)
}

// AngleForMinute maps a minute of day to degrees on the dial: minute 0 is at
// 12 o'clock (-90 degrees in screen coordinates), 15 degrees per hour,
// increasing clockwise.
func AngleForMinute(m float64) float64 {
	return m/4 - 90
}

// MinuteForAngle is the inverse of AngleForMinute, normalised into
// [0, 1440) and truncated to a whole minute.
func MinuteForAngle(deg float64) int {
	m := math.Mod((deg+90)*4, constants.MinutesPerDay)
	if m < 0 {
		m += constants.MinutesPerDay
	}
	// Rounding noise from trigonometry can land a hair below an integer.
	m = math.Floor(m + 1e-9)
	return NormalizeMinute(int(m))
}
