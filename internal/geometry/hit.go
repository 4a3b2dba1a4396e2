package geometry

import (
	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/timeline"
)

// IntervalLocator answers which interval, if any, covers a minute and which
// parts of a segment are free. *schedule.Store satisfies it.
type IntervalLocator interface {
	IntervalAt(minute int) (models.Interval, bool)
	FreeRanges(segStart, segEnd int) []timeline.Range
}

// HitKind classifies a tap on the dial.
type HitKind int

const (
	HitNone HitKind = iota
	HitInterval
	HitEmpty
)

// Hit is the result of resolving a tap.
type Hit struct {
	Kind   HitKind
	Minute int
	// Interval is the existing interval under the tap for HitInterval.
	Interval models.Interval
	// Proposal is a new interval covering the free span under the tap for
	// HitEmpty.
	Proposal models.Interval
}

// Resolve turns a tap at p into a hit against the intervals known to loc.
// A tap on an empty part of the dial proposes an untitled interval spanning
// the free part of that hour around the tap.
func Resolve(loc IntervalLocator, p, center Point, radius float64) Hit {
	minute, ok := PointToMinute(p, center, radius)
	if !ok {
		return Hit{Kind: HitNone}
	}
	if iv, found := loc.IntervalAt(minute); found {
		return Hit{Kind: HitInterval, Minute: minute, Interval: iv}
	}

	hour := minute / constants.MinutesPerHour
	proposal := models.NewHourInterval(hour)
	seg := timeline.HourSegment(hour)
	for _, free := range loc.FreeRanges(seg.Start, seg.End) {
		if minute >= free.Start && minute < free.End {
			proposal.Start = models.ClockFromMinute(free.Start)
			proposal.End = models.ClockFromMinute(free.End)
			break
		}
	}
	return Hit{Kind: HitEmpty, Minute: minute, Proposal: proposal}
}
