package geometry

import (
	"time"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/timeline"
)

// Arc is a clockwise sweep between two minutes of the day. End may be less
// than Start when the arc crosses midnight.
type Arc struct {
	Start float64
	End   float64
}

// Sweep returns the arc length in minutes.
func (a Arc) Sweep() float64 {
	d := a.End - a.Start
	if d < 0 {
		d += constants.MinutesPerDay
	}
	return d
}

// Contains reports whether minute m falls inside the arc.
func (a Arc) Contains(m float64) bool {
	if a.Sweep() >= constants.MinutesPerDay {
		return true
	}
	if a.End >= a.Start {
		return m >= a.Start && m < a.End
	}
	return m >= a.Start || m < a.End
}

// Angles returns the start and end angles in degrees, with end always
// clockwise of start.
func (a Arc) Angles() (float64, float64) {
	start := timeline.AngleForMinute(a.Start)
	return start, start + a.Sweep()/4
}

// ElapsedArc returns the part of the dial that has already passed for day as
// seen at now: the whole dial for a past day, midnight to now for today, and
// nothing for a future day.
func ElapsedArc(day string, now time.Time) (Arc, bool) {
	today := models.FormatDayKey(now)
	switch {
	case day < today:
		return Arc{Start: 0, End: constants.MinutesPerDay}, true
	case day == today:
		m := MinuteOfDay(now)
		if m <= 0 {
			return Arc{}, false
		}
		return Arc{Start: 0, End: m}, true
	default:
		return Arc{}, false
	}
}

// RecordingArc spans from the recording start to now.
func RecordingArc(start, now time.Time) Arc {
	return Arc{Start: MinuteOfDay(start), End: MinuteOfDay(now)}
}
