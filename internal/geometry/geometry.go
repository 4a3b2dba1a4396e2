// Package geometry maps between screen coordinates and minutes of the day
// on the 24-hour dial. Screen y grows downward, so angles increase
// clockwise and minute 0 sits at 12 o'clock.
package geometry

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/timeline"
)

// Point is a position in screen space.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// PolarPoint returns the point at angle degrees and distance r from center.
func PolarPoint(center Point, angle, r float64) Point {
	rad := radians(angle)
	return Point{X: center.X + r*math.Cos(rad), Y: center.Y + r*math.Sin(rad)}
}

// PointToMinute returns the minute under p, or false when p lies outside
// the dial.
func PointToMinute(p, center Point, radius float64) (int, bool) {
	dx, dy := p.X-center.X, p.Y-center.Y
	if math.Hypot(dx, dy) > radius {
		return 0, false
	}
	return timeline.MinuteForAngle(degrees(math.Atan2(dy, dx))), true
}

// MinuteToPoint returns the point at minute (fractions allowed) and distance
// r from center.
func MinuteToPoint(minute float64, center Point, r float64) Point {
	return PolarPoint(center, timeline.AngleForMinute(minute), r)
}

// MinuteOfDay returns t's position in the day with sub-minute precision.
func MinuteOfDay(t time.Time) float64 {
	return float64(t.Hour()*constants.MinutesPerHour+t.Minute()) +
		(float64(t.Second())+float64(t.Nanosecond())/1e9)/60
}

// HourHandAngle is the angle of the single 24-hour hand. It advances
// continuously with the minute.
func HourHandAngle(t time.Time) float64 {
	return (float64(t.Hour())+float64(t.Minute())/60)*15 - 90
}

// SecondHandAngle sweeps once per minute without ticking.
func SecondHandAngle(t time.Time) float64 {
	return (float64(t.Second())+float64(t.Nanosecond())/1e9)*6 - 90
}

// Hands holds the tip positions of the clock hands.
type Hands struct {
	Hour   Point
	Second Point
}

// HandTips places the hands for t. hourLen and secondLen are distances from
// center.
func HandTips(t time.Time, center Point, hourLen, secondLen float64) Hands {
	return Hands{
		Hour:   PolarPoint(center, HourHandAngle(t), hourLen),
		Second: PolarPoint(center, SecondHandAngle(t), secondLen),
	}
}

// Numeral is an hour label on the dial face.
type Numeral struct {
	Hour  int
	Label string
	Pos   Point
}

// NumeralPositions places a label every step hours, starting at 0.
func NumeralPositions(center Point, r float64, step int) []Numeral {
	if step <= 0 {
		step = 1
	}
	out := make([]Numeral, 0, constants.HoursPerDay/step+1)
	for h := 0; h < constants.HoursPerDay; h += step {
		out = append(out, Numeral{
			Hour:  h,
			Label: fmt.Sprintf("%d", h),
			Pos:   MinuteToPoint(float64(h*constants.MinutesPerHour), center, r),
		})
	}
	return out
}
