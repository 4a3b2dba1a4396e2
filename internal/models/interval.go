package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/tokei/internal/constants"
)

var (
	// ErrInvalidClock is returned for hour/minute values outside 00:00-23:59.
	ErrInvalidClock = errors.New("invalid clock time")
	// ErrInvalidInterval is returned when an interval fails validation.
	ErrInvalidInterval = errors.New("invalid interval")
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// NewClock validates and builds a Clock.
func NewClock(hour, minute int) (Clock, error) {
	c := Clock{Hour: hour, Minute: minute}
	if !c.Valid() {
		return Clock{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return c, nil
}

// ClockFromMinute converts a minute-of-day to a Clock, wrapping values
// outside [0,1440).
func ClockFromMinute(m int) Clock {
	m = ((m % constants.MinutesPerDay) + constants.MinutesPerDay) % constants.MinutesPerDay
	return Clock{Hour: m / constants.MinutesPerHour, Minute: m % constants.MinutesPerHour}
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(hour, minute)
}

func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour < constants.HoursPerDay && c.Minute >= 0 && c.Minute < constants.MinutesPerHour
}

// MinuteOfDay returns the clock as minutes since midnight.
func (c Clock) MinuteOfDay() int {
	return c.Hour*constants.MinutesPerHour + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Interval is one schedule entry on the 24-hour dial. When End is not after
// Start the interval wraps past midnight.
type Interval struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Start Clock    `json:"start"`
	End   Clock    `json:"end"`
	Color ColorTag `json:"color"`
}

// NewInterval creates an interval with a fresh id.
func NewInterval(title string, start, end Clock, color ColorTag) Interval {
	if !color.Valid() {
		color = DefaultColor
	}
	return Interval{
		ID:    uuid.New().String(),
		Title: title,
		Start: start,
		End:   end,
		Color: color,
	}
}

// NewHourInterval proposes the default interval for an empty hour segment:
// one hour long, untitled, blue. 23:00 proposes 23:00-00:00.
func NewHourInterval(hour int) Interval {
	hour = ((hour % constants.HoursPerDay) + constants.HoursPerDay) % constants.HoursPerDay
	return NewInterval("",
		Clock{Hour: hour},
		Clock{Hour: (hour + 1) % constants.HoursPerDay},
		DefaultColor,
	)
}

func (iv Interval) StartMinute() int {
	return iv.Start.MinuteOfDay()
}

func (iv Interval) EndMinute() int {
	return iv.End.MinuteOfDay()
}

// Wraps reports whether the interval crosses midnight.
func (iv Interval) Wraps() bool {
	return iv.EndMinute() <= iv.StartMinute()
}

// Duration returns the length in minutes. An interval whose end equals its
// start covers the whole day.
func (iv Interval) Duration() int {
	d := iv.EndMinute() - iv.StartMinute()
	if d <= 0 {
		d += constants.MinutesPerDay
	}
	return d
}

// DisplayTitle returns the title, or the untitled label when empty.
func (iv Interval) DisplayTitle() string {
	if strings.TrimSpace(iv.Title) == "" {
		return constants.UntitledLabel
	}
	return iv.Title
}

// Span formats the interval as "HH:MM-HH:MM".
func (iv Interval) Span() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Validate checks the clock ranges and color tag.
func (iv Interval) Validate() error {
	if iv.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidInterval)
	}
	if !iv.Start.Valid() {
		return fmt.Errorf("%w: start %s", ErrInvalidInterval, iv.Start)
	}
	if !iv.End.Valid() {
		return fmt.Errorf("%w: end %s", ErrInvalidInterval, iv.End)
	}
	if !iv.Color.Valid() {
		return fmt.Errorf("%w: color %q", ErrInvalidInterval, iv.Color)
	}
	return nil
}
