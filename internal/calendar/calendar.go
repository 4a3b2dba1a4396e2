// Package calendar converts one day's intervals to and from iCalendar.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
)

const (
	productID = "-//tokei//schedule//EN"

	// PropertyColor carries the interval's color tag.
	PropertyColor = ical.ComponentProperty("X-TOKEI-COLOR")
)

// Export renders intervals as a VCALENDAR with one VEVENT each. Intervals
// that cross midnight end on the following day.
func Export(dayKey string, intervals []models.Interval, loc *time.Location) (string, error) {
	day, err := models.ParseDayKey(dayKey, loc)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := time.Now().UTC()
	for _, iv := range intervals {
		start, end := bounds(day, iv)
		ev := cal.AddEvent(iv.ID)
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(iv.Title)
		ev.SetProperty(PropertyColor, iv.Color.String())
	}
	return cal.Serialize(), nil
}

// bounds places iv on the calendar day starting at day.
func bounds(day time.Time, iv models.Interval) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	start := time.Date(y, m, d, iv.Start.Hour, iv.Start.Minute, 0, 0, loc)
	endDay := d
	if iv.Wraps() {
		endDay++
	}
	end := time.Date(y, m, endDay, iv.End.Hour, iv.End.Minute, 0, 0, loc)
	return start, end
}

// Import reads the timed VEVENTs that start on dayKey in loc. Events that
// cannot be turned into an interval are logged and skipped.
func Import(r io.Reader, dayKey string, loc *time.Location) ([]models.Interval, error) {
	if loc == nil {
		loc = time.Local
	}
	if !models.ValidDayKey(dayKey) {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidDayKey, dayKey)
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	intervals := []models.Interval{}
	for _, ev := range cal.Events() {
		iv, err := fromEvent(ev, dayKey, loc)
		if err != nil {
			if !errors.Is(err, errOtherDay) {
				logger.Warn("skipping calendar event", "error", err)
			}
			continue
		}
		intervals = append(intervals, iv)
	}
	models.SortIntervals(intervals)
	return intervals, nil
}

var errOtherDay = errors.New("event starts on another day")

func fromEvent(ev *ical.VEvent, dayKey string, loc *time.Location) (models.Interval, error) {
	prop := ev.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return models.Interval{}, errors.New("missing DTSTART")
	}
	if !strings.Contains(prop.Value, "T") {
		return models.Interval{}, fmt.Errorf("all-day event %q is not supported", prop.Value)
	}

	start, err := ev.GetStartAt()
	if err != nil {
		return models.Interval{}, fmt.Errorf("invalid DTSTART: %w", err)
	}
	start = start.In(loc)
	if models.FormatDayKey(start) != dayKey {
		return models.Interval{}, errOtherDay
	}

	end, err := ev.GetEndAt()
	if err != nil {
		return models.Interval{}, fmt.Errorf("invalid DTEND: %w", err)
	}
	end = end.In(loc)
	if !end.After(start) {
		return models.Interval{}, fmt.Errorf("event ends before it starts")
	}
	if end.Sub(start) > 24*time.Hour {
		return models.Interval{}, fmt.Errorf("event longer than a day")
	}

	iv := models.Interval{
		Start: models.Clock{Hour: start.Hour(), Minute: start.Minute()},
		End:   models.Clock{Hour: end.Hour(), Minute: end.Minute()},
		Color: models.DefaultColor,
	}
	if p := ev.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		iv.ID = strings.TrimSpace(p.Value)
	}
	if iv.ID == "" {
		iv.ID = uuid.New().String()
	}
	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		iv.Title = unescapeText(p.Value)
	}
	if p := ev.GetProperty(PropertyColor); p != nil {
		if c, err := models.ParseColorTag(p.Value); err == nil {
			iv.Color = c
		}
	}
	return iv, iv.Validate()
}

var textUnescaper = strings.NewReplacer(`\\`, `\`, `\,`, ",", `\;`, ";", `\n`, "\n", `\N`, "\n")

// unescapeText reverses RFC 5545 TEXT escaping.
func unescapeText(s string) string {
	return textUnescaper.Replace(s)
}
