// Package codec converts schedules to and from their stored JSON form.
//
// Each interval is stored as a flat record keyed by day. Decoding is
// tolerant: a malformed record is skipped and a malformed day decodes to an
// empty list, so one bad entry never prevents the rest of a schedule from
// loading.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/tokei/internal/models"
)

// ErrCorrupt is returned when a whole document cannot be parsed.
var ErrCorrupt = errors.New("corrupt schedule document")

// Record is the stored shape of one interval.
type Record struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Hour       int    `json:"hour"`
	Minutes    int    `json:"minutes"`
	EndHour    int    `json:"endHour"`
	EndMinutes int    `json:"endMinutes"`
	ColorName  string `json:"colorName"`
}

// FromInterval builds the stored record for iv.
func FromInterval(iv models.Interval) Record {
	return Record{
		ID:         iv.ID,
		Title:      iv.Title,
		Hour:       iv.Start.Hour,
		Minutes:    iv.Start.Minute,
		EndHour:    iv.End.Hour,
		EndMinutes: iv.End.Minute,
		ColorName:  iv.Color.String(),
	}
}

// Interval converts a record back to an interval. Unknown colors fall back
// to the default color; a missing id or out of range clock is an error.
func (r Record) Interval() (models.Interval, error) {
	if r.ID == "" {
		return models.Interval{}, fmt.Errorf("record missing id")
	}
	start, err := models.NewClock(r.Hour, r.Minutes)
	if err != nil {
		return models.Interval{}, fmt.Errorf("record %s start: %w", r.ID, err)
	}
	end, err := models.NewClock(r.EndHour, r.EndMinutes)
	if err != nil {
		return models.Interval{}, fmt.Errorf("record %s end: %w", r.ID, err)
	}
	color, err := models.ParseColorTag(r.ColorName)
	if err != nil {
		color = models.DefaultColor
	}
	return models.Interval{
		ID:    r.ID,
		Title: r.Title,
		Start: start,
		End:   end,
		Color: color,
	}, nil
}

// DayResult reports how a single day decoded.
type DayResult struct {
	Intervals []models.Interval
	Skipped   int
	// Err is set when the day payload itself was unreadable.
	Err error
}

// EncodeDay encodes one day's intervals as a JSON array of records.
func EncodeDay(intervals []models.Interval) ([]byte, error) {
	records := make([]Record, 0, len(intervals))
	for _, iv := range intervals {
		records = append(records, FromInterval(iv))
	}
	return json.Marshal(records)
}

// DecodeDay decodes a JSON array of records. The result is sorted by start.
func DecodeDay(data []byte) DayResult {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return DayResult{Intervals: []models.Interval{}, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	return decodeRecords(raw)
}

func decodeRecords(raw []json.RawMessage) DayResult {
	res := DayResult{Intervals: make([]models.Interval, 0, len(raw))}
	seen := make(map[string]bool, len(raw))
	for _, msg := range raw {
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			res.Skipped++
			continue
		}
		iv, err := rec.Interval()
		if err != nil || seen[iv.ID] {
			res.Skipped++
			continue
		}
		seen[iv.ID] = true
		res.Intervals = append(res.Intervals, iv)
	}
	models.SortIntervals(res.Intervals)
	return res
}

// Report summarises a whole-map decode.
type Report struct {
	SkippedRecords int
	// BadDays lists day entries that were dropped or emptied.
	BadDays []string
}

// EncodeMap encodes a full day map as {"YYYY-MM-DD": [records...]}.
func EncodeMap(days models.DayMap) ([]byte, error) {
	doc := make(map[string][]Record, len(days))
	for day, intervals := range days {
		records := make([]Record, 0, len(intervals))
		for _, iv := range intervals {
			records = append(records, FromInterval(iv))
		}
		doc[day] = records
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeMap decodes a full day map. Only a document that is not a JSON object
// at all returns an error; day keys that are not dates are dropped and days
// whose value is not an array decode to an empty list.
func DecodeMap(data []byte) (models.DayMap, Report, error) {
	var report Report
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.DayMap{}, report, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	days := make(models.DayMap, len(doc))
	for day, payload := range doc {
		if !models.ValidDayKey(day) {
			report.BadDays = append(report.BadDays, day)
			continue
		}
		res := DecodeDay(payload)
		if res.Err != nil {
			report.BadDays = append(report.BadDays, day)
		}
		report.SkippedRecords += res.Skipped
		days[day] = res.Intervals
	}
	return days, report, nil
}
