package codec

import (
	"errors"
	"sort"
	"testing"

	"github.com/julianstephens/tokei/internal/models"
)

func TestRoundTripDay(t *testing.T) {
	in := []models.Interval{
		{ID: "b", Title: "Sleep", Start: models.Clock{Hour: 23}, End: models.Clock{Hour: 7, Minute: 30}, Color: models.ColorPurple},
		{ID: "a", Title: "", Start: models.Clock{Hour: 9}, End: models.Clock{Hour: 10}, Color: models.ColorBlue},
	}
	data, err := EncodeDay(in)
	if err != nil {
		t.Fatalf("EncodeDay failed: %v", err)
	}
	res := DecodeDay(data)
	if res.Err != nil || res.Skipped != 0 {
		t.Fatalf("unexpected decode result: %+v", res)
	}
	if len(res.Intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(res.Intervals))
	}
	// Decoding sorts by start.
	if res.Intervals[0] != in[1] || res.Intervals[1] != in[0] {
		t.Errorf("round trip mismatch: %+v", res.Intervals)
	}
}

func TestDecodeDay_SkipsMalformedRecords(t *testing.T) {
	data := []byte(`[
		{"id":"ok","title":"Work","hour":9,"minutes":0,"endHour":17,"endMinutes":0,"colorName":"orange"},
		{"id":"bad-hour","title":"x","hour":25,"minutes":0,"endHour":1,"endMinutes":0,"colorName":"red"},
		{"id":"wrong-type","hour":"nine"},
		{"title":"no id","hour":1,"minutes":0,"endHour":2,"endMinutes":0},
		{"id":"ok","title":"duplicate","hour":1,"minutes":0,"endHour":2,"endMinutes":0},
		null,
		{"id":"odd-color","title":"y","hour":18,"minutes":15,"endHour":19,"endMinutes":0,"colorName":"chartreuse"}
	]`)
	res := DecodeDay(data)
	if res.Err != nil {
		t.Fatalf("unexpected day error: %v", res.Err)
	}
	if res.Skipped != 5 {
		t.Errorf("expected 5 skipped records, got %d", res.Skipped)
	}
	if len(res.Intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %+v", res.Intervals)
	}
	if res.Intervals[1].ID != "odd-color" || res.Intervals[1].Color != models.ColorBlue {
		t.Errorf("unknown color should decode as blue, got %+v", res.Intervals[1])
	}
}

func TestDecodeDay_CorruptPayload(t *testing.T) {
	res := DecodeDay([]byte(`{"not":"an array"}`))
	if !errors.Is(res.Err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", res.Err)
	}
	if res.Intervals == nil || len(res.Intervals) != 0 {
		t.Errorf("expected empty non-nil list, got %v", res.Intervals)
	}
}

func TestDecodeMap(t *testing.T) {
	data := []byte(`{
		"2026-03-07": [{"id":"a","title":"Run","hour":6,"minutes":0,"endHour":7,"endMinutes":0,"colorName":"green"}],
		"2026-03-08": "garbage",
		"yesterday": [],
		"2026-03-09": [{"id":"b"}]
	}`)
	days, report, err := DecodeMap(data)
	if err != nil {
		t.Fatalf("DecodeMap failed: %v", err)
	}
	if len(days["2026-03-07"]) != 1 {
		t.Errorf("expected one interval on 2026-03-07, got %v", days["2026-03-07"])
	}
	if got, ok := days["2026-03-08"]; !ok || len(got) != 0 {
		t.Errorf("corrupt day should decode to empty list, got %v (present=%v)", got, ok)
	}
	if _, ok := days["yesterday"]; ok {
		t.Error("invalid day key should be dropped")
	}
	// {"id":"b"} decodes with 00:00-00:00, which is a valid full-day interval.
	if len(days["2026-03-09"]) != 1 {
		t.Errorf("expected one interval on 2026-03-09, got %v", days["2026-03-09"])
	}

	sort.Strings(report.BadDays)
	if len(report.BadDays) != 2 || report.BadDays[0] != "2026-03-08" || report.BadDays[1] != "yesterday" {
		t.Errorf("unexpected bad days: %v", report.BadDays)
	}
}

func TestDecodeMap_NotAnObject(t *testing.T) {
	days, _, err := DecodeMap([]byte(`[1,2,3]`))
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
	if days == nil || len(days) != 0 {
		t.Errorf("expected empty map, got %v", days)
	}
}

func TestEncodeMap_RoundTrip(t *testing.T) {
	in := models.DayMap{
		"2026-03-07": {
			{ID: "a", Title: "Gym", Start: models.Clock{Hour: 7}, End: models.Clock{Hour: 8}, Color: models.ColorRed},
		},
		"2026-03-08": {},
	}
	data, err := EncodeMap(in)
	if err != nil {
		t.Fatalf("EncodeMap failed: %v", err)
	}
	out, report, err := DecodeMap(data)
	if err != nil {
		t.Fatalf("DecodeMap failed: %v", err)
	}
	if report.SkippedRecords != 0 || len(report.BadDays) != 0 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(out) != 2 || out["2026-03-07"][0] != in["2026-03-07"][0] {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
