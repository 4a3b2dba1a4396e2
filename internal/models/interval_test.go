package models

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Clock
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: Clock{0, 0}},
		{name: "afternoon", input: "14:30", want: Clock{14, 30}},
		{name: "single digit hour", input: "9:05", want: Clock{9, 5}},
		{name: "last minute", input: "23:59", want: Clock{23, 59}},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "missing colon", input: "1030", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidClock) {
					t.Errorf("expected ErrInvalidClock, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockFromMinute(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "00:00"},
		{61, "01:01"},
		{1439, "23:59"},
		{1440, "00:00"},
		{-1, "23:59"},
	}
	for _, tt := range tests {
		if got := ClockFromMinute(tt.minute).String(); got != tt.want {
			t.Errorf("ClockFromMinute(%d) = %s, want %s", tt.minute, got, tt.want)
		}
	}
}

func TestInterval_Wraps(t *testing.T) {
	tests := []struct {
		name       string
		start, end Clock
		wraps      bool
		duration   int
	}{
		{name: "morning block", start: Clock{9, 0}, end: Clock{10, 30}, wraps: false, duration: 90},
		{name: "overnight", start: Clock{22, 0}, end: Clock{6, 0}, wraps: true, duration: 480},
		{name: "ends at midnight", start: Clock{23, 0}, end: Clock{0, 0}, wraps: true, duration: 60},
		{name: "zero length is full day", start: Clock{8, 0}, end: Clock{8, 0}, wraps: true, duration: 1440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := NewInterval("x", tt.start, tt.end, ColorRed)
			if iv.Wraps() != tt.wraps {
				t.Errorf("Wraps() = %v, want %v", iv.Wraps(), tt.wraps)
			}
			if iv.Duration() != tt.duration {
				t.Errorf("Duration() = %d, want %d", iv.Duration(), tt.duration)
			}
		})
	}
}

func TestNewHourInterval(t *testing.T) {
	iv := NewHourInterval(23)
	if iv.Span() != "23:00-00:00" {
		t.Errorf("expected 23:00-00:00, got %s", iv.Span())
	}
	if iv.Color != ColorBlue {
		t.Errorf("expected blue, got %s", iv.Color)
	}
	if iv.Title != "" {
		t.Errorf("expected empty title, got %q", iv.Title)
	}
	if iv.ID == "" {
		t.Error("expected generated id")
	}

	other := NewHourInterval(9)
	if other.ID == iv.ID {
		t.Error("expected distinct ids")
	}
	if other.Span() != "09:00-10:00" {
		t.Errorf("expected 09:00-10:00, got %s", other.Span())
	}
}

func TestInterval_DisplayTitle(t *testing.T) {
	iv := NewInterval("  ", Clock{1, 0}, Clock{2, 0}, ColorGreen)
	if iv.DisplayTitle() != "untitled" {
		t.Errorf("expected untitled, got %q", iv.DisplayTitle())
	}
	iv.Title = "Gym"
	if iv.DisplayTitle() != "Gym" {
		t.Errorf("expected Gym, got %q", iv.DisplayTitle())
	}
}

func TestInterval_Validate(t *testing.T) {
	valid := NewInterval("Work", Clock{9, 0}, Clock{17, 0}, ColorOrange)

	tests := []struct {
		name    string
		mutate  func(iv *Interval)
		wantErr bool
	}{
		{name: "valid", mutate: func(iv *Interval) {}, wantErr: false},
		{name: "missing id", mutate: func(iv *Interval) { iv.ID = "" }, wantErr: true},
		{name: "bad start", mutate: func(iv *Interval) { iv.Start = Clock{25, 0} }, wantErr: true},
		{name: "bad end", mutate: func(iv *Interval) { iv.End = Clock{10, -1} }, wantErr: true},
		{name: "bad color", mutate: func(iv *Interval) { iv.Color = "teal" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := valid
			tt.mutate(&iv)
			err := iv.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewInterval_UnknownColorDefaultsToBlue(t *testing.T) {
	iv := NewInterval("x", Clock{1, 0}, Clock{2, 0}, ColorTag("mauve"))
	if iv.Color != DefaultColor {
		t.Errorf("expected %s, got %s", DefaultColor, iv.Color)
	}
}

func TestParseColorTag(t *testing.T) {
	for _, tag := range ColorTags {
		got, err := ParseColorTag(" " + string(tag) + " ")
		if err != nil {
			t.Fatalf("ParseColorTag(%q) failed: %v", tag, err)
		}
		if got != tag {
			t.Errorf("ParseColorTag(%q) = %s", tag, got)
		}
	}
	if got, err := ParseColorTag("PURPLE"); err != nil || got != ColorPurple {
		t.Errorf("expected case-insensitive parse, got %s, %v", got, err)
	}
	if _, err := ParseColorTag("teal"); err == nil {
		t.Error("expected error for unknown color")
	}
}
