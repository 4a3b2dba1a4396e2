package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/models"
)

func sample() []models.Interval {
	return []models.Interval{
		{ID: "b", Title: "Lunch", Start: models.Clock{Hour: 12}, End: models.Clock{Hour: 13}},
		{ID: "a", Title: "Standup", Start: models.Clock{Hour: 9}, End: models.Clock{Hour: 9, Minute: 15}},
	}
}

func TestFormatSchedule(t *testing.T) {
	got := FormatSchedule(sample())
	want := "09:00-09:15: Standup\n12:00-13:00: Lunch\n"
	if got != want {
		t.Errorf("FormatSchedule = %q, want %q", got, want)
	}
	if FormatSchedule(nil) != "" {
		t.Error("empty list should format to an empty string")
	}
}

func TestAnalyzeEmptySkipsRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL, APIKey: "k"})
	text, ok := c.Analyze(context.Background(), nil)
	if !ok || text != constants.EmptyScheduleMessage {
		t.Errorf("got %q %v", text, ok)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("no request should be made for an empty schedule")
	}
}

func TestAnalyzeRequestShape(t *testing.T) {
	var got chatRequest
	var auth, ctype string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		ctype = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Looks balanced."}}]}`))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL, APIKey: "secret"})
	text, ok := c.Analyze(context.Background(), sample())
	if !ok || text != "Looks balanced." {
		t.Fatalf("got %q %v", text, ok)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}
	if ctype != "application/json" {
		t.Errorf("Content-Type = %q", ctype)
	}
	if got.Model != constants.DefaultAnalysisModel || got.MaxTokens != 500 || got.Temperature != 0.7 {
		t.Errorf("unexpected parameters %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	if !strings.HasSuffix(got.Messages[1].Content, "09:00-09:15: Standup\n12:00-13:00: Lunch\n") {
		t.Errorf("user message missing schedule: %q", got.Messages[1].Content)
	}
}

func TestAnalyzeFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		withKey bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, true},
		{"unauthorized", http.StatusUnauthorized, `{}`, true},
		{"malformed json", http.StatusOK, `not json`, true},
		{"no choices", http.StatusOK, `{"choices":[]}`, true},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, true},
		{"missing key", http.StatusOK, `{"choices":[{"message":{"content":"x"}}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			cfg := Config{Endpoint: srv.URL}
			if tt.withKey {
				cfg.APIKey = "k"
			}
			text, ok := New(cfg).Analyze(context.Background(), sample())
			if ok || text != "" {
				t.Errorf("expected failure, got %q %v", text, ok)
			}
		})
	}
}

func TestAnalyzeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, ok := New(Config{Endpoint: url, APIKey: "k"}).Analyze(context.Background(), sample()); ok {
		t.Error("expected failure for a closed server")
	}
}
