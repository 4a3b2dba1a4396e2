package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/storage/postgres"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		target  string
		want    Backend
	}{
		{name: "explicit wins", backend: BackendDiskv, target: "/tmp/x.db", want: BackendDiskv},
		{name: "postgres url", backend: BackendAuto, target: "postgres://u@h/db", want: BackendPostgres},
		{name: "postgresql url", backend: "", target: "postgresql://u@h/db", want: BackendPostgres},
		{name: "json file", backend: BackendAuto, target: "/tmp/tokei.JSON", want: BackendJSON},
		{name: "sqlite default", backend: BackendAuto, target: "/tmp/tokei.db", want: BackendSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.backend, tt.target); got != tt.want {
				t.Errorf("Resolve() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNew_RejectsEmbeddedCredentials(t *testing.T) {
	_, err := New(BackendAuto, "postgres://user:pw@localhost/tokei")
	if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		t.Errorf("expected ErrEmbeddedCredentials, got %v", err)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(Backend("redis"), "x")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

// Every file-backed provider must honour the same contract.
func TestProviders_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	targets := map[Backend]string{
		BackendSQLite: filepath.Join(dir, "tokei.db"),
		BackendJSON:   filepath.Join(dir, "tokei.json"),
		BackendDiskv:  filepath.Join(dir, "days"),
	}
	days := models.DayMap{
		"2026-03-07": {
			{ID: "x", Title: "", Start: models.Clock{Hour: 22, Minute: 15}, End: models.Clock{Hour: 1}, Color: models.ColorRed},
			{ID: "y", Title: "Standup", Start: models.Clock{Hour: 9}, End: models.Clock{Hour: 9, Minute: 15}, Color: models.ColorBlue},
		},
	}

	for backend, target := range targets {
		t.Run(string(backend), func(t *testing.T) {
			p, err := New(backend, target)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if err := p.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer p.Close()

			if err := p.SaveSchedules(days); err != nil {
				t.Fatalf("SaveSchedules failed: %v", err)
			}
			got, err := p.LoadSchedules()
			if err != nil {
				t.Fatalf("LoadSchedules failed: %v", err)
			}
			list := got["2026-03-07"]
			if len(list) != 2 {
				t.Fatalf("expected 2 intervals, got %+v", list)
			}
			// Loaded lists are ordered by start minute.
			if list[0].ID != "y" || list[1] != days["2026-03-07"][0] {
				t.Errorf("unexpected intervals: %+v", list)
			}
		})
	}
}
