package jsonfile

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/julianstephens/tokei/internal/models"
)

func setupTestStore(t *testing.T) (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	store := NewWithFs(fs, "/cfg/tokei.json")
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store, fs
}

func TestInitCreatesEmptyDocument(t *testing.T) {
	store, fs := setupTestStore(t)

	data, err := afero.ReadFile(fs, "/cfg/tokei.json")
	if err != nil {
		t.Fatalf("document not created: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("expected empty object, got %q", data)
	}
	if err := store.Load(); err != nil {
		t.Errorf("Load after Init failed: %v", err)
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	store := NewWithFs(afero.NewMemMapFs(), "/nowhere/tokei.json")
	if err := store.Load(); err == nil {
		t.Fatal("expected error for missing document")
	}
}

func TestSaveAndLoadSchedules(t *testing.T) {
	store, fs := setupTestStore(t)

	days := models.DayMap{
		"2026-03-07": {
			{ID: "a", Title: "Focus", Start: models.Clock{Hour: 9}, End: models.Clock{Hour: 11, Minute: 30}, Color: models.ColorYellow},
		},
	}
	if err := store.SaveSchedules(days); err != nil {
		t.Fatalf("SaveSchedules failed: %v", err)
	}
	if exists, _ := afero.Exists(fs, "/cfg/tokei.json.tmp"); exists {
		t.Error("temp file left behind")
	}

	got, err := store.LoadSchedules()
	if err != nil {
		t.Fatalf("LoadSchedules failed: %v", err)
	}
	if len(got["2026-03-07"]) != 1 || got["2026-03-07"][0] != days["2026-03-07"][0] {
		t.Errorf("round trip mismatch: %+v", got)
	}

	raw, _ := afero.ReadFile(fs, "/cfg/tokei.json")
	for _, key := range []string{`"endHour"`, `"endMinutes"`, `"colorName": "yellow"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("expected %s in stored document", key)
		}
	}
}

func TestLoadSchedules_CorruptDocumentMovedAside(t *testing.T) {
	store, fs := setupTestStore(t)

	if err := afero.WriteFile(fs, "/cfg/tokei.json", []byte("{{{"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadSchedules()
	if err != nil {
		t.Fatalf("LoadSchedules should not fail on corrupt input: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}

	entries, err := afero.ReadDir(fs, "/cfg")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "tokei.json.corrupt-") {
			found = true
		}
	}
	if !found {
		t.Error("expected corrupt document to be moved aside")
	}
}
