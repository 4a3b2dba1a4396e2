package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/scroll"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != "auto" || cfg.Analysis.Model != constants.DefaultAnalysisModel {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions = %v, want 0600", info.Mode().Perm())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Storage.Backend = "json"
	cfg.Storage.Path = "/tmp/schedules.json"
	cfg.Timezone = "Europe/Berlin"
	cfg.Scroll.Threshold = 120

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Storage != cfg.Storage || got.Timezone != "Europe/Berlin" || got.Scroll.Threshold != 120 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: diskv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != "diskv" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != constants.DefaultDBPath || cfg.RolloverCron != constants.DefaultRolloverCron {
		t.Errorf("missing values not filled: %+v", cfg)
	}
	if cfg.ScrollParams() != scroll.DefaultParams() {
		t.Errorf("scroll params = %+v", cfg.ScrollParams())
	}
	if cfg.AnalysisTimeout() != constants.DefaultAnalysisTimeout {
		t.Errorf("timeout = %v", cfg.AnalysisTimeout())
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		tz      string
		wantErr bool
	}{
		{"", false},
		{"UTC", false},
		{"Asia/Tokyo", false},
		{"Not/AZone", true},
	}
	for _, tt := range tests {
		cfg := &Config{Timezone: tt.tz}
		loc, err := cfg.Location()
		if (err != nil) != tt.wantErr {
			t.Errorf("Location(%q) error = %v, wantErr %v", tt.tz, err, tt.wantErr)
		}
		if tt.tz == "" && loc != time.Local {
			t.Error("empty timezone should resolve to local")
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvDB, "/data/tokei.db")
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvOpenAIKey, "sk-fallback")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.Storage.Path != "/data/tokei.db" {
		t.Errorf("path = %q", cfg.Storage.Path)
	}
	if got := APIKeyFromEnv(); got != "sk-fallback" {
		t.Errorf("APIKeyFromEnv = %q", got)
	}

	t.Setenv(EnvAPIKey, "sk-primary")
	if got := APIKeyFromEnv(); got != "sk-primary" {
		t.Errorf("APIKeyFromEnv = %q", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnv(dir); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	t.Setenv(EnvAPIKey, "")
	os.Unsetenv(EnvAPIKey)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAPIKey+"=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadEnv(dir); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if got := os.Getenv(EnvAPIKey); got != "from-file" {
		t.Errorf("%s = %q", EnvAPIKey, got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/x/tokei.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "x", "tokei.db") {
		t.Errorf("ExpandPath = %q", got)
	}
	conn := "postgres://user@localhost/tokei"
	if got, _ := ExpandPath(conn); got != conn {
		t.Errorf("connection string changed: %q", got)
	}
}
