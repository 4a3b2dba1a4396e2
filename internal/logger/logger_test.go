package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if _, err := os.Stat(filepath.Dir(LogPath(configDir))); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", filepath.Dir(LogPath(configDir)))
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestLogPath(t *testing.T) {
	got := LogPath("/tmp/cfg")
	want := filepath.Join("/tmp/cfg", "logs", "tokei.log")
	if got != want {
		t.Errorf("LogPath = %s, want %s", got, want)
	}
}

func TestInitWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false)
	t.Cleanup(func() { Logger = nil })

	Debug("hidden debug")
	Warn("visible warning", "day", "2026-03-07")

	out := buf.String()
	if strings.Contains(out, "hidden debug") {
		t.Errorf("debug message written at warn level: %q", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, "day=2026-03-07") {
		t.Errorf("expected warning with key/value pair, got %q", out)
	}

	buf.Reset()
	InitWriter(&buf, true)
	Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("expected debug output in debug mode, got %q", buf.String())
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil
	// Must not panic.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
