package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/tokei/internal/analysis"
	"github.com/julianstephens/tokei/internal/backup"
	"github.com/julianstephens/tokei/internal/config"
	"github.com/julianstephens/tokei/internal/keyring"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
	"github.com/julianstephens/tokei/internal/schedule"
	"github.com/julianstephens/tokei/internal/storage"
)

// ErrBackupUnsupported is returned by backup commands on non-SQLite backends.
var ErrBackupUnsupported = errors.New("backups are only supported for the sqlite backend")

// Context carries what every command needs.
type Context struct {
	Store    storage.Provider
	Backend  storage.Backend
	Target   string
	Config   *config.Config
	Location *time.Location

	Out io.Writer
	In  io.Reader
	Now func() time.Time
	// Ctx is cancelled on SIGINT or SIGTERM.
	Ctx context.Context

	// NewAnalyzer overrides the analysis client, for tests.
	NewAnalyzer func() analysis.Analyzer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) in() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now().In(c.loc())
	}
	return time.Now().In(c.loc())
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Today returns the current day key.
func (c *Context) Today() string {
	return models.FormatDayKey(c.now())
}

// ResolveDay accepts "", today, tomorrow, yesterday or YYYY-MM-DD.
func (c *Context) ResolveDay(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.Today(), nil
	case "tomorrow":
		return models.ShiftDayKey(c.Today(), 1)
	case "yesterday":
		return models.ShiftDayKey(c.Today(), -1)
	}
	if !models.ValidDayKey(s) {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD, today, tomorrow or yesterday", s)
	}
	return s, nil
}

// OpenSchedule builds a schedule store with day active.
func (c *Context) OpenSchedule(day string) (*schedule.Store, error) {
	return schedule.New(c.Store, day, schedule.Options{})
}

// Analyzer returns the analysis client configured for this run.
func (c *Context) Analyzer() analysis.Analyzer {
	if c.NewAnalyzer != nil {
		return c.NewAnalyzer()
	}
	cfg := c.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return analysis.New(analysis.Config{
		Endpoint:    cfg.Analysis.Endpoint,
		Model:       cfg.Analysis.Model,
		APIKey:      apiKey(),
		MaxTokens:   cfg.Analysis.MaxTokens,
		Temperature: cfg.Analysis.Temperature,
		Timeout:     cfg.AnalysisTimeout(),
	})
}

// apiKey prefers the environment over the keyring.
func apiKey() string {
	if key := config.APIKeyFromEnv(); key != "" {
		return key
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Warn("failed to read API key from keyring", "error", err)
		}
		return ""
	}
	return key
}

// BackupManager returns a manager for the SQLite database file.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if storage.Resolve(c.Backend, c.Target) != storage.BackendSQLite {
		return nil, ErrBackupUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates a backup when the backend supports it and
// only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// confirm asks a yes/no question on the command input.
func (c *Context) confirm(prompt string) (bool, error) {
	c.printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.in()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func newTable(headers ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	bold := color.New(color.Bold)
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = bold.Sprint(h)
	}
	tbl.AddRow(row...)
	return tbl
}

// conflictMessage explains a rejected save.
func conflictMessage(err error) (string, bool) {
	var conflict *schedule.ConflictError
	if !errors.As(err, &conflict) {
		return "", false
	}
	return fmt.Sprintf("%s %s overlaps %s %q",
		conflict.Candidate.Span(), conflict.Candidate.DisplayTitle(),
		conflict.Existing.Span(), conflict.Existing.DisplayTitle()), true
}

func formatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
