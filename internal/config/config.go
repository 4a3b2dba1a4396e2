// Package config loads and saves the YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/scroll"
)

// Environment variables that override file settings.
const (
	EnvDB        = "TOKEI_DB"
	EnvAPIKey    = "TOKEI_API_KEY"
	EnvOpenAIKey = "OPENAI_API_KEY"
)

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	// Backend is one of auto, sqlite, postgres, json or diskv.
	Backend string `yaml:"backend"`
	// Path is a file or directory path, or a PostgreSQL connection string
	// without a password.
	Path string `yaml:"path"`
}

// AnalysisConfig configures the chat-completions client. The API key is
// never read from the file.
type AnalysisConfig struct {
	Endpoint       string  `yaml:"endpoint"`
	Model          string  `yaml:"model"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// ScrollConfig mirrors scroll.Params.
type ScrollConfig struct {
	Base        float64 `yaml:"base"`
	PerInterval float64 `yaml:"per_interval"`
	Threshold   float64 `yaml:"threshold"`
	Decay       float64 `yaml:"decay"`
	Stiffness   float64 `yaml:"stiffness"`
	Damping     float64 `yaml:"damping"`
	Drag        float64 `yaml:"drag_sensitivity"`
	Wheel       float64 `yaml:"wheel_sensitivity"`
}

// Config is the top-level application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Scroll   ScrollConfig   `yaml:"scroll"`

	// Timezone is an IANA zone name used for day keys. Empty means local.
	Timezone string `yaml:"timezone"`

	// RolloverCron is the schedule on which the TUI follows today forward.
	RolloverCron string `yaml:"rollover_cron"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	p := scroll.DefaultParams()
	return &Config{
		Storage: StorageConfig{
			Backend: "auto",
			Path:    constants.DefaultDBPath,
		},
		Analysis: AnalysisConfig{
			Endpoint:       constants.DefaultAnalysisURL,
			Model:          constants.DefaultAnalysisModel,
			MaxTokens:      constants.DefaultAnalysisTokens,
			Temperature:    constants.DefaultAnalysisTemp,
			TimeoutSeconds: int(constants.DefaultAnalysisTimeout / time.Second),
		},
		Scroll: ScrollConfig{
			Base:        p.Base,
			PerInterval: p.PerInterval,
			Threshold:   p.Threshold,
			Decay:       p.Decay,
			Stiffness:   p.Stiffness,
			Damping:     p.Damping,
			Drag:        p.DragSensitivity,
			Wheel:       p.WheelSensitivity,
		},
		RolloverCron: constants.DefaultRolloverCron,
	}
}

// Normalize fills in missing or zero values with defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}
	if c.Analysis.Endpoint == "" {
		c.Analysis.Endpoint = d.Analysis.Endpoint
	}
	if c.Analysis.Model == "" {
		c.Analysis.Model = d.Analysis.Model
	}
	if c.Analysis.MaxTokens <= 0 {
		c.Analysis.MaxTokens = d.Analysis.MaxTokens
	}
	if c.Analysis.Temperature <= 0 {
		c.Analysis.Temperature = d.Analysis.Temperature
	}
	if c.Analysis.TimeoutSeconds <= 0 {
		c.Analysis.TimeoutSeconds = d.Analysis.TimeoutSeconds
	}
	if c.Scroll.Base <= 0 {
		c.Scroll.Base = d.Scroll.Base
	}
	if c.Scroll.PerInterval <= 0 {
		c.Scroll.PerInterval = d.Scroll.PerInterval
	}
	if c.Scroll.Threshold <= 0 {
		c.Scroll.Threshold = d.Scroll.Threshold
	}
	if c.Scroll.Decay <= 0 {
		c.Scroll.Decay = d.Scroll.Decay
	}
	if c.Scroll.Stiffness <= 0 {
		c.Scroll.Stiffness = d.Scroll.Stiffness
	}
	if c.Scroll.Damping <= 0 {
		c.Scroll.Damping = d.Scroll.Damping
	}
	if c.Scroll.Drag <= 0 {
		c.Scroll.Drag = d.Scroll.Drag
	}
	if c.Scroll.Wheel <= 0 {
		c.Scroll.Wheel = d.Scroll.Wheel
	}
	if c.RolloverCron == "" {
		c.RolloverCron = d.RolloverCron
	}
}

// ScrollParams converts the scroll section for the controller.
func (c *Config) ScrollParams() scroll.Params {
	return scroll.Params{
		Base:             c.Scroll.Base,
		PerInterval:      c.Scroll.PerInterval,
		Threshold:        c.Scroll.Threshold,
		Decay:            c.Scroll.Decay,
		Stiffness:        c.Scroll.Stiffness,
		Damping:          c.Scroll.Damping,
		DragSensitivity:  c.Scroll.Drag,
		WheelSensitivity: c.Scroll.Wheel,
	}
}

// Location resolves Timezone, falling back to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// AnalysisTimeout returns the configured request timeout.
func (c *Config) AnalysisTimeout() time.Duration {
	return time.Duration(c.Analysis.TimeoutSeconds) * time.Second
}

// ExpandPath resolves a leading ~ in p. Connection strings are returned
// unchanged.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", p, err)
	}
	return expanded, nil
}

// LoadEnv reads a .env file from dir if one exists. Variables already set in
// the environment win.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment overrides onto c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.Storage.Path = v
	}
}

// APIKeyFromEnv returns the analysis API key from the environment, if set.
func APIKeyFromEnv() string {
	if v := os.Getenv(EnvAPIKey); v != "" {
		return v
	}
	return os.Getenv(EnvOpenAIKey)
}

// Load reads the YAML file at path. A missing file is created with defaults
// and those defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tokei-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
