// Package config loads trellis runtime configuration from YAML files and
// TRELLIS_* environment variables.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/trellis/pkg/errors"
)

// Backend kinds.
const (
	BackendTcell = "tcell"
	BackendSim   = "sim"
)

// Config is the top-level runtime configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Render  RenderConfig  `yaml:"render"`
	Input   InputConfig   `yaml:"input"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Trace   TraceConfig   `yaml:"trace"`
}

// BackendConfig selects the cell-grid backend.
type BackendConfig struct {
	Kind string `yaml:"kind"`
	// Width and Height size the simulation screen.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig controls the expose pipeline.
type RenderConfig struct {
	Cull     bool          `yaml:"cull"`
	TickRate time.Duration `yaml:"tick_rate"`
}

// InputConfig controls how terminal input becomes widget events.
type InputConfig struct {
	// SynthesizeKeyRelease emits a release right after every key press;
	// terminals never report releases.
	SynthesizeKeyRelease bool `yaml:"synthesize_key_release"`
	// DeliverKeysWhenInactive hands key and text events to widgets that are not Active.
	DeliverKeysWhenInactive bool `yaml:"deliver_keys_when_inactive"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives JSON log lines. Empty discards logs.
	File string `yaml:"file"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the server.
	Addr string `yaml:"addr"`
}

// TraceConfig configures OpenTelemetry span export.
type TraceConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Kind:   BackendTcell,
			Width:  80,
			Height: 24,
		},
		Render: RenderConfig{
			Cull: true,
		},
		Input: InputConfig{
			SynthesizeKeyRelease: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration with the following precedence (highest first):
//  1. Environment variables
//  2. Project config (./.trellis/config.yaml)
//  3. User config (~/.trellis/config.yaml)
//  4. Built-in defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".trellis", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	projectConfigPath := filepath.Join(".", ".trellis", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, expandHomeDir(path)); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRELLIS_BACKEND"); v != "" {
		cfg.Backend.Kind = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := envInt("TRELLIS_SIM_WIDTH"); ok {
		cfg.Backend.Width = v
	}
	if v, ok := envInt("TRELLIS_SIM_HEIGHT"); ok {
		cfg.Backend.Height = v
	}
	if val, ok := envBool("TRELLIS_CULL"); ok {
		cfg.Render.Cull = val
	}
	if v := os.Getenv("TRELLIS_TICK_RATE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Render.TickRate = d
		}
	}
	if val, ok := envBool("TRELLIS_SYNTH_KEY_RELEASE"); ok {
		cfg.Input.SynthesizeKeyRelease = val
	}
	if val, ok := envBool("TRELLIS_KEYS_WHEN_INACTIVE"); ok {
		cfg.Input.DeliverKeysWhenInactive = val
	}
	if v := os.Getenv("TRELLIS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TRELLIS_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("TRELLIS_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if val, ok := envBool("TRELLIS_TRACE"); ok {
		cfg.Trace.Enabled = val
	}
	if v := os.Getenv("TRELLIS_TRACE_FILE"); v != "" {
		cfg.Trace.File = v
	}
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func envInt(key string) (int, bool) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks the configuration for values the runtime cannot use.
func (c *Config) Validate() error {
	switch c.Backend.Kind {
	case BackendTcell, BackendSim:
	default:
		return errors.New(errors.ErrCodeConfigInvalid, "invalid backend kind").
			WithContext("kind", c.Backend.Kind).
			WithRemediation("set backend.kind to tcell or sim")
	}

	if c.Backend.Kind == BackendSim && (c.Backend.Width <= 0 || c.Backend.Height <= 0) {
		return errors.New(errors.ErrCodeConfigInvalid, "simulation screen needs a positive size").
			WithContext("width", c.Backend.Width).
			WithContext("height", c.Backend.Height)
	}

	if c.Render.TickRate < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "tick rate must not be negative").
			WithContext("tick_rate", c.Render.TickRate)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "warning": true, "error": true,
	}
	if !validLevels[strings.ToLower(strings.TrimSpace(c.Log.Level))] {
		return errors.New(errors.ErrCodeConfigInvalid, "invalid log level").
			WithContext("level", c.Log.Level).
			WithRemediation("use debug, info, warn or error")
	}

	if c.Trace.Enabled && strings.TrimSpace(c.Trace.File) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "tracing enabled without trace.file").
			WithRemediation("set trace.file; stdout belongs to the terminal UI")
	}

	return nil
}

// LogPath returns the log file path with ~ expanded.
func (c *Config) LogPath() string {
	return expandHomeDir(c.Log.File)
}

// TracePath returns the trace file path with ~ expanded.
func (c *Config) TracePath() string {
	return expandHomeDir(c.Trace.File)
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return home
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
