// Package config loads the optional YAML settings file for water-spider.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/dariandzirko/water-spider/engine/gpu"
	"github.com/dariandzirko/water-spider/engine/window"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for unreadable YAML, unknown keys or unsupported values.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the user-tunable settings. Window size and animation constants are fixed.
type Config struct {
	Title                string `yaml:"title"`
	Resizable            bool   `yaml:"resizable"`
	LogLevel             string `yaml:"log_level"`
	Profiling            bool   `yaml:"profiling"`
	PowerPreference      string `yaml:"power_preference"`
	ForceFallbackAdapter bool   `yaml:"force_fallback_adapter"`
	PresentMode          string `yaml:"present_mode"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Title:           "water-spider",
		Resizable:       true,
		LogLevel:        "info",
		PowerPreference: "default",
		PresentMode:     "auto",
	}
}

var (
	logLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	powerPreferences = map[string]wgpu.PowerPreference{
		"default": wgpu.PowerPreferenceUndefined,
		"low":     wgpu.PowerPreferenceLowPower,
		"high":    wgpu.PowerPreferenceHighPerformance,
	}
	presentModes = map[string]wgpu.PresentMode{
		"fifo":      wgpu.PresentModeFifo,
		"immediate": wgpu.PresentModeImmediate,
		"mailbox":   wgpu.PresentModeMailbox,
	}
)

// Load reads a YAML config file. An empty path returns Default.
// Keys missing from the file keep their default values.
//
// Parameters:
//   - path: the config file path, or "" for defaults
//
// Returns:
//   - Config: the validated settings
//   - error: a read error, or ErrInvalidConfig (wrapped) for bad contents
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config contents over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the validated settings
//   - error: ErrInvalidConfig (wrapped) for unknown keys, malformed YAML or unsupported values
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes enum values to lower case and rejects unsupported ones.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.PowerPreference = strings.ToLower(strings.TrimSpace(c.PowerPreference))
	c.PresentMode = strings.ToLower(strings.TrimSpace(c.PresentMode))

	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("%w: log_level %q (want debug, info, warn or error)", ErrInvalidConfig, c.LogLevel)
	}
	if _, ok := powerPreferences[c.PowerPreference]; !ok {
		return fmt.Errorf("%w: power_preference %q (want default, low or high)", ErrInvalidConfig, c.PowerPreference)
	}
	if _, ok := presentModes[c.PresentMode]; !ok && c.PresentMode != "auto" {
		return fmt.Errorf("%w: present_mode %q (want auto, fifo, immediate or mailbox)", ErrInvalidConfig, c.PresentMode)
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = Default().Title
	}
	return nil
}

// Level returns the slog level for LogLevel. Unknown values map to Info.
func (c Config) Level() slog.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// ContextOptions converts the adapter and presentation settings into GPU context options.
func (c Config) ContextOptions() []gpu.ContextBuilderOption {
	opts := []gpu.ContextBuilderOption{
		gpu.WithPowerPreference(powerPreferences[c.PowerPreference]),
		gpu.WithForceFallbackAdapter(c.ForceFallbackAdapter),
	}
	if mode, ok := presentModes[c.PresentMode]; ok {
		opts = append(opts, gpu.WithPresentMode(mode))
	}
	return opts
}

// WindowOptions converts the window settings into window options.
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Title),
		window.WithResizable(c.Resizable),
	}
}
