// Package config provides configuration types and defaults for ved.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ved/internal/log"
)

// Config holds all configuration options for ved.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Session SessionConfig `mapstructure:"session"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // Help view rendering style: "dark" (default) or "light"
}

// ThemeConfig holds theme customization options. Colors are hex strings
// ("#54A0FF") or ANSI palette indexes ("4"); empty keeps the default.
type ThemeConfig struct {
	Filler string `mapstructure:"filler"` // '~' rows past the end of the buffer
	Status string `mapstructure:"status"` // status row text
	Notice string `mapstructure:"notice"` // transient notices
}

// WatchConfig controls watching the opened file for external changes.
type WatchConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	DebounceMS int  `mapstructure:"debounce_ms"` // quiet period before a change notice
}

// SessionConfig controls the per-file cursor position store.
type SessionConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"` // empty derives ~/.local/state/ved/positions.db
}

// TracingConfig holds debug tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/ved/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/ved/traces/traces.jsonl or empty string if home dir
// unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ved", "traces", "traces.jsonl")
}

// DefaultSessionDBPath returns the default path for the cursor position
// store. Returns ~/.local/state/ved/positions.db or empty string if home
// dir unavailable.
func DefaultSessionDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "ved", "positions.db")
}

// Validate checks the configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func Validate(c Config) error {
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateWatch checks watch configuration for errors.
func ValidateWatch(watch WatchConfig) error {
	if watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", watch.DebounceMS)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			MarkdownStyle: "dark",
		},
		Theme: ThemeConfig{},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 100,
		},
		Session: SessionConfig{
			Enabled: true,
			DBPath:  "", // Derived from state dir at runtime
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# ved Configuration

# UI settings
ui:
  markdown_style: dark  # Help view rendering style: "dark" (default) or "light"

# Theme configuration
# Colors are hex strings ("#54A0FF") or ANSI palette indexes ("4")
theme:
  # filler: "4"         # '~' rows past the end of the buffer
  # status: "#BBBBBB"   # status row text
  # notice: "#FECA57"   # transient notices

# Watch the opened file for external changes and show a notice when it
# differs from the buffer (the buffer is never reloaded)
watch:
  enabled: true
  debounce_ms: 100      # quiet period before a change notice

# Remember the cursor position per file and restore it on open
session:
  enabled: true
  # db_path: ~/.local/state/ved/positions.db

# Debug tracing: one span per input event
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/ved/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// The template is hand-maintained; refuse to plant a file that does
	// not parse as YAML
	var check map[string]any
	if err := yaml.Unmarshal([]byte(DefaultConfigTemplate()), &check); err != nil {
		return fmt.Errorf("default config template is invalid: %w", err)
	}

	if err := writeAtomic(configPath, []byte(DefaultConfigTemplate())); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
