// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the neovide UI.
//
// Configuration is loaded from a single YAML file specified by:
//   - NEOVIDE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic configuration with no hidden overrides. Running
// without a config file is fine: every field has a usable default.
//
// The only expansion performed on path values is ${VAR} and
// ${VAR:-default}, so a shared config can say
// capture: ${HOME}/traces/session.nvtrace and stay portable.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the UI.
type Config struct {
	// Editor configures how the editor process is reached.
	Editor EditorConfig `yaml:"editor"`

	// Capture configures traffic capture to a trace file.
	Capture CaptureConfig `yaml:"capture"`

	// Theme configures the palette used before the editor announces
	// its own colors.
	Theme ThemeConfig `yaml:"theme"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`

	// Input configures UI-level key bindings.
	Input InputConfig `yaml:"input"`
}

// EditorConfig configures how the editor process is reached.
type EditorConfig struct {
	// Command is the editor binary spawned in embedded mode.
	Command string `yaml:"command"`

	// Args are extra arguments appended after the embedding flag.
	Args []string `yaml:"args"`

	// Server is the address of an already-running editor instance, as
	// a host:port pair or a socket path. When set, the UI attaches to
	// it instead of spawning Command.
	Server string `yaml:"server"`
}

// CaptureConfig configures traffic capture.
type CaptureConfig struct {
	// Path is the trace file to write. Empty disables capture.
	Path string `yaml:"path"`

	// Compression is the per-record compression: "none", "lz4", or
	// "zstd".
	Compression string `yaml:"compression"`
}

// ThemeConfig configures the startup palette.
type ThemeConfig struct {
	// Palette is a JSONC palette file. The palette applies from the
	// first frame until the editor's own default colors arrive.
	Palette string `yaml:"palette"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// File receives JSON logs. While the UI owns the terminal,
	// stderr is unusable, so without a file all logs are dropped.
	File string `yaml:"file"`
}

// InputConfig configures UI-level key bindings, in the key notation of
// the terminal input layer (for example "ctrl+q" or "f12"). These keys
// are consumed by the UI and never forwarded to the editor.
type InputConfig struct {
	// Quit exits the UI.
	Quit string `yaml:"quit"`

	// ToggleHUD shows and hides the diagnostic overlay.
	ToggleHUD string `yaml:"toggle_hud"`
}

// Default returns the default configuration: spawn "nvim" embedded,
// no capture, no palette file, warn-level logging, ctrl+q to quit.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Command: "nvim",
		},
		Capture: CaptureConfig{
			Compression: "zstd",
		},
		Log: LogConfig{
			Level: "warn",
		},
		Input: InputConfig{
			Quit:      "ctrl+q",
			ToggleHUD: "f12",
		},
	}
}

// Load loads configuration from the NEOVIDE_CONFIG environment
// variable, or returns the defaults when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv("NEOVIDE_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values from
// the file are merged over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// values.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Capture.Path = expandVars(c.Capture.Path, vars)
	c.Theme.Palette = expandVars(c.Theme.Palette, vars)
	c.Log.File = expandVars(c.Log.File, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Editor.Command == "" && c.Editor.Server == "" {
		errs = append(errs, fmt.Errorf("editor.command or editor.server is required"))
	}

	compressionValues := []string{"none", "lz4", "zstd"}
	if c.Capture.Compression != "" && !slices.Contains(compressionValues, c.Capture.Compression) {
		errs = append(errs, fmt.Errorf("capture.compression must be one of: %v", compressionValues))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses Log.Level into a slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// EditorPath resolves the configured editor command to an executable
// path via PATH lookup. Absolute and relative commands pass through
// LookPath unchanged apart from existence checking.
func (c *Config) EditorPath() (string, error) {
	path, err := exec.LookPath(c.Editor.Command)
	if err != nil {
		return "", fmt.Errorf("editor %q not found: %w", c.Editor.Command, err)
	}
	return path, nil
}
