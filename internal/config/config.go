// Package config loads lined.toml, the per-project settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"lined/internal/buffer"
)

// FileName is the settings file looked up from the working directory upwards.
const FileName = "lined.toml"

// Config mirrors lined.toml.
type Config struct {
	Limits LimitsConfig `toml:"limits"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type LimitsConfig struct {
	MaxTotalBytes int `toml:"max_total_bytes"`
	MaxLineBytes  int `toml:"max_line_bytes"`
}

type OutputConfig struct {
	Format         string `toml:"format"`     // pretty|json|short
	Color          string `toml:"color"`      // auto|on|off
	PathMode       string `toml:"path_mode"`  // auto|absolute|relative|basename
	Verbose        bool   `toml:"verbose"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type TraceConfig struct {
	Level  string `toml:"level"`  // off|error|file|op|debug
	Output string `toml:"output"` // "-" for stderr
	Format string `toml:"format"` // auto|text|ndjson
}

// Default returns the settings used when no lined.toml exists.
func Default() Config {
	limits := buffer.DefaultLimits()
	return Config{
		Limits: LimitsConfig{
			MaxTotalBytes: limits.MaxTotalBytes,
			MaxLineBytes:  limits.MaxLineBytes,
		},
		Output: OutputConfig{
			Format:         "pretty",
			Color:          "auto",
			PathMode:       "auto",
			MaxDiagnostics: 100,
		},
		Trace: TraceConfig{
			Level:  "off",
			Output: "-",
			Format: "auto",
		},
	}
}

// BufferLimits converts the [limits] section.
func (c Config) BufferLimits() buffer.Limits {
	return buffer.Limits{MaxTotalBytes: c.Limits.MaxTotalBytes, MaxLineBytes: c.Limits.MaxLineBytes}
}

// Find walks up from startDir looking for lined.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path on top of Default. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest lined.toml above startDir, or the defaults.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Limits.MaxTotalBytes <= 0 {
		return fmt.Errorf("[limits].max_total_bytes must be positive, got %d", c.Limits.MaxTotalBytes)
	}
	if c.Limits.MaxLineBytes <= 0 {
		return fmt.Errorf("[limits].max_line_bytes must be positive, got %d", c.Limits.MaxLineBytes)
	}
	if c.Limits.MaxLineBytes > c.Limits.MaxTotalBytes {
		return fmt.Errorf("[limits].max_line_bytes (%d) exceeds max_total_bytes (%d)", c.Limits.MaxLineBytes, c.Limits.MaxTotalBytes)
	}
	if err := oneOf("[output].format", c.Output.Format, "pretty", "json", "short"); err != nil {
		return err
	}
	if err := oneOf("[output].color", c.Output.Color, "auto", "on", "off"); err != nil {
		return err
	}
	if err := oneOf("[output].path_mode", c.Output.PathMode, "auto", "absolute", "relative", "basename"); err != nil {
		return err
	}
	if c.Output.MaxDiagnostics <= 0 {
		return fmt.Errorf("[output].max_diagnostics must be positive, got %d", c.Output.MaxDiagnostics)
	}
	if err := oneOf("[trace].level", c.Trace.Level, "off", "error", "file", "op", "debug"); err != nil {
		return err
	}
	return oneOf("[trace].format", c.Trace.Format, "auto", "text", "ndjson")
}

func oneOf(key, value string, allowed ...string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%s: invalid value %q (expected %s)", key, value, strings.Join(allowed, "|"))
}
