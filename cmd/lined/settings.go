package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lined/internal/buffer"
	"lined/internal/config"
	"lined/internal/diagfmt"
	"lined/internal/prof"
	"lined/internal/trace"
)

// settings is lined.toml with command-line overrides applied.
type settings struct {
	cfg config.Config

	limits         buffer.Limits
	format         string
	color          bool
	pathMode       diagfmt.PathMode
	quiet          bool
	verbose        bool
	timings        bool
	maxDiagnostics int

	traceLevel  trace.Level
	traceFormat trace.Format
	traceOutput string

	profile prof.Options
}

// resolveSettings loads the config file and applies every flag the user set
// explicitly. Flags left at their defaults never override the file.
func resolveSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		var wd string
		wd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("max-total-bytes") {
		if cfg.Limits.MaxTotalBytes, err = flags.GetInt("max-total-bytes"); err != nil {
			return nil, fmt.Errorf("failed to get max-total-bytes flag: %w", err)
		}
	}
	if flags.Changed("max-line-bytes") {
		if cfg.Limits.MaxLineBytes, err = flags.GetInt("max-line-bytes"); err != nil {
			return nil, fmt.Errorf("failed to get max-line-bytes flag: %w", err)
		}
	}
	if flags.Changed("format") {
		if cfg.Output.Format, err = flags.GetString("format"); err != nil {
			return nil, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("path-mode") {
		if cfg.Output.PathMode, err = flags.GetString("path-mode"); err != nil {
			return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
		}
	}
	if flags.Changed("verbose") {
		if cfg.Output.Verbose, err = flags.GetBool("verbose"); err != nil {
			return nil, fmt.Errorf("failed to get verbose flag: %w", err)
		}
	}
	if flags.Changed("max-diagnostics") {
		if cfg.Output.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("trace") {
		if cfg.Trace.Output, err = flags.GetString("trace"); err != nil {
			return nil, fmt.Errorf("failed to get trace flag: %w", err)
		}
		// --trace alone means "show me file-level events"
		if cfg.Trace.Level == "off" && !flags.Changed("trace-level") {
			cfg.Trace.Level = "file"
		}
	}
	if flags.Changed("trace-level") {
		if cfg.Trace.Level, err = flags.GetString("trace-level"); err != nil {
			return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
		}
	}
	if flags.Changed("trace-format") {
		if cfg.Trace.Format, err = flags.GetString("trace-format"); err != nil {
			return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	var profile prof.Options
	if profile.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if profile.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if profile.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	pathMode, err := diagfmt.ParsePathMode(cfg.Output.PathMode)
	if err != nil {
		return nil, err
	}
	level, err := trace.ParseLevel(cfg.Trace.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	traceFormat, err := trace.ParseFormat(cfg.Trace.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	return &settings{
		cfg:            cfg,
		limits:         cfg.BufferLimits(),
		format:         strings.ToLower(strings.TrimSpace(cfg.Output.Format)),
		color:          useColor(cfg.Output.Color, cmd.ErrOrStderr()),
		pathMode:       pathMode,
		quiet:          quiet,
		verbose:        cfg.Output.Verbose && !quiet,
		timings:        timings,
		maxDiagnostics: cfg.Output.MaxDiagnostics,
		traceLevel:     level,
		traceFormat:    traceFormat,
		traceOutput:    cfg.Trace.Output,
		profile:        profile,
	}, nil
}

func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return true
	case "off":
		return false
	default:
		return !color.NoColor && isTerminal(w)
	}
}
