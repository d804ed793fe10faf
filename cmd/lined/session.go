package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lined/internal/buffer"
	"lined/internal/diag"
	"lined/internal/diagfmt"
	"lined/internal/observ"
	"lined/internal/prof"
	"lined/internal/trace"
)

// session carries everything one command invocation shares: settings,
// the diagnostics sink, the tracer and the phase timer.
type session struct {
	cmd      *cobra.Command
	settings *settings
	out      io.Writer
	errOut   io.Writer

	bag      *diag.Bag
	reporter diag.Reporter

	tracer  trace.Tracer
	span    *trace.Span
	timer   *observ.Timer
	prof    *prof.Profiler
	cleanup func()
}

// runWithSession resolves settings, runs fn and then prints diagnostics,
// timings and trace output. It turns reported errors into errReported so
// main does not print them twice.
func runWithSession(cmd *cobra.Command, fn func(s *session) error) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	runErr := fn(s)
	return s.finish(runErr)
}

func newSession(cmd *cobra.Command) (*session, error) {
	st, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}
	color.NoColor = !st.color
	s := &session{
		cmd:      cmd,
		settings: st,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		bag:      diag.NewBag(st.maxDiagnostics),
		timer:    observ.NewTimer(),
	}

	sinks := diag.MultiReporter{diag.BagReporter{Bag: s.bag}}
	if st.format == "pretty" {
		sinks = append(sinks, diagfmt.NewStreamReporter(s.errOut, s.prettyOpts()))
	}
	s.reporter = diag.NewDedupReporter(sinks)

	if st.profile.Enabled() {
		if s.prof, err = prof.Start(st.profile); err != nil {
			return nil, fmt.Errorf("failed to start profiling: %w", err)
		}
	}
	if err := s.setupTracing(); err != nil {
		_ = s.prof.Stop()
		return nil, err
	}
	s.span = trace.Begin(s.tracer, trace.ScopeCommand, "lined."+cmd.Name(), 0)
	return s, nil
}

func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.settings.color,
		PathMode:  s.settings.pathMode,
		ShowNotes: true,
		ShowInfo:  s.settings.verbose,
	}
}

// newBuffer binds a buffer to path with the session's limits and sinks.
func (s *session) newBuffer(path string) *buffer.LineBuffer {
	return buffer.New(path,
		buffer.WithLimits(s.settings.limits),
		buffer.WithReporter(s.reporter),
		buffer.WithVerbose(s.settings.verbose),
		buffer.WithTracer(s.tracer),
		buffer.WithTraceParent(s.span.ID()),
	)
}

// load reads path into a new buffer as a timed phase.
func (s *session) load(path string) (*buffer.LineBuffer, error) {
	buf := s.newBuffer(path)
	err := s.timer.Measure("load", func() error {
		_, err := buf.Load()
		return err
	})
	return buf, err
}

// persist writes buf to out, or back to its own path when out is empty.
func (s *session) persist(buf *buffer.LineBuffer, out string) (buffer.Stats, error) {
	var stats buffer.Stats
	err := s.timer.Measure("write", func() error {
		var err error
		if out == "" {
			stats, err = buf.Overwrite()
		} else {
			stats, err = buf.SaveAs(out)
		}
		return err
	})
	return stats, err
}

// replay forwards diagnostics collected elsewhere into the session.
func (s *session) replay(bag *diag.Bag) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		s.reporter.Report(d)
	}
}

// printf writes user-facing output unless --quiet is set.
func (s *session) printf(format string, args ...any) {
	if s.settings.quiet {
		return
	}
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) finish(runErr error) error {
	failed := runErr != nil || s.bag.HasErrors()

	if err := s.renderDiagnostics(); err != nil && runErr == nil {
		runErr = err
	}
	if s.settings.timings {
		fmt.Fprint(s.errOut, s.timer.Summary())
	}

	if failed {
		s.span.End("failed")
		s.dumpTrace()
	} else {
		s.span.End("ok")
	}
	s.cleanup()
	if err := s.prof.Stop(); err != nil {
		fmt.Fprintf(s.errOut, "profile: %v\n", err)
	}

	switch {
	case runErr != nil && s.bag.HasErrors():
		return errReported
	case runErr != nil:
		return runErr
	case s.bag.HasErrors():
		return errReported
	}
	return nil
}

func (s *session) renderDiagnostics() error {
	switch s.settings.format {
	case "json":
		return diagfmt.JSON(s.errOut, s.bag, diagfmt.JSONOpts{
			PathMode:     s.settings.pathMode,
			Max:          s.settings.maxDiagnostics,
			IncludeNotes: true,
			IncludeParts: true,
		})
	case "short":
		items := s.bag.Items()
		if !s.settings.verbose {
			items = errorsAndWarnings(items)
		}
		text := diag.FormatShortDiagnostics(items, true)
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(s.errOut, text)
		return err
	}
	// pretty diagnostics were streamed as they happened
	return nil
}

func errorsAndWarnings(items []diag.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(items))
	for _, d := range items {
		if d.Severity >= diag.SevWarning {
			out = append(out, d)
		}
	}
	return out
}

// setupTracing creates the tracer described by the settings.
func (s *session) setupTracing() error {
	st := s.settings
	if st.traceLevel == trace.LevelOff {
		s.tracer = trace.Nop
		s.cleanup = func() {}
		return nil
	}

	cfg := trace.Config{
		Level:      st.traceLevel,
		Format:     st.traceFormat,
		OutputPath: st.traceOutput,
	}
	if st.traceOutput == "" || st.traceOutput == "-" {
		// the tracer closes writers that can be closed
		cfg.Output = struct{ io.Writer }{s.errOut}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	s.tracer = tracer
	s.cmd.SetContext(trace.WithTracer(s.cmd.Context(), tracer))

	s.cleanup = func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(s.errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(s.errOut, "trace: close error: %v\n", err)
		}
	}
	return nil
}

// dumpTrace prints the event ring after a failure when only errors are traced.
func (s *session) dumpTrace() {
	if s.settings.traceLevel != trace.LevelError {
		return
	}
	ring, ok := s.tracer.(*trace.RingTracer)
	if !ok {
		return
	}
	fmt.Fprintln(s.errOut, "trace: recent events")
	if err := ring.Dump(s.errOut, trace.FormatText); err != nil {
		fmt.Fprintf(s.errOut, "trace: dump error: %v\n", err)
	}
}
