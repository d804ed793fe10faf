package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lined/internal/batch"
	"lined/internal/diag"
	"lined/internal/script"
)

type applyPayload struct {
	File    string `json:"file"`
	Output  string `json:"output"`
	Applied int    `json:"applied"`
	Lines   int    `json:"lines"`
	Bytes   int    `json:"bytes"`
	Error   string `json:"error,omitempty"`
}

func newApplyCmd() *cobra.Command {
	var (
		jobs   int
		outDir string
		uiFlag string
	)
	cmd := &cobra.Command{
		Use:   "apply <script.toml> <file>...",
		Short: "Apply an edit script to one or more files",
		Long: `Apply reads a TOML script of [[edit]] entries and applies it to every file in parallel.
Each file is loaded, edited and written independently; a failing edit leaves that file untouched on disk.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := readUIMode(uiFlag)
			if err != nil {
				return err
			}
			return runWithSession(cmd, func(s *session) error {
				return runApply(cmd, s, args[0], args[1:], jobs, outDir, mode)
			})
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "max parallel files (0=auto)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write edited files under this directory instead of in place")
	cmd.Flags().StringVar(&uiFlag, "ui", "auto", "progress view (auto|on|off)")
	return cmd
}

func runApply(cmd *cobra.Command, s *session, scriptPath string, files []string, jobs int, outDir string, mode uiMode) error {
	var sc *script.Script
	err := s.timer.Measure("parse", func() error {
		var err error
		sc, err = script.ParseFile(scriptPath)
		return err
	})
	if err != nil {
		diag.ReportError(s.reporter, diag.ScrInvalidEdit, "parse", scriptPath, "Could not read script").
			WithNote(err.Error()).
			Emit()
		return err
	}
	if !sc.Check(s.reporter) {
		return fmt.Errorf("%s: invalid script", scriptPath)
	}

	req := batch.Request{
		Files:          files,
		Script:         sc,
		OutDir:         outDir,
		Jobs:           jobs,
		Limits:         s.settings.limits,
		MaxDiagnostics: s.settings.maxDiagnostics,
		Verbose:        s.settings.verbose,
	}

	var results []batch.Result
	useUI := !s.settings.quiet && s.settings.format == "pretty" && shouldUseTUI(mode, s.out)
	err = s.timer.Measure("apply", func() error {
		var err error
		if useUI {
			results, err = runBatchWithUI(cmd.Context(), "apply "+scriptPath, s.out, req)
		} else {
			results, err = batch.Run(cmd.Context(), req)
		}
		return err
	})

	payload := make([]applyPayload, 0, len(results))
	for _, res := range results {
		if res.File == "" {
			// never started: the run was cancelled first
			continue
		}
		s.replay(res.Bag)
		p := applyPayload{
			File:    res.File,
			Output:  res.Output,
			Applied: res.Applied,
			Lines:   res.Stats.Lines,
			Bytes:   res.Stats.Bytes,
		}
		if res.Err != nil {
			p.Error = res.Err.Error()
		} else if !useUI {
			s.printf("%s: %d edits, %d lines, %d bytes\n", res.Output, res.Applied, res.Stats.Lines, res.Stats.Bytes)
		}
		payload = append(payload, p)
	}
	if err != nil {
		return err
	}
	if s.settings.format == "json" {
		return s.writeJSON(payload)
	}
	return nil
}
