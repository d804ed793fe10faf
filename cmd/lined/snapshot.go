package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lined/internal/diag"
	"lined/internal/snapshot"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save, restore and inspect buffer snapshots",
	}
	cmd.AddCommand(newSnapshotSaveCmd(), newSnapshotRestoreCmd(), newSnapshotInspectCmd())
	return cmd
}

func newSnapshotSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <file> <snapshot>",
		Short: "Load a file and store its lines in a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(s *session) error {
				buf, err := s.load(args[0])
				if err != nil {
					return err
				}
				payload, err := snapshot.Capture(buf)
				if err != nil {
					diag.ReportError(s.reporter, diag.SnpCorrupt, "snapshot.capture", buf.Path(), "Could not capture buffer").
						WithNote(err.Error()).
						Emit()
					return err
				}
				if err := s.timer.Measure("save", func() error { return snapshot.Save(args[1], payload) }); err != nil {
					diag.ReportError(s.reporter, diag.IOWriteError, "snapshot.save", args[1], "Could not write snapshot").
						WithNote(err.Error()).
						Emit()
					return err
				}
				s.printf("%s: %d lines from %s\n", args[1], payload.LineCount, payload.Path)
				return nil
			})
		},
	}
}

func newSnapshotRestoreCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "restore <snapshot>",
		Short: "Write a snapshot back to its original path or to --to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(s *session) error {
				payload, err := s.loadSnapshot(args[0])
				if err != nil {
					return err
				}
				target := to
				if target == "" {
					target = payload.Path
				}
				buf := s.newBuffer(target)
				if err := s.timer.Measure("restore", func() error { return snapshot.Restore(buf, payload) }); err != nil {
					return err
				}
				stats, err := s.persist(buf, "")
				if err != nil {
					return err
				}
				s.printf("%s: %d lines, %d bytes\n", target, stats.Lines, stats.Bytes)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "restore into this path instead of the recorded one")
	return cmd
}

type inspectPayload struct {
	Schema        uint16    `json:"schema"`
	Path          string    `json:"path"`
	Created       time.Time `json:"created"`
	Lines         uint32    `json:"lines"`
	Bytes         uint64    `json:"bytes"`
	SHA256        string    `json:"sha256"`
	MaxTotalBytes int64     `json:"max_total_bytes"`
	MaxLineBytes  int64     `json:"max_line_bytes"`
}

func newSnapshotInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Print snapshot metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(s *session) error {
				payload, err := s.loadSnapshot(args[0])
				if err != nil {
					return err
				}
				info := inspectPayload{
					Schema:        payload.Schema,
					Path:          payload.Path,
					Created:       payload.Created,
					Lines:         payload.LineCount,
					Bytes:         payload.ByteSize,
					SHA256:        hex.EncodeToString(payload.Hash[:]),
					MaxTotalBytes: payload.MaxTotalBytes,
					MaxLineBytes:  payload.MaxLineBytes,
				}
				if s.settings.format == "json" {
					return s.writeJSON(info)
				}
				fmt.Fprintf(s.out, "path:    %s\n", info.Path)
				fmt.Fprintf(s.out, "created: %s\n", info.Created.Format(time.RFC3339))
				fmt.Fprintf(s.out, "lines:   %d\n", info.Lines)
				fmt.Fprintf(s.out, "bytes:   %d\n", info.Bytes)
				fmt.Fprintf(s.out, "limits:  %d total, %d per line\n", info.MaxTotalBytes, info.MaxLineBytes)
				fmt.Fprintf(s.out, "sha256:  %s\n", info.SHA256)
				return nil
			})
		},
	}
}

// loadSnapshot reads a snapshot and reports why it could not be used.
func (s *session) loadSnapshot(path string) (*snapshot.Payload, error) {
	var payload *snapshot.Payload
	err := s.timer.Measure("snapshot", func() error {
		var err error
		payload, err = snapshot.Load(path)
		return err
	})
	if err == nil {
		return payload, nil
	}
	code, msg := diag.IOReadError, "Could not read snapshot"
	switch {
	case errors.Is(err, snapshot.ErrSchema):
		code, msg = diag.SnpSchema, "Unsupported snapshot version"
	case errors.Is(err, snapshot.ErrCorrupt):
		code, msg = diag.SnpCorrupt, "Snapshot is damaged"
	}
	diag.ReportError(s.reporter, code, "snapshot.load", path, msg).WithNote(err.Error()).Emit()
	return nil, err
}
