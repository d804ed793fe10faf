package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lined/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show lined build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(s *session) error {
				v := strings.TrimSpace(version.Version)
				if v == "" {
					v = "dev"
				}
				payload := versionPayload{Tool: "lined", Version: v}
				if full {
					payload.GitCommit = valueOrUnknown(version.GitCommit)
					payload.BuildDate = valueOrUnknown(version.BuildDate)
				}
				if s.settings.format == "json" {
					return s.writeJSON(payload)
				}
				shown := v
				if s.settings.color {
					shown = version.Colored(v)
				}
				fmt.Fprintf(s.out, "lined %s\n", shown)
				if full {
					fmt.Fprintf(s.out, "commit: %s\n", payload.GitCommit)
					fmt.Fprintf(s.out, "built:  %s\n", payload.BuildDate)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include commit and build date")
	return cmd
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
