package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lined/internal/ui"
)

type statPayload struct {
	Path          string `json:"path"`
	Lines         int    `json:"lines"`
	Bytes         int    `json:"bytes"`
	MaxTotalBytes int    `json:"max_total_bytes"`
	MaxLineBytes  int    `json:"max_line_bytes"`
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <file>",
		Short: "Show line count, byte size and ceilings of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(s *session) error {
				buf, err := s.load(args[0])
				if err != nil {
					return err
				}
				limits := buf.Limits()
				payload := statPayload{
					Path:          buf.Path(),
					Lines:         buf.LineCount(),
					Bytes:         buf.ByteSize(),
					MaxTotalBytes: limits.MaxTotalBytes,
					MaxLineBytes:  limits.MaxLineBytes,
				}
				if s.settings.format == "json" {
					return s.writeJSON(payload)
				}
				fmt.Fprintf(s.out, "%s: %d lines, %d bytes (max %d total, %d per line)\n",
					payload.Path, payload.Lines, payload.Bytes, payload.MaxTotalBytes, payload.MaxLineBytes)
				return nil
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	var (
		from, to int
		numbers  bool
		width    int
	)
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print lines of a file",
		Long:  `Print lines from..to (1-indexed, inclusive). Lines wider than the terminal are cut unless --width=-1.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(s *session) error {
				buf, err := s.load(args[0])
				if err != nil {
					return err
				}
				lines := buf.Lines()
				first := max(from, 1)
				last := len(lines)
				if to > 0 && to < last {
					last = to
				}

				w := width
				if w == 0 {
					w = terminalWidth(s.out)
				}
				numWidth := len(strconv.Itoa(last))
				if numbers && w > 0 {
					w -= numWidth + 2
				}

				for n := first; n <= last; n++ {
					text := lines[n-1]
					if w > 0 {
						text = ui.Truncate(text, w)
					}
					if numbers {
						fmt.Fprintf(s.out, "%*d  %s\n", numWidth, n, text)
					} else {
						fmt.Fprintln(s.out, text)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "first line to print")
	cmd.Flags().IntVar(&to, "to", 0, "last line to print (0 = end of file)")
	cmd.Flags().BoolVarP(&numbers, "numbers", "n", false, "prefix lines with their numbers")
	cmd.Flags().IntVar(&width, "width", 0, "cut lines to this many cells (0 = terminal width, -1 = never)")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <line>",
		Short: "Print one line (0 addresses the first line)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseNumber("line", args[1])
			if err != nil {
				return err
			}
			return runWithSession(cmd, func(s *session) error {
				buf, err := s.load(args[0])
				if err != nil {
					return err
				}
				text, err := buf.GetLine(n)
				if err != nil {
					return err
				}
				fmt.Fprintln(s.out, text)
				return nil
			})
		},
	}
}
