package main

import (
	"github.com/spf13/cobra"

	"lined/internal/buffer"
)

// editCommand describes one single-edit subcommand. numbers names the
// positional integer arguments between <file> and <text>.
type editCommand struct {
	use     string
	short   string
	numbers []string
	text    bool
	apply   func(buf *buffer.LineBuffer, text string, nums []int) error
}

func (ec editCommand) build() *cobra.Command {
	var out string
	nargs := 1 + len(ec.numbers)
	if ec.text {
		nargs++
	}
	cmd := &cobra.Command{
		Use:   ec.use,
		Short: ec.short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums := make([]int, len(ec.numbers))
			for i, name := range ec.numbers {
				n, err := parseNumber(name, args[1+i])
				if err != nil {
					return err
				}
				nums[i] = n
			}
			var text string
			if ec.text {
				text = args[nargs-1]
			}
			return runWithSession(cmd, func(s *session) error {
				buf, err := s.load(args[0])
				if err != nil {
					return err
				}
				if err := s.timer.Measure("edit", func() error { return ec.apply(buf, text, nums) }); err != nil {
					return err
				}
				stats, err := s.persist(buf, out)
				if err != nil {
					return err
				}
				target := out
				if target == "" {
					target = buf.Path()
				}
				s.printf("%s: %d lines, %d bytes\n", target, stats.Lines, stats.Bytes)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result here instead of overwriting the input")
	return cmd
}

func newAppendLineCmd() *cobra.Command {
	return editCommand{
		use:   "append-line <file> <text>",
		short: "Add a line at the end of a file",
		text:  true,
		apply: func(buf *buffer.LineBuffer, text string, _ []int) error {
			return buf.AppendLine(text)
		},
	}.build()
}

func newInsertLineCmd() *cobra.Command {
	return editCommand{
		use:     "insert-line <file> <line> <text>",
		short:   "Insert a line before the given line (line count + 1 appends)",
		numbers: []string{"line"},
		text:    true,
		apply: func(buf *buffer.LineBuffer, text string, nums []int) error {
			return buf.InsertLine(text, nums[0])
		},
	}.build()
}

func newAppendStringCmd() *cobra.Command {
	return editCommand{
		use:     "append-string <file> <line> <text>",
		short:   "Append text to the end of an existing line",
		numbers: []string{"line"},
		text:    true,
		apply: func(buf *buffer.LineBuffer, text string, nums []int) error {
			return buf.AppendString(text, nums[0])
		},
	}.build()
}

func newInsertStringCmd() *cobra.Command {
	return editCommand{
		use:     "insert-string <file> <line> <pos> <text>",
		short:   "Insert text into a line before the given 1-indexed byte position",
		numbers: []string{"line", "position"},
		text:    true,
		apply: func(buf *buffer.LineBuffer, text string, nums []int) error {
			return buf.InsertString(text, nums[0], nums[1])
		},
	}.build()
}

func newRemoveLineCmd() *cobra.Command {
	return editCommand{
		use:     "remove-line <file> <line>",
		short:   "Remove a line",
		numbers: []string{"line"},
		apply: func(buf *buffer.LineBuffer, _ string, nums []int) error {
			return buf.RemoveLine(nums[0])
		},
	}.build()
}

func newCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy <src> <dst>",
		Short: "Load src and write its lines to dst",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithSession(cmd, func(s *session) error {
				src, err := s.load(args[0])
				if err != nil {
					return err
				}
				dst := s.newBuffer(args[1])
				var stats buffer.Stats
				err = s.timer.Measure("write", func() error {
					var err error
					stats, err = src.WriteTo(dst)
					return err
				})
				if err != nil {
					return err
				}
				s.printf("%s: %d lines, %d bytes\n", dst.Path(), stats.Lines, stats.Bytes)
				return nil
			})
		},
	}
}
