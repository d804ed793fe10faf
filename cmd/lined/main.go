package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lined/internal/version"
)

// errReported signals that the failure was already printed as diagnostics.
var errReported = errors.New("diagnostics reported")

// newRootCmd builds the command tree with its persistent flags.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lined",
		Short:         "Line-oriented file editor",
		Long:          `lined loads text files into memory as lines, edits them by 1-indexed line and byte position, and writes them back within configurable size ceilings`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("config", "", "path to lined.toml (default: nearest one above the working directory)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("format", "pretty", "output format (pretty|json|short)")
	pf.String("path-mode", "auto", "how diagnostic paths are printed (auto|absolute|relative|basename)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("verbose", false, "report successful reads and writes")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.Int("max-total-bytes", 0, "buffer ceiling in bytes, counting one terminator per line (0 = config)")
	pf.Int("max-line-bytes", 0, "per-line ceiling in bytes (0 = config)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "", "trace level (off|error|file|op|debug)")
	pf.String("trace-format", "", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
	root.MarkFlagsMutuallyExclusive("quiet", "verbose")

	root.AddCommand(
		newStatCmd(),
		newShowCmd(),
		newGetCmd(),
		newAppendLineCmd(),
		newInsertLineCmd(),
		newAppendStringCmd(),
		newInsertStringCmd(),
		newRemoveLineCmd(),
		newCopyCmd(),
		newApplyCmd(),
		newSnapshotCmd(),
		newVersionCmd(),
	)
	return root
}

// main executes the root command. Any error exits with status 1; errors that
// were already shown as diagnostics are not printed again.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "lined:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
