package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lined/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Each diagnostic is one line:
//
//	error[BUF5003]: notes.txt: getLine: Line 7 does not exist.
//
// followed by its notes indented with "= note:". Info records are skipped
// unless opts.ShowInfo is set and are printed without a code.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		PrettyOne(w, d, opts)
	}
}

// PrettyOne renders a single diagnostic.
func PrettyOne(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	if d.Severity == diag.SevInfo && !opts.ShowInfo {
		return
	}
	p := newPalette(opts.Color)
	path := FormatPath(d.Source, opts.PathMode, opts.BaseDir)
	msg := strings.TrimSuffix(d.Message(), ".")

	if d.Severity == diag.SevInfo {
		fmt.Fprintf(w, "%s %s: %s: %s.\n", p.info.Sprint("info:"), p.path.Sprint(path), d.Op, msg)
		return
	}

	label := severityLabel(d.Severity)
	head := p.forSeverity(d.Severity).Sprintf("%s[%s]", label, d.Code.ID())
	fmt.Fprintf(w, "%s: %s: %s: %s.\n", head, p.path.Sprint(path), p.op.Sprint(d.Op), msg)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("= note:"), note)
	}
}

func severityLabel(sev diag.Severity) string {
	return strings.ToLower(sev.String())
}

type palette struct {
	err, warn, info, note, path, op *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		note: color.New(color.FgBlue, color.Bold),
		path: color.New(color.Bold),
		op:   color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.path, p.op} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) forSeverity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}
