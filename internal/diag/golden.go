package diag

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation: "<severity> <code> <path> <op>: <message>". Notes follow their
// diagnostic as "note <code> <path> <op>: <note>". The input order is preserved.
func FormatShortDiagnostics(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		code := d.Code.ID()
		path := filepath.ToSlash(d.Source)
		lines = append(lines, fmt.Sprintf("%s %s %s %s: %s", severityLabel(d.Severity), code, path, d.Op, singleLine(d.Message())))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, fmt.Sprintf("note %s %s %s: %s", code, path, d.Op, singleLine(n)))
		}
	}
	return strings.Join(lines, "\n")
}

func severityLabel(sev Severity) string {
	return strings.ToLower(sev.String())
}

func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
