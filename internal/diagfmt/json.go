package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"lined/internal/diag"
)

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string   `json:"severity"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Op       string   `json:"op"`
	Source   string   `json:"source"`
	Message  string   `json:"message"`
	Parts    []string `json:"parts,omitempty"`
	Notes    []string `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	if bag == nil {
		return out
	}

	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	for i := 0; i < maxItems; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Op:       d.Op,
			Source:   FormatPath(d.Source, opts.PathMode, opts.BaseDir),
			Message:  d.Message(),
		}
		if opts.IncludeParts && len(d.Parts) > 0 {
			dj.Parts = make([]string, len(d.Parts))
			for j, p := range d.Parts {
				dj.Parts[j] = diag.FormatParts([]any{p})
			}
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			dj.Notes = append([]string(nil), d.Notes...)
		}
		if d.Severity >= diag.SevError {
			out.Errors++
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildDiagnosticsOutput(bag, opts)); err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}
	return nil
}
