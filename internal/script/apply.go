package script

import (
	"fmt"

	"lined/internal/diag"
)

// Editor is the set of buffer mutations a script can drive.
// *buffer.LineBuffer implements it.
type Editor interface {
	AppendLine(text string) error
	InsertLine(text string, n int) error
	AppendString(text string, n int) error
	InsertString(text string, n, pos int) error
	RemoveLine(n int) error
}

// Apply runs the edits in order and stops at the first failure.
// Each edit is atomic; edits applied before the failure stay applied.
// It returns the number of edits that succeeded.
func Apply(ed Editor, s *Script) (int, error) {
	for i, e := range s.Edits {
		if err := applyOne(ed, e); err != nil {
			return i, &EditError{Index: i + 1, Edit: e, Err: err}
		}
	}
	return len(s.Edits), nil
}

func applyOne(ed Editor, e Edit) error {
	switch e.Op {
	case OpAppendLine:
		return ed.AppendLine(e.Text)
	case OpInsertLine:
		return ed.InsertLine(e.Text, e.Line)
	case OpAppendString:
		return ed.AppendString(e.Text, e.Line)
	case OpInsertString:
		return ed.InsertString(e.Text, e.Line, e.Pos)
	case OpRemoveLine:
		return ed.RemoveLine(e.Line)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidEdit, e.Op)
	}
}

// Check validates the script and reports each bad edit as a diagnostic.
// It returns false when at least one edit is invalid.
func (s *Script) Check(r diag.Reporter) bool {
	ok := true
	for i, e := range s.Edits {
		if err := e.validate(); err != nil {
			diag.ReportError(r, diag.ScrInvalidEdit, "check", s.Path, "edit", i+1, "is invalid").
				WithNote(err.Error()).
				Emit()
			ok = false
		}
	}
	return ok
}
