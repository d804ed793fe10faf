package buffer

import (
	"strconv"

	"lined/internal/diag"
	"lined/internal/trace"
)

const (
	opLoad         = "load"
	opGetLine      = "getLine"
	opAppendLine   = "appendLine"
	opInsertLine   = "insertLine"
	opAppendString = "appendString"
	opInsertString = "insertString"
	opRemoveLine   = "removeLine"
	opOverwrite    = "overwrite"
	opWriteTo      = "writeTo"
	opSaveAs       = "saveAs"
	opReset        = "reset"
)

type failure struct {
	kind  error
	cause error
	line  int
	pos   int
}

// fail emits one diagnostic for the failed operation and returns the matching *Error.
func (b *LineBuffer) fail(op string, f failure, parts ...any) error {
	rb := diag.ReportError(b.reporter, Code(f.kind), op, b.path, parts...)
	if f.cause != nil {
		rb.WithNote(f.cause.Error())
	}
	rb.Emit()
	return &Error{
		Op:    op,
		Path:  b.path,
		Kind:  f.kind,
		Line:  f.line,
		Pos:   f.pos,
		Parts: parts,
		Err:   f.cause,
	}
}

// status emits an info diagnostic when the buffer is verbose.
func (b *LineBuffer) status(code diag.Code, op string, parts ...any) {
	if !b.verbose {
		return
	}
	diag.ReportInfo(b.reporter, code, op, b.path, parts...).Emit()
}

func (b *LineBuffer) begin(op string) *trace.Span {
	return trace.Begin(b.tracer, trace.ScopeOp, "buffer."+op, b.traceParent)
}

// finish closes span with the outcome and the resulting buffer size.
func (b *LineBuffer) finish(span *trace.Span, err error) {
	if err != nil {
		span.End("error: " + err.Error())
		return
	}
	span.WithExtra("lines", strconv.Itoa(len(b.lines)))
	span.End("ok")
}
