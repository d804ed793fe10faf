package buffer

import (
	"errors"
	"fmt"

	"lined/internal/diag"
)

// Failure kinds. Every *Error wraps exactly one of them.
var (
	// ErrNotFound is returned when the source file cannot be opened for reading.
	ErrNotFound = errors.New("file not found")

	// ErrRead is returned when reading an opened file fails.
	ErrRead = errors.New("read failed")

	// ErrWrite is returned when the target file cannot be opened or written.
	ErrWrite = errors.New("write failed")

	// ErrCapacityExceeded is returned when total bytes would pass MaxTotalBytes.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrLineTooLong is returned when a line would pass MaxLineBytes.
	ErrLineTooLong = errors.New("line too long")

	// ErrLineNotFound is returned when a line number is out of range.
	ErrLineNotFound = errors.New("line not found")

	// ErrPositionOutOfRange is returned when a character position lies past the end of its line.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrEmbeddedTerminator is returned when text passed to a mutation contains '\n'.
	ErrEmbeddedTerminator = errors.New("text contains a line terminator")
)

// Error describes a failed buffer operation.
type Error struct {
	Op    string // operation, e.g. "insertLine"
	Path  string // file the buffer is bound to
	Kind  error  // one of the Err* values
	Line  int    // 1-based line number as given by the caller, 0 if not applicable
	Pos   int    // 1-based position as given by the caller, 0 if not applicable
	Parts []any  // ordered values describing the condition
	Err   error  // underlying cause (os errors), may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Path, e.Op, diag.FormatParts(e.Parts))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Code maps an error kind onto its diagnostic code.
func Code(kind error) diag.Code {
	switch kind {
	case ErrNotFound:
		return diag.IONotFound
	case ErrRead:
		return diag.IOReadError
	case ErrWrite:
		return diag.IOWriteError
	case ErrCapacityExceeded:
		return diag.BufCapacityExceeded
	case ErrLineTooLong:
		return diag.BufLineTooLong
	case ErrLineNotFound:
		return diag.BufLineNotFound
	case ErrPositionOutOfRange:
		return diag.BufPositionOutOfRange
	case ErrEmbeddedTerminator:
		return diag.BufEmbeddedTerminator
	}
	return diag.UnknownCode
}
