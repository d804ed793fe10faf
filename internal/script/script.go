// Package script reads TOML edit scripts and applies them to a line buffer.
//
// A script is a list of [[edit]] tables:
//
//	[[edit]]
//	op = "insert-line"
//	line = 1
//	text = "# header"
//
// Line and position numbers follow the buffer's 1-indexed addressing.
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Op names one buffer mutation.
type Op string

const (
	OpAppendLine   Op = "append-line"
	OpInsertLine   Op = "insert-line"
	OpAppendString Op = "append-string"
	OpInsertString Op = "insert-string"
	OpRemoveLine   Op = "remove-line"
)

// Ops lists every supported operation in documentation order.
var Ops = []Op{OpAppendLine, OpInsertLine, OpAppendString, OpInsertString, OpRemoveLine}

var (
	ErrParse       = errors.New("invalid script")
	ErrInvalidEdit = errors.New("invalid edit")
)

// Edit is one [[edit]] entry.
type Edit struct {
	Op   Op     `toml:"op"`
	Line int    `toml:"line"`
	Pos  int    `toml:"pos"`
	Text string `toml:"text"`
}

func (e Edit) String() string {
	switch e.Op {
	case OpAppendLine:
		return fmt.Sprintf("%s %q", e.Op, e.Text)
	case OpInsertLine, OpAppendString:
		return fmt.Sprintf("%s %q at line %d", e.Op, e.Text, e.Line)
	case OpInsertString:
		return fmt.Sprintf("%s %q at line %d position %d", e.Op, e.Text, e.Line, e.Pos)
	case OpRemoveLine:
		return fmt.Sprintf("%s %d", e.Op, e.Line)
	default:
		return string(e.Op)
	}
}

// Script is a parsed edit script.
type Script struct {
	Edits []Edit `toml:"edit"`

	// Path is the file the script came from, empty for in-memory scripts.
	Path string `toml:"-"`
}

// EditError describes a problem with one edit. Index is 1-based.
type EditError struct {
	Index int
	Edit  Edit
	Err   error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("edit %d (%s): %v", e.Index, e.Edit, e.Err)
}

func (e *EditError) Unwrap() error { return e.Err }

// Parse decodes a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	meta, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrParse, strings.Join(keys, ", "))
	}
	return &s, nil
}

// ParseFile reads and decodes the script at path.
func ParseFile(path string) (*Script, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Validate checks every edit and returns all problems joined.
func (s *Script) Validate() error {
	var errs []error
	for i, e := range s.Edits {
		if err := e.validate(); err != nil {
			errs = append(errs, &EditError{Index: i + 1, Edit: e, Err: err})
		}
	}
	return errors.Join(errs...)
}

func (e Edit) validate() error {
	switch e.Op {
	case OpAppendLine, OpInsertLine, OpAppendString, OpInsertString, OpRemoveLine:
	case "":
		return fmt.Errorf("%w: missing op", ErrInvalidEdit)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidEdit, e.Op)
	}
	if e.Line < 0 {
		return fmt.Errorf("%w: negative line %d", ErrInvalidEdit, e.Line)
	}
	if e.Pos < 0 {
		return fmt.Errorf("%w: negative position %d", ErrInvalidEdit, e.Pos)
	}
	if e.Pos != 0 && e.Op != OpInsertString {
		return fmt.Errorf("%w: pos is only valid for %s", ErrInvalidEdit, OpInsertString)
	}
	if e.Op == OpRemoveLine && e.Text != "" {
		return fmt.Errorf("%w: text is not used by %s", ErrInvalidEdit, OpRemoveLine)
	}
	if e.Op == OpAppendLine && e.Line != 0 {
		return fmt.Errorf("%w: line is not used by %s", ErrInvalidEdit, OpAppendLine)
	}
	if (e.Op == OpAppendString || e.Op == OpInsertString) && e.Text == "" {
		return fmt.Errorf("%w: %s needs text", ErrInvalidEdit, e.Op)
	}
	if strings.ContainsRune(e.Text, '\n') {
		return fmt.Errorf("%w: text contains a line terminator", ErrInvalidEdit)
	}
	return nil
}
