package script

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"lined/internal/buffer"
	"lined/internal/diag"
)

const sample = `
[[edit]]
op = "insert-line"
line = 1
text = "# header"

[[edit]]
op = "append-string"
line = 2
text = "!"

[[edit]]
op = "insert-string"
line = 3
pos = 1
text = ">"

[[edit]]
op = "remove-line"
line = 4

[[edit]]
op = "append-line"
text = "tail"
`

func TestParseAndApply(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s.Edits) != 5 {
		t.Fatalf("edits = %d", len(s.Edits))
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	b := buffer.New("mem.txt")
	if err := b.Reset([]string{"one", "two", "three"}); err != nil {
		t.Fatal(err)
	}
	n, err := Apply(b, s)
	if err != nil || n != 5 {
		t.Fatalf("Apply = %d, %v", n, err)
	}
	want := []string{"# header", "one!", ">two", "tail"}
	if got := b.Lines(); !slices.Equal(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	s := &Script{Edits: []Edit{
		{Op: OpAppendLine, Text: "a"},
		{Op: OpRemoveLine, Line: 5},
		{Op: OpAppendLine, Text: "never"},
	}}
	b := buffer.New("mem.txt")
	n, err := Apply(b, s)
	if n != 1 {
		t.Fatalf("applied = %d, want 1", n)
	}
	var ee *EditError
	if !errors.As(err, &ee) || ee.Index != 2 {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(err, buffer.ErrLineNotFound) {
		t.Fatalf("err does not wrap ErrLineNotFound: %v", err)
	}
	if got := b.Lines(); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("lines = %q", got)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[[edit]]\nop = \"append-line\"\ntxt = \"x\"\n"))
	if !errors.Is(err, ErrParse) || !strings.Contains(err.Error(), "edit.txt") {
		t.Fatalf("Parse = %v", err)
	}
	if _, err := Parse([]byte("[[edit]\n")); !errors.Is(err, ErrParse) {
		t.Fatalf("Parse(broken) = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
		ok   bool
	}{
		{"append line", Edit{Op: OpAppendLine, Text: ""}, true},
		{"insert line zero", Edit{Op: OpInsertLine, Line: 0, Text: "x"}, true},
		{"missing op", Edit{Text: "x"}, false},
		{"unknown op", Edit{Op: "replace", Line: 1}, false},
		{"negative line", Edit{Op: OpRemoveLine, Line: -1}, false},
		{"negative pos", Edit{Op: OpInsertString, Line: 1, Pos: -2, Text: "x"}, false},
		{"pos on append", Edit{Op: OpAppendString, Line: 1, Pos: 3, Text: "x"}, false},
		{"remove with text", Edit{Op: OpRemoveLine, Line: 1, Text: "x"}, false},
		{"append line with line", Edit{Op: OpAppendLine, Line: 2, Text: "x"}, false},
		{"empty string edit", Edit{Op: OpInsertString, Line: 1}, false},
		{"terminator", Edit{Op: OpInsertLine, Line: 1, Text: "a\nb"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Script{Edits: []Edit{tt.edit}}).Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidEdit) {
				t.Fatalf("err = %v, want ErrInvalidEdit", err)
			}
		})
	}
}

func TestCheckReportsEveryBadEdit(t *testing.T) {
	s := &Script{Path: "edits.toml", Edits: []Edit{
		{Op: "bogus"},
		{Op: OpAppendLine, Text: "ok"},
		{Op: OpRemoveLine, Line: -3},
	}}
	bag := diag.NewBag(10)
	if s.Check(diag.BagReporter{Bag: bag}) {
		t.Fatal("Check = true")
	}
	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("diagnostics = %d", len(items))
	}
	if items[1].Code != diag.ScrInvalidEdit || items[1].Message() != "edit 3 is invalid" {
		t.Fatalf("diagnostic = %+v", items[1])
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Path != path {
		t.Fatalf("path = %q", s.Path)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ParseFile(missing) = %v", err)
	}
}
