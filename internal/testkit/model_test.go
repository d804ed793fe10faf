package testkit

import (
	"errors"
	"slices"
	"testing"

	"lined/internal/buffer"
)

func TestModelAddressing(t *testing.T) {
	m := &Model{Limits: buffer.Limits{MaxTotalBytes: 100, MaxLineBytes: 10}}
	for _, s := range []string{"a", "b", "c"} {
		if err := m.AppendLine(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.InsertLine("z", 0); err != nil {
		t.Fatal(err)
	}
	if err := m.InsertLine("end", 5); err != nil {
		t.Fatal(err)
	}
	if err := m.InsertLine("x", 7); !errors.Is(err, buffer.ErrLineNotFound) {
		t.Fatalf("InsertLine past end = %v", err)
	}
	if err := m.InsertString("Q", 2, 2); err != nil {
		t.Fatal(err)
	}
	if err := m.InsertString("Q", 2, 4); !errors.Is(err, buffer.ErrPositionOutOfRange) {
		t.Fatalf("InsertString past end = %v", err)
	}
	if err := m.RemoveLine(-1); !errors.Is(err, buffer.ErrLineNotFound) {
		t.Fatalf("RemoveLine(-1) = %v", err)
	}
	want := []string{"z", "aQ", "b", "c", "end"}
	if !slices.Equal(m.Lines, want) {
		t.Fatalf("lines = %q, want %q", m.Lines, want)
	}
}

func TestCheckBufferAndSerialize(t *testing.T) {
	b := buffer.New("mem.txt")
	if err := b.Reset([]string{"one", "", "three"}); err != nil {
		t.Fatal(err)
	}
	if err := CheckBuffer(b); err != nil {
		t.Fatal(err)
	}
	if got := Serialize(b.Lines()); got != "one\n\nthree\n" {
		t.Fatalf("Serialize = %q", got)
	}
	if got := SplitContent("one\n\nthree"); !slices.Equal(got, []string{"one", "", "three"}) {
		t.Fatalf("SplitContent = %q", got)
	}
	if got := SplitContent("\n"); !slices.Equal(got, []string{""}) {
		t.Fatalf("SplitContent(newline) = %q", got)
	}
	if CheckBuffer(nil) == nil {
		t.Fatal("CheckBuffer(nil) = nil")
	}
}

func TestSameOutcome(t *testing.T) {
	wrapped := &buffer.Error{Op: "appendLine", Kind: buffer.ErrLineTooLong}
	if !SameOutcome(wrapped, buffer.ErrLineTooLong) {
		t.Error("wrapped kind not matched")
	}
	if SameOutcome(wrapped, buffer.ErrCapacityExceeded) {
		t.Error("different kinds matched")
	}
	if SameOutcome(nil, buffer.ErrLineNotFound) || !SameOutcome(nil, nil) {
		t.Error("nil handling")
	}
}
