package buffer

import (
	"errors"
	"strings"
	"testing"

	"lined/internal/diag"
)

func TestAppendLine(t *testing.T) {
	b := New("mem.txt", WithMaxTotalBytes(10), WithMaxLineBytes(4))
	if err := b.AppendLine("abcd"); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}
	if err := b.AppendLine(""); err != nil {
		t.Fatalf("AppendLine empty: %v", err)
	}
	assertLines(t, b, "abcd", "")
	if b.ByteSize() != 6 {
		t.Fatalf("size = %d, want 6", b.ByteSize())
	}

	if err := b.AppendLine("abcde"); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("AppendLine too long = %v", err)
	}
	// 6 + 4 + 1 = 11 > 10
	if err := b.AppendLine("wxyz"); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("AppendLine over capacity = %v", err)
	}
	// 6 + 3 + 1 = 10 is allowed
	if err := b.AppendLine("xyz"); err != nil {
		t.Fatalf("AppendLine at ceiling: %v", err)
	}
	if b.ByteSize() != 10 {
		t.Fatalf("size = %d, want 10", b.ByteSize())
	}
}

func TestLineTooLongCheckedFirst(t *testing.T) {
	bag := diag.NewBag(10)
	b := New("mem.txt", WithMaxTotalBytes(3), WithMaxLineBytes(2), WithReporter(diag.BagReporter{Bag: bag}))
	if err := b.AppendLine("toolong"); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("got %v, want ErrLineTooLong", err)
	}
	d := assertDiag(t, bag, diag.BufLineTooLong, "appendLine")
	if d.Message() != "input string exceeds max line bytes - 2" {
		t.Fatalf("message = %q", d.Message())
	}
}

func TestInsertLineBoundaries(t *testing.T) {
	b, bag := loaded(t, "a\nb\nc\n")

	if err := b.InsertLine("end", b.LineCount()+1); err != nil {
		t.Fatalf("insert at count+1: %v", err)
	}
	assertLines(t, b, "a", "b", "c", "end")

	err := b.InsertLine("far", b.LineCount()+2)
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("insert at count+2 = %v", err)
	}
	d := assertDiag(t, bag, diag.BufLineNotFound, "insertLine")
	if d.Message() != "Line 6 does not exist" {
		t.Fatalf("message = %q", d.Message())
	}
	assertLines(t, b, "a", "b", "c", "end")

	if err := b.InsertLine("zero", 0); err != nil {
		t.Fatalf("insert at 0: %v", err)
	}
	if err := b.InsertLine("mid", 3); err != nil {
		t.Fatalf("insert at 3: %v", err)
	}
	assertLines(t, b, "zero", "a", "mid", "b", "c", "end")

	if err := b.InsertLine("neg", -2); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("insert at -2 = %v", err)
	}
}

func TestInsertLineEqualsAppendAtEnd(t *testing.T) {
	a, _ := loaded(t, "x\ny\n")
	b, _ := loaded(t, "x\ny\n")
	if err := a.InsertLine("tail", a.LineCount()+1); err != nil {
		t.Fatal(err)
	}
	if err := b.AppendLine("tail"); err != nil {
		t.Fatal(err)
	}
	assertLines(t, a, b.Lines()...)
}

func TestInsertThenGetLine(t *testing.T) {
	for n := 1; n <= 4; n++ {
		b, _ := loaded(t, "1\n2\n3\n")
		if err := b.InsertLine("new", n); err != nil {
			t.Fatalf("InsertLine(%d): %v", n, err)
		}
		if got, err := b.GetLine(n); err != nil || got != "new" {
			t.Fatalf("GetLine(%d) after insert = %q, %v", n, got, err)
		}
	}
}

func TestRemoveInsertRoundTrip(t *testing.T) {
	for n := 1; n <= 3; n++ {
		b, _ := loaded(t, "alpha\nbeta\ngamma\n")
		original, _ := b.GetLine(n)
		if err := b.RemoveLine(n); err != nil {
			t.Fatalf("RemoveLine(%d): %v", n, err)
		}
		if b.LineCount() != 2 {
			t.Fatalf("count after remove = %d", b.LineCount())
		}
		if err := b.InsertLine(original, n); err != nil {
			t.Fatalf("InsertLine(%d): %v", n, err)
		}
		assertLines(t, b, "alpha", "beta", "gamma")
	}
}

func TestRemoveLine(t *testing.T) {
	b, bag := loaded(t, "a\nb\n")
	if err := b.RemoveLine(3); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("RemoveLine(3) = %v", err)
	}
	assertDiag(t, bag, diag.BufLineNotFound, "removeLine")
	if err := b.RemoveLine(0); err != nil {
		t.Fatalf("RemoveLine(0): %v", err)
	}
	assertLines(t, b, "b")
	if err := b.RemoveLine(1); err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 0 {
		t.Fatalf("expected empty buffer")
	}
	if err := b.RemoveLine(1); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("RemoveLine on empty = %v", err)
	}
}

func TestRemoveLineReleasesStorage(t *testing.T) {
	b := New("mem.txt")
	for i := 0; i < 200; i++ {
		if err := b.AppendLine("line"); err != nil {
			t.Fatal(err)
		}
	}
	for b.LineCount() > 10 {
		if err := b.RemoveLine(1); err != nil {
			t.Fatal(err)
		}
	}
	if c := cap(b.lines); c > 2*b.LineCount()+shrinkSlack {
		t.Fatalf("capacity %d not released for %d lines", c, b.LineCount())
	}
}

func TestAppendString(t *testing.T) {
	b, bag := loaded(t, "ab\ncd\n", WithMaxLineBytes(4), WithMaxTotalBytes(8))

	if err := b.AppendString("X", 3); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("AppendString on line 3 = %v", err)
	}
	assertDiag(t, bag, diag.BufLineNotFound, "appendString")

	if err := b.AppendString("xyz", 1); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("AppendString too long = %v", err)
	}
	if err := b.AppendString("yz", 1); err != nil {
		t.Fatalf("AppendString to 4 bytes: %v", err)
	}
	// total is now 8, any growth passes the ceiling
	if err := b.AppendString("!", 2); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("AppendString over capacity = %v", err)
	}
	assertLines(t, b, "abyz", "cd")
}

func TestInsertString(t *testing.T) {
	b, bag := loaded(t, "hello\n")

	if err := b.InsertString(", world", 1, 6); err != nil {
		t.Fatalf("insert at len+1: %v", err)
	}
	if err := b.InsertString(">", 1, 1); err != nil {
		t.Fatalf("insert at 1: %v", err)
	}
	if err := b.InsertString("<", 0, 0); err != nil {
		t.Fatalf("insert at 0,0: %v", err)
	}
	if err := b.InsertString("-", 1, 4); err != nil {
		t.Fatalf("insert at 4: %v", err)
	}
	assertLines(t, b, "<>h-ello, world")

	if err := b.InsertString("x", 2, 1); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("insert on missing line = %v", err)
	}
	assertDiag(t, bag, diag.BufLineNotFound, "insertString")
}

func TestInsertStringPastEnd(t *testing.T) {
	b, bag := loaded(t, "a\n")
	err := b.InsertString("Z", 1, 10)
	if !errors.Is(err, ErrPositionOutOfRange) {
		t.Fatalf("InsertString(Z, 1, 10) = %v", err)
	}
	var be *Error
	if !errors.As(err, &be) || be.Line != 1 || be.Pos != 10 {
		t.Fatalf("error = %+v", be)
	}
	d := assertDiag(t, bag, diag.BufPositionOutOfRange, "insertString")
	if d.Message() != "cannot insert to line 1 at position 10" {
		t.Fatalf("message = %q", d.Message())
	}
	// len+1 = 2 is the last valid position
	if err := b.InsertString("Z", 1, 3); !errors.Is(err, ErrPositionOutOfRange) {
		t.Fatalf("InsertString at len+2 = %v", err)
	}
	if err := b.InsertString("Z", 1, 2); err != nil {
		t.Fatalf("InsertString at len+1: %v", err)
	}
	assertLines(t, b, "aZ")
}

func TestInsertStringCeilings(t *testing.T) {
	b, _ := loaded(t, "abc\n", WithMaxLineBytes(5), WithMaxTotalBytes(5))
	if err := b.InsertString("xyz", 1, 2); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("got %v, want ErrLineTooLong", err)
	}
	if err := b.InsertString("xy", 1, 2); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("got %v, want ErrCapacityExceeded", err)
	}
	if err := b.InsertString("x", 1, 2); err != nil {
		t.Fatal(err)
	}
	assertLines(t, b, "axbc")
}

func TestEmbeddedTerminatorRejected(t *testing.T) {
	b, bag := loaded(t, "a\n")
	checks := []struct {
		op  string
		run func() error
	}{
		{"appendLine", func() error { return b.AppendLine("x\ny") }},
		{"insertLine", func() error { return b.InsertLine("x\n", 1) }},
		{"appendString", func() error { return b.AppendString("\n", 1) }},
		{"insertString", func() error { return b.InsertString("\nz", 1, 1) }},
		{"reset", func() error { return b.Reset([]string{"ok", "bad\n"}) }},
	}
	for _, c := range checks {
		if err := c.run(); !errors.Is(err, ErrEmbeddedTerminator) {
			t.Fatalf("%s: got %v, want ErrEmbeddedTerminator", c.op, err)
		}
		assertDiag(t, bag, diag.BufEmbeddedTerminator, c.op)
	}
	assertLines(t, b, "a")
}

func TestSuccessfulMutationsRespectCeilings(t *testing.T) {
	const maxTotal, maxLine = 64, 8
	b := New("mem.txt", WithMaxTotalBytes(maxTotal), WithMaxLineBytes(maxLine))
	texts := []string{"a", "bbbb", "cccccccc", "ddddddddd", "", "ee"}
	for i := 0; i < 40; i++ {
		text := texts[i%len(texts)]
		switch i % 4 {
		case 0:
			_ = b.AppendLine(text)
		case 1:
			_ = b.InsertLine(text, i%5)
		case 2:
			_ = b.AppendString(text, i%3+1)
		case 3:
			_ = b.InsertString(text, 1, i%4)
		}
		if b.ByteSize() > maxTotal {
			t.Fatalf("step %d: size %d over ceiling", i, b.ByteSize())
		}
		for _, line := range b.Lines() {
			if len(line) > maxLine {
				t.Fatalf("step %d: line %q over ceiling", i, line)
			}
		}
	}
}

func TestReset(t *testing.T) {
	b, _ := loaded(t, "old\n", WithMaxTotalBytes(9), WithMaxLineBytes(4))
	if err := b.Reset([]string{"abcd", "toolong"}); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("Reset with long line = %v", err)
	}
	if err := b.Reset([]string{"abcd", "efgh"}); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("Reset over capacity = %v", err)
	}
	assertLines(t, b, "old")

	src := []string{"ab", "cd"}
	if err := b.Reset(src); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	src[0] = "changed"
	assertLines(t, b, "ab", "cd")
	if err := b.Reset(nil); err != nil || b.LineCount() != 0 {
		t.Fatalf("Reset(nil) = %v, %d lines", err, b.LineCount())
	}
}

func TestFailureEmitsExactlyOneDiagnostic(t *testing.T) {
	b, bag := loaded(t, "a\n", WithMaxTotalBytes(4))
	before := bag.Len()
	_ = b.AppendLine(strings.Repeat("x", 10))
	if bag.Len() != before+1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len()-before)
	}
}
