package buffer

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"lined/internal/diag"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// loaded returns a buffer over content with diagnostics collected in the returned bag.
func loaded(t *testing.T, content string, opts ...Option) (*LineBuffer, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	opts = append([]Option{WithReporter(diag.BagReporter{Bag: bag})}, opts...)
	b := New(writeTemp(t, "in.txt", content), opts...)
	if _, err := b.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return b, bag
}

func assertLines(t *testing.T, b *LineBuffer, want ...string) {
	t.Helper()
	got := b.Lines()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !slices.Equal(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func assertDiag(t *testing.T, bag *diag.Bag, code diag.Code, op string) diag.Diagnostic {
	t.Helper()
	if bag.Len() == 0 {
		t.Fatalf("expected a %s diagnostic from %s, got none", code.ID(), op)
	}
	d := bag.Items()[bag.Len()-1]
	if d.Code != code || d.Op != op || d.Severity != diag.SevError {
		t.Fatalf("last diagnostic = %+v, want %s from %s", d, code.ID(), op)
	}
	return d
}
