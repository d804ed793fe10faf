package buffer

import (
	"slices"

	"lined/internal/diag"
	"lined/internal/trace"
)

// LineBuffer holds a file's lines in memory. See the package documentation
// for the addressing and accounting rules.
type LineBuffer struct {
	path  string
	lines []string

	maxTotalBytes int
	maxLineBytes  int

	reporter    diag.Reporter
	tracer      trace.Tracer
	traceParent uint64
	verbose     bool
}

// Stats reports how much a load or persist call moved.
type Stats struct {
	Lines int
	Bytes int
}

// New returns an empty buffer bound to path.
func New(path string, opts ...Option) *LineBuffer {
	b := &LineBuffer{
		path:          path,
		maxTotalBytes: DefaultMaxTotalBytes,
		maxLineBytes:  DefaultMaxLineBytes,
		reporter:      diag.NopReporter{},
		tracer:        trace.Nop,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Path returns the file the buffer is bound to.
func (b *LineBuffer) Path() string {
	return b.path
}

// Limits returns the configured ceilings.
func (b *LineBuffer) Limits() Limits {
	return Limits{MaxTotalBytes: b.maxTotalBytes, MaxLineBytes: b.maxLineBytes}
}

// LineCount returns the number of lines.
func (b *LineBuffer) LineCount() int {
	return len(b.lines)
}

// ByteSize returns the sum of len(line)+1 over all lines.
func (b *LineBuffer) ByteSize() int {
	total := 0
	for _, line := range b.lines {
		total += len(line) + 1
	}
	return total
}

// GetLine returns line n (1-based).
func (b *LineBuffer) GetLine(n int) (string, error) {
	idx, err := b.lineIndex(opGetLine, n)
	if err != nil {
		return "", err
	}
	return b.lines[idx], nil
}

// Lines returns a copy of the buffer content.
func (b *LineBuffer) Lines() []string {
	return slices.Clone(b.lines)
}

// Clear drops all content and releases its storage.
func (b *LineBuffer) Clear() {
	b.lines = nil
}
