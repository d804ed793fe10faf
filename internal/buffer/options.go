package buffer

import (
	"lined/internal/diag"
	"lined/internal/trace"
)

const (
	// DefaultMaxTotalBytes bounds ByteSize when no limit is configured.
	DefaultMaxTotalBytes = 32 << 20
	// DefaultMaxLineBytes bounds a single line when no limit is configured.
	DefaultMaxLineBytes = 64 << 10
)

// Limits holds the two ceilings of a buffer.
type Limits struct {
	MaxTotalBytes int
	MaxLineBytes  int
}

// DefaultLimits returns the limits used when no option overrides them.
func DefaultLimits() Limits {
	return Limits{MaxTotalBytes: DefaultMaxTotalBytes, MaxLineBytes: DefaultMaxLineBytes}
}

// Option is a functional option for configuring a LineBuffer.
type Option func(*LineBuffer)

// WithMaxTotalBytes sets the total size ceiling. Non-positive values are ignored.
func WithMaxTotalBytes(n int) Option {
	return func(b *LineBuffer) {
		if n > 0 {
			b.maxTotalBytes = n
		}
	}
}

// WithMaxLineBytes sets the single line ceiling. Non-positive values are ignored.
func WithMaxLineBytes(n int) Option {
	return func(b *LineBuffer) {
		if n > 0 {
			b.maxLineBytes = n
		}
	}
}

// WithLimits sets both ceilings.
func WithLimits(l Limits) Option {
	return func(b *LineBuffer) {
		WithMaxTotalBytes(l.MaxTotalBytes)(b)
		WithMaxLineBytes(l.MaxLineBytes)(b)
	}
}

// WithReporter routes diagnostics to r.
func WithReporter(r diag.Reporter) Option {
	return func(b *LineBuffer) {
		if r != nil {
			b.reporter = r
		}
	}
}

// WithVerbose makes successful load and persist calls emit an info diagnostic.
func WithVerbose(v bool) Option {
	return func(b *LineBuffer) {
		b.verbose = v
	}
}

// WithTracer records one op-scope span per operation.
func WithTracer(t trace.Tracer) Option {
	return func(b *LineBuffer) {
		if t != nil {
			b.tracer = t
		}
	}
}

// WithTraceParent nests the buffer's spans under an existing span.
func WithTraceParent(id uint64) Option {
	return func(b *LineBuffer) {
		b.traceParent = id
	}
}
