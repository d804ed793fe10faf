package diagfmt

import (
	"io"
	"sync"

	"lined/internal/diag"
)

// StreamReporter prints every diagnostic as soon as it is reported.
// It is safe for concurrent use so batch workers can share one.
type StreamReporter struct {
	mu   sync.Mutex
	w    io.Writer
	opts PrettyOpts
}

// NewStreamReporter returns a reporter that pretty-prints to w.
func NewStreamReporter(w io.Writer, opts PrettyOpts) *StreamReporter {
	return &StreamReporter{w: w, opts: opts}
}

func (r *StreamReporter) Report(d diag.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	PrettyOne(r.w, d, r.opts)
}
