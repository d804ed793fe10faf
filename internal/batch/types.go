package batch

import (
	"time"

	"lined/internal/buffer"
	"lined/internal/diag"
	"lined/internal/script"
)

// Stage describes a per-file phase.
type Stage string

const (
	// StageLoad reads the file into a buffer.
	StageLoad Stage = "load"
	// StageEdit applies the script.
	StageEdit Stage = "edit"
	// StageWrite persists the buffer.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is in the given stage.
	StatusWorking Status = "working"
	// StatusDone indicates the file was written.
	StatusDone Status = "done"
	// StatusError indicates the file failed in the given stage.
	StatusError Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be safe for
// concurrent use.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}

// Request describes one batch run.
type Request struct {
	Files  []string
	Script *script.Script

	// OutDir receives the edited files. Empty means overwrite in place.
	OutDir string

	Jobs           int
	Limits         buffer.Limits
	MaxDiagnostics int
	Verbose        bool
	Progress       Sink
}

// Result is the outcome for one input file.
type Result struct {
	File    string
	Output  string
	Applied int
	Stats   buffer.Stats
	Bag     *diag.Bag
	Stage   Stage // last stage reached
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the file was not written.
func (r Result) Failed() bool {
	return r.Err != nil
}
