package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so a failing command can
// print what led up to the failure. It records every scope regardless of
// level.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	total  uint64 // events ever emitted; the next slot is total % len(events)
	level  Level
}

// NewRingTracer creates a RingTracer holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || t.level == LevelOff {
		return
	}
	t.mu.Lock()
	t.events[t.total%uint64(len(t.events))] = *ev
	t.total++
	t.mu.Unlock()
}

// Len returns the number of events currently held.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(min(t.total, uint64(len(t.events))))
}

// Dropped returns how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.total <= uint64(len(t.events)) {
		return 0
	}
	return t.total - uint64(len(t.events))
}

// Snapshot returns the held events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := uint64(len(t.events))
	start := uint64(0)
	if t.total > size {
		start = t.total - size
	}
	out := make([]Event, 0, t.total-start)
	for i := start; i < t.total; i++ {
		out = append(out, t.events[i%size])
	}
	return out
}

// Dump writes the held events to w, oldest first.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// Flush and Close have nothing to release; events live in memory only.
func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
