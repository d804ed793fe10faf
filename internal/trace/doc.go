// Package trace records what the editor did and how long it took.
//
// Buffer operations, per-file batch work and CLI commands open spans; a
// Tracer decides whether and where the events go.
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing is streamed; the ring is dumped on failure
//   - LevelFile: command and per-file boundaries
//   - LevelOp: every buffer operation
//   - LevelDebug: everything
//
// # Usage
//
//	span := trace.Begin(t, trace.ScopeOp, "buffer.load", 0)
//	defer span.End("")
package trace
