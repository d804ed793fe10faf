// Package diag defines the diagnostic records produced by buffer operations
// and the tools built on top of them.
//
// # Purpose
//
//   - Give every failing operation a deterministic, structured record:
//     which operation failed (Op), which file the buffer is bound to (Source),
//     and an ordered list of values describing the condition (Parts).
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any terminal formatting or IO. Rendering lives
// in internal/diagfmt; the CLI decides where diagnostics go.
//
// # Data model
//
//   - Severity: tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code: compact numeric identifier (see codes.go) with stable string form
//     such as BUF5001.
//   - Parts: rendered by FormatParts, one function for any number of values.
//   - Notes: optional extra lines of context.
//
// # Reporters
//
// Reporter is the single sink interface. BagReporter collects into a bounded
// Bag, MultiReporter fans out, DedupReporter drops repeats and NopReporter
// discards everything. ReportBuilder lets callers attach notes before the
// record is emitted exactly once.
package diag
