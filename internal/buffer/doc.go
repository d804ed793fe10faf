// Package buffer implements LineBuffer, an in-memory, line-oriented editing
// buffer for a single text file.
//
// A buffer is bound to a path at construction. Load reads the whole file,
// splitting on '\n'; mutations address lines (and byte positions within a
// line) with 1-based numbers; Overwrite, WriteTo and SaveAs persist the lines
// with a '\n' after every line, including the last.
//
// # Size accounting
//
// ByteSize counts len(line)+1 for every line, modelling one terminator byte per
// line whether or not the file ended with one. Two ceilings fixed at
// construction bound the buffer: MaxTotalBytes for ByteSize and MaxLineBytes
// for any single line produced by a mutation.
//
// # Addressing
//
// Line and position numbers are 1-based. Zero is treated as 1, so GetLine(0)
// and GetLine(1) both return the first line. Negative numbers are always out
// of range.
//
// # Failures
//
// Every failing operation leaves the buffer unchanged, returns an *Error that
// wraps one of the Err* kinds, and emits exactly one diag.Diagnostic through
// the configured Reporter. A failed Load keeps the previous content.
//
// A LineBuffer is not safe for concurrent use.
package buffer
