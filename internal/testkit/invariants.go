// Package testkit holds checks and reference models shared by buffer tests
// and fuzz harnesses.
package testkit

import (
	"fmt"
	"strings"

	"lined/internal/buffer"
)

// CheckBuffer verifies the invariants every buffer must hold between calls:
// no line carries a terminator, the derived sizes agree with the content and
// the total stays within the ceiling.
func CheckBuffer(b *buffer.LineBuffer) error {
	if b == nil {
		return fmt.Errorf("nil buffer")
	}
	lines := b.Lines()
	if got := b.LineCount(); got != len(lines) {
		return fmt.Errorf("LineCount() = %d, content has %d lines", got, len(lines))
	}
	size := 0
	for i, line := range lines {
		if strings.IndexByte(line, '\n') >= 0 {
			return fmt.Errorf("line %d contains a terminator: %q", i+1, line)
		}
		size += len(line) + 1
	}
	if got := b.ByteSize(); got != size {
		return fmt.Errorf("ByteSize() = %d, content is %d bytes", got, size)
	}
	if limit := b.Limits().MaxTotalBytes; size > limit {
		return fmt.Errorf("size %d exceeds max total bytes %d", size, limit)
	}
	return nil
}

// Serialize renders lines the way the buffer writes them: a terminator after
// every line.
func Serialize(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SplitContent predicts the lines a successful load of content produces.
func SplitContent(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
