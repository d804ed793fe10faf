package testkit

import (
	"errors"
	"slices"
	"strings"

	"lined/internal/buffer"
)

// Model is a deliberately naive reference implementation of the buffer's
// addressing and ceiling rules. Fuzz harnesses run the same edits against a
// Model and a real buffer and compare the outcomes.
type Model struct {
	Lines  []string
	Limits buffer.Limits
}

func (m *Model) size() int {
	n := 0
	for _, l := range m.Lines {
		n += len(l) + 1
	}
	return n
}

func zeroBased(n int) int {
	if n > 0 {
		return n - 1
	}
	return n
}

func (m *Model) check(candidate string, projected int) error {
	if strings.Contains(candidate, "\n") {
		return buffer.ErrEmbeddedTerminator
	}
	if len(candidate) > m.Limits.MaxLineBytes {
		return buffer.ErrLineTooLong
	}
	if projected > m.Limits.MaxTotalBytes {
		return buffer.ErrCapacityExceeded
	}
	return nil
}

func (m *Model) existing(n int) (int, error) {
	i := zeroBased(n)
	if i < 0 || i >= len(m.Lines) {
		return 0, buffer.ErrLineNotFound
	}
	return i, nil
}

func (m *Model) AppendLine(text string) error {
	if err := m.check(text, m.size()+len(text)+1); err != nil {
		return err
	}
	m.Lines = append(m.Lines, text)
	return nil
}

func (m *Model) InsertLine(text string, n int) error {
	i := zeroBased(n)
	if i < 0 || i > len(m.Lines) {
		return buffer.ErrLineNotFound
	}
	if err := m.check(text, m.size()+len(text)+1); err != nil {
		return err
	}
	m.Lines = slices.Insert(m.Lines, i, text)
	return nil
}

func (m *Model) AppendString(text string, n int) error {
	i, err := m.existing(n)
	if err != nil {
		return err
	}
	if strings.Contains(text, "\n") {
		return buffer.ErrEmbeddedTerminator
	}
	joined := m.Lines[i] + text
	if err := m.check(joined, m.size()+len(text)); err != nil {
		return err
	}
	m.Lines[i] = joined
	return nil
}

func (m *Model) InsertString(text string, n, pos int) error {
	i, err := m.existing(n)
	if err != nil {
		return err
	}
	off := zeroBased(pos)
	if off < 0 || off > len(m.Lines[i]) {
		return buffer.ErrPositionOutOfRange
	}
	if strings.Contains(text, "\n") {
		return buffer.ErrEmbeddedTerminator
	}
	line := m.Lines[i]
	joined := line[:off] + text + line[off:]
	if err := m.check(joined, m.size()+len(text)); err != nil {
		return err
	}
	m.Lines[i] = joined
	return nil
}

func (m *Model) RemoveLine(n int) error {
	i, err := m.existing(n)
	if err != nil {
		return err
	}
	m.Lines = slices.Delete(m.Lines, i, i+1)
	return nil
}

// SameOutcome reports whether a buffer error and a model error name the same
// failure kind (or are both nil).
func SameOutcome(bufErr, modelErr error) bool {
	if bufErr == nil || modelErr == nil {
		return bufErr == nil && modelErr == nil
	}
	return errors.Is(bufErr, modelErr)
}
