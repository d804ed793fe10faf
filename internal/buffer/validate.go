package buffer

import "strings"

// validate checks a candidate line and the projected total before any mutation.
// candidate is the full content the affected line would have afterwards.
func (b *LineBuffer) validate(op, candidate string, projectedTotal int) error {
	if len(candidate) > b.maxLineBytes {
		return b.fail(op, failure{kind: ErrLineTooLong},
			"input string exceeds max line bytes -", b.maxLineBytes)
	}
	if projectedTotal > b.maxTotalBytes {
		return b.fail(op, failure{kind: ErrCapacityExceeded},
			"Operation causes file to exceed max total bytes -", b.maxTotalBytes)
	}
	return nil
}

// checkText rejects input that would break the terminator-free invariant.
func (b *LineBuffer) checkText(op, text string) error {
	if strings.IndexByte(text, '\n') >= 0 {
		return b.fail(op, failure{kind: ErrEmbeddedTerminator}, "input string contains a line terminator")
	}
	return nil
}
