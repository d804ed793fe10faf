package buffer

// Every public entry point converts caller numbers through these helpers;
// nothing else subtracts one.

// storageIndex maps a 1-based number onto a 0-based index. Zero maps to zero,
// negative numbers stay negative and are rejected by the callers.
func storageIndex(n int) int {
	if n > 0 {
		return n - 1
	}
	return n
}

// lineIndex resolves n to an existing line: the index must lie in [0, LineCount).
func (b *LineBuffer) lineIndex(op string, n int) (int, error) {
	idx := storageIndex(n)
	if idx < 0 || idx >= len(b.lines) {
		return 0, b.fail(op, failure{kind: ErrLineNotFound, line: n}, "Line", n, "does not exist")
	}
	return idx, nil
}

// slotIndex resolves n to an insertion slot: the index must lie in [0, LineCount].
// A slot equal to LineCount appends.
func (b *LineBuffer) slotIndex(op string, n int) (int, error) {
	idx := storageIndex(n)
	if idx < 0 || idx > len(b.lines) {
		return 0, b.fail(op, failure{kind: ErrLineNotFound, line: n}, "Line", n, "does not exist")
	}
	return idx, nil
}

// positionIndex resolves line n and character position pos. The byte offset
// must lie in [0, len(line)]; an offset equal to len(line) appends.
func (b *LineBuffer) positionIndex(op string, n, pos int) (idx, off int, err error) {
	idx, err = b.lineIndex(op, n)
	if err != nil {
		return 0, 0, err
	}
	off = storageIndex(pos)
	if off < 0 || off > len(b.lines[idx]) {
		return 0, 0, b.fail(op, failure{kind: ErrPositionOutOfRange, line: n, pos: pos},
			"cannot insert to line", n, "at position", pos)
	}
	return idx, off, nil
}
