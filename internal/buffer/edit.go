package buffer

import (
	"slices"
)

// shrinkSlack is the spare capacity RemoveLine tolerates before reallocating.
const shrinkSlack = 16

// AppendLine adds text as a new last line.
func (b *LineBuffer) AppendLine(text string) (err error) {
	span := b.begin(opAppendLine)
	defer func() { b.finish(span, err) }()

	if err := b.checkText(opAppendLine, text); err != nil {
		return err
	}
	if err := b.validate(opAppendLine, text, b.ByteSize()+len(text)+1); err != nil {
		return err
	}
	b.lines = append(b.lines, text)
	return nil
}

// InsertLine inserts text before line n. n == LineCount()+1 appends.
func (b *LineBuffer) InsertLine(text string, n int) (err error) {
	span := b.begin(opInsertLine)
	defer func() { b.finish(span, err) }()

	idx, err := b.slotIndex(opInsertLine, n)
	if err != nil {
		return err
	}
	if err := b.checkText(opInsertLine, text); err != nil {
		return err
	}
	if err := b.validate(opInsertLine, text, b.ByteSize()+len(text)+1); err != nil {
		return err
	}
	b.lines = slices.Insert(b.lines, idx, text)
	return nil
}

// AppendString appends text to the end of existing line n.
func (b *LineBuffer) AppendString(text string, n int) (err error) {
	span := b.begin(opAppendString)
	defer func() { b.finish(span, err) }()

	idx, err := b.lineIndex(opAppendString, n)
	if err != nil {
		return err
	}
	if err := b.checkText(opAppendString, text); err != nil {
		return err
	}
	joined := b.lines[idx] + text
	if err := b.validate(opAppendString, joined, b.ByteSize()+len(text)); err != nil {
		return err
	}
	b.lines[idx] = joined
	return nil
}

// InsertString splices text into line n before character position pos.
// pos == len(line)+1 appends to the line.
func (b *LineBuffer) InsertString(text string, n, pos int) (err error) {
	span := b.begin(opInsertString)
	defer func() { b.finish(span, err) }()

	idx, off, err := b.positionIndex(opInsertString, n, pos)
	if err != nil {
		return err
	}
	if err := b.checkText(opInsertString, text); err != nil {
		return err
	}
	line := b.lines[idx]
	joined := line[:off] + text + line[off:]
	if err := b.validate(opInsertString, joined, b.ByteSize()+len(text)); err != nil {
		return err
	}
	b.lines[idx] = joined
	return nil
}

// RemoveLine deletes line n, shifting later lines up.
func (b *LineBuffer) RemoveLine(n int) (err error) {
	span := b.begin(opRemoveLine)
	defer func() { b.finish(span, err) }()

	idx, err := b.lineIndex(opRemoveLine, n)
	if err != nil {
		return err
	}
	b.lines = slices.Delete(b.lines, idx, idx+1)
	if cap(b.lines) > 2*len(b.lines)+shrinkSlack {
		b.lines = slices.Clip(slices.Clone(b.lines))
	}
	return nil
}

// Reset replaces the whole content with lines, or changes nothing if any line
// breaks the invariants or the ceilings.
func (b *LineBuffer) Reset(lines []string) (err error) {
	span := b.begin(opReset)
	defer func() { b.finish(span, err) }()

	total := 0
	for _, line := range lines {
		if err := b.checkText(opReset, line); err != nil {
			return err
		}
		total += len(line) + 1
		if err := b.validate(opReset, line, total); err != nil {
			return err
		}
	}
	b.lines = slices.Clone(lines)
	return nil
}
