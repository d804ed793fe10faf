package buffer

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"

	"lined/internal/diag"
)

var errOverCapacity = errors.New("over capacity")

// Load replaces the buffer content with the lines of the bound file.
// On any failure the previous content is kept.
func (b *LineBuffer) Load() (stats Stats, err error) {
	span := b.begin(opLoad)
	defer func() { b.finish(span, err) }()

	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(b.path)
	if err != nil {
		return Stats{}, b.fail(opLoad, failure{kind: ErrNotFound, cause: err}, "File does not exist")
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // read-only handle
	}()

	lines, total, err := readLines(f, b.maxTotalBytes)
	switch {
	case errors.Is(err, errOverCapacity):
		return Stats{}, b.fail(opLoad, failure{kind: ErrCapacityExceeded},
			"File exceeds max total bytes -", b.maxTotalBytes)
	case err != nil:
		return Stats{}, b.fail(opLoad, failure{kind: ErrRead, cause: err}, "Could not read file")
	}

	b.lines = lines
	stats = Stats{Lines: len(lines), Bytes: total}
	span.WithExtra("bytes", strconv.Itoa(total))
	b.status(diag.IOInfo, opLoad, "Read", b.path, "Successful:", stats.Bytes, "bytes,", stats.Lines, "lines")
	return stats, nil
}

// readLines splits r on '\n'. Content after the last terminator is a final
// line. The running len+1 count is checked while a line is still being read,
// so an oversized file is rejected without buffering more than the ceiling.
func readLines(r io.Reader, maxTotal int) ([]string, int, error) {
	br := bufio.NewReader(r)
	var (
		lines   []string
		pending []byte
		total   int
	)
	commit := func() error {
		total += len(pending) + 1
		if total > maxTotal {
			return errOverCapacity
		}
		lines = append(lines, string(pending))
		pending = pending[:0]
		return nil
	}

	for {
		chunk, err := br.ReadSlice('\n')
		switch {
		case err == nil:
			pending = append(pending, chunk[:len(chunk)-1]...)
			if cerr := commit(); cerr != nil {
				return nil, total, cerr
			}
		case errors.Is(err, bufio.ErrBufferFull):
			pending = append(pending, chunk...)
			if total+len(pending)+1 > maxTotal {
				return nil, total, errOverCapacity
			}
		case errors.Is(err, io.EOF):
			pending = append(pending, chunk...)
			if len(pending) > 0 {
				if cerr := commit(); cerr != nil {
					return nil, total, cerr
				}
			}
			return lines, total, nil
		default:
			return nil, total, err
		}
	}
}

// Overwrite writes the buffer to its own path, truncating the file.
func (b *LineBuffer) Overwrite() (stats Stats, err error) {
	span := b.begin(opOverwrite)
	defer func() { b.finish(span, err) }()

	stats, err = b.writeFile(opOverwrite, b.path)
	if err != nil {
		return Stats{}, err
	}
	b.status(diag.IOInfo, opOverwrite, "Overwrite", b.path, "Successful: wrote", stats.Bytes, "bytes,", stats.Lines, "lines")
	return stats, nil
}

// WriteTo writes the buffer to the path target is bound to. Only target's
// path is used; its lines are neither read nor changed.
func (b *LineBuffer) WriteTo(target *LineBuffer) (stats Stats, err error) {
	span := b.begin(opWriteTo)
	defer func() { b.finish(span, err) }()

	if target == nil {
		return Stats{}, b.fail(opWriteTo, failure{kind: ErrWrite}, "Could not create file", "<nil target>")
	}
	stats, err = b.writeFile(opWriteTo, target.path)
	if err != nil {
		return Stats{}, err
	}
	b.status(diag.IOInfo, opWriteTo, "Write to", target.path, "Successful: wrote", stats.Bytes, "bytes,", stats.Lines, "lines")
	return stats, nil
}

// SaveAs writes the buffer to path without rebinding the buffer.
func (b *LineBuffer) SaveAs(path string) (stats Stats, err error) {
	span := b.begin(opSaveAs)
	defer func() { b.finish(span, err) }()

	stats, err = b.writeFile(opSaveAs, path)
	if err != nil {
		return Stats{}, err
	}
	b.status(diag.IOInfo, opSaveAs, "Write to", path, "Successful: wrote", stats.Bytes, "bytes,", stats.Lines, "lines")
	return stats, nil
}

// writeFile truncates target and writes every line followed by '\n'.
// The handle is closed on every path.
func (b *LineBuffer) writeFile(op, target string) (Stats, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Stats{}, b.fail(op, failure{kind: ErrWrite, cause: err}, "Could not create file", target)
	}

	w := bufio.NewWriter(f)
	for _, line := range b.lines {
		// bufio.Writer keeps the first error; Flush reports it.
		_, _ = w.WriteString(line) //nolint:errcheck
		_ = w.WriteByte('\n')      //nolint:errcheck
	}
	if err := w.Flush(); err != nil {
		_ = f.Close() //nolint:errcheck
		return Stats{}, b.fail(op, failure{kind: ErrWrite, cause: err}, "Could not write file", target)
	}
	if err := f.Close(); err != nil {
		return Stats{}, b.fail(op, failure{kind: ErrWrite, cause: err}, "Could not write file", target)
	}
	return Stats{Lines: len(b.lines), Bytes: b.ByteSize()}, nil
}
