// Package snapshot stores the content of a line buffer in a msgpack file so it
// can be restored later, possibly into a different path.
package snapshot

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"lined/internal/buffer"
)

// SchemaVersion is bumped whenever Payload changes shape.
const SchemaVersion uint16 = 1

var (
	// ErrCorrupt is returned when a payload fails its count or hash check.
	ErrCorrupt = errors.New("snapshot is corrupt")
	// ErrSchema is returned for payloads written by an incompatible version.
	ErrSchema = errors.New("unsupported snapshot schema")
)

// Payload is the on-disk snapshot record.
type Payload struct {
	Schema uint16

	// Buffer metadata
	Path          string
	MaxTotalBytes int64
	MaxLineBytes  int64
	Created       time.Time

	// Content
	LineCount uint32
	ByteSize  uint64
	Hash      [32]byte // sha256 over every line followed by '\n'
	Lines     []string
}

// Capture copies the content and limits of b into a new payload.
func Capture(b *buffer.LineBuffer) (*Payload, error) {
	lines := b.Lines()
	count, err := safecast.Conv[uint32](len(lines))
	if err != nil {
		return nil, fmt.Errorf("line count overflow: %w", err)
	}
	size, err := safecast.Conv[uint64](b.ByteSize())
	if err != nil {
		return nil, fmt.Errorf("byte size overflow: %w", err)
	}
	limits := b.Limits()
	return &Payload{
		Schema:        SchemaVersion,
		Path:          b.Path(),
		MaxTotalBytes: int64(limits.MaxTotalBytes),
		MaxLineBytes:  int64(limits.MaxLineBytes),
		Created:       time.Now().UTC(),
		LineCount:     count,
		ByteSize:      size,
		Hash:          hashLines(lines),
		Lines:         lines,
	}, nil
}

// Limits returns the ceilings recorded at capture time.
func (p *Payload) Limits() (buffer.Limits, error) {
	total, err := safecast.Conv[int](p.MaxTotalBytes)
	if err != nil {
		return buffer.Limits{}, fmt.Errorf("%w: max total bytes: %w", ErrCorrupt, err)
	}
	line, err := safecast.Conv[int](p.MaxLineBytes)
	if err != nil {
		return buffer.Limits{}, fmt.Errorf("%w: max line bytes: %w", ErrCorrupt, err)
	}
	return buffer.Limits{MaxTotalBytes: total, MaxLineBytes: line}, nil
}

// Verify checks the schema, the recorded counts and the content hash.
func (p *Payload) Verify() error {
	if p.Schema != SchemaVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrSchema, p.Schema, SchemaVersion)
	}
	count, err := safecast.Conv[int](p.LineCount)
	if err != nil || count != len(p.Lines) {
		return fmt.Errorf("%w: header says %d lines, payload has %d", ErrCorrupt, p.LineCount, len(p.Lines))
	}
	var size uint64
	for _, line := range p.Lines {
		size += uint64(len(line)) + 1
	}
	if size != p.ByteSize {
		return fmt.Errorf("%w: header says %d bytes, payload has %d", ErrCorrupt, p.ByteSize, size)
	}
	if hashLines(p.Lines) != p.Hash {
		return fmt.Errorf("%w: content hash mismatch", ErrCorrupt)
	}
	return nil
}

// Restore replaces the content of b with the snapshot. The buffer's own
// ceilings apply, so a snapshot taken with larger limits may be rejected.
func Restore(b *buffer.LineBuffer, p *Payload) error {
	if err := p.Verify(); err != nil {
		return err
	}
	return b.Reset(p.Lines)
}

// Save writes p to path atomically.
func Save(path string, p *Payload) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		_ = os.Remove(tmp) //nolint:errcheck
	}()

	if err := msgpack.NewEncoder(f).Encode(p); err != nil {
		_ = f.Close() //nolint:errcheck
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, path)
}

// Load reads and verifies a snapshot.
func Load(path string) (*Payload, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close() //nolint:errcheck
	}()

	var p Payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := p.Verify(); err != nil {
		return nil, err
	}
	return &p, nil
}

func hashLines(lines []string) [32]byte {
	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
