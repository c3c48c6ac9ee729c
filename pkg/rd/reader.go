// Package rd decodes and encodes the section-framed dump files written by
// the command-stream capture tool.
//
// A dump is a sequence of sections, each a little-endian u32 kind, a
// little-endian u32 payload length and the payload itself, with no padding
// between sections.
package rd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the size of a section header: kind and length.
const HeaderSize = 8

// MaxPayload caps the payload a single section may declare.
const MaxPayload = 64 << 20

var (
	// ErrUnknownKind indicates a section header with a kind outside the known set.
	ErrUnknownKind = errors.New("unknown record kind")

	// ErrRecordTooLarge indicates a section length above MaxPayload.
	ErrRecordTooLarge = errors.New("record too large")

	// ErrShortPayload indicates a payload too small for its record kind.
	ErrShortPayload = errors.New("payload too short")

	// ErrInvalidParam indicates a parameter section with an unknown kind or
	// a bit length wider than a word.
	ErrInvalidParam = errors.New("invalid parameter")
)

// Reader decodes sections from an input stream.
type Reader struct {
	r   io.Reader
	hdr [HeaderSize]byte
	n   int // sections read
}

// NewReader returns a Reader decoding sections from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next decodes the next section. It returns io.EOF when the input ends
// cleanly on a section boundary and io.ErrUnexpectedEOF (wrapped) when it
// ends inside a header or payload.
func (r *Reader) Next() (Record, error) {
	n, err := io.ReadFull(r.r, r.hdr[:])
	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("record %d header: %w", r.n, err)
	}

	kind := Kind(binary.LittleEndian.Uint32(r.hdr[0:4]))
	length := binary.LittleEndian.Uint32(r.hdr[4:8])
	if !kind.Valid() {
		return Record{}, fmt.Errorf("record %d: %w: %d", r.n, ErrUnknownKind, uint32(kind))
	}
	if length > MaxPayload {
		return Record{}, fmt.Errorf("record %d (%s): %w: %d bytes", r.n, kind, ErrRecordTooLarge, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Record{}, fmt.Errorf("record %d (%s) payload: %w", r.n, kind, err)
	}

	r.n++
	return Record{Kind: kind, Payload: payload}, nil
}

// Count returns the number of sections decoded so far.
func (r *Reader) Count() int {
	return r.n
}
