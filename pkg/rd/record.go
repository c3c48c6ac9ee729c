package rd

import (
	"bytes"
	"encoding/binary"
)

// WordSize is the width of one command-stream word in bytes.
const WordSize = 4

// Record is one decoded section. Payload is owned by the record and sized
// exactly to the length found in the header.
type Record struct {
	Kind    Kind
	Payload []byte
}

// Text returns the payload as a string, cut at the first NUL byte.
func (r Record) Text() string {
	if i := bytes.IndexByte(r.Payload, 0); i >= 0 {
		return string(r.Payload[:i])
	}
	return string(r.Payload)
}

// Words decodes the payload as little-endian 32-bit words.
// Trailing bytes that do not fill a whole word are ignored.
func (r Record) Words() Words {
	n := len(r.Payload) / WordSize
	w := make(Words, n)
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(r.Payload[i*WordSize:])
	}
	return w
}

// Words is a bounds-checked view over a record's 32-bit words.
type Words []uint32

// Len returns the number of valid words.
func (w Words) Len() int {
	return len(w)
}

// At returns the word at index i, or 0 when i is outside the view.
// Alignment probes past either end of a shorter stream and relies on
// those reads being zero.
func (w Words) At(i int) uint32 {
	if i < 0 || i >= len(w) {
		return 0
	}
	return w[i]
}
