package rd

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer encodes sections in the dump format.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer emitting sections to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write emits one section with the given kind and raw payload.
func (w *Writer) Write(kind Kind, payload []byte) error {
	if !kind.Valid() {
		return fmt.Errorf("write: %w: %d", ErrUnknownKind, uint32(kind))
	}
	hdr := [2]uint32{uint32(kind), uint32(len(payload))}
	if err := binary.Write(w.w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("write %s header: %w", kind, err)
	}
	if _, err := w.w.Write(payload); err != nil {
		return fmt.Errorf("write %s payload: %w", kind, err)
	}
	return nil
}

// WriteWords emits a section whose payload is the given words, little-endian.
func (w *Writer) WriteWords(kind Kind, words ...uint32) error {
	payload := make([]byte, len(words)*WordSize)
	for i, v := range words {
		binary.LittleEndian.PutUint32(payload[i*WordSize:], v)
	}
	return w.Write(kind, payload)
}

// WriteText emits a text section (KindTest or KindCmd) NUL-terminated.
func (w *Writer) WriteText(kind Kind, text string) error {
	payload := make([]byte, len(text)+1)
	copy(payload, text)
	return w.Write(kind, payload)
}

// WriteGPUAddr emits a GPU-address announcement.
func (w *Writer) WriteGPUAddr(addr, size uint32) error {
	return w.WriteWords(KindGPUAddr, addr, size)
}

// WriteParam emits a parameter announcement.
func (w *Writer) WriteParam(p Param) error {
	return w.WriteWords(KindParam, uint32(p.Kind), p.Value, p.BitLen)
}

// WriteFlush emits an empty flush section.
func (w *Writer) WriteFlush() error {
	return w.Write(KindFlush, nil)
}
