package rd

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteText(KindTest, "fill-rect"); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteGPUAddr(0x7c000275, 0x1000); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteWords(KindCmdStream, 0x11111111, 0x22222222); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFlush(); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&buf)

	rec, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Kind != KindTest || rec.Text() != "fill-rect" {
		t.Errorf("text record: got %s %q", rec.Kind, rec.Text())
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatal(err)
	}
	addr, size, err := ParseGPUAddr(rec.Words())
	if err != nil {
		t.Fatal(err)
	}
	if addr != 0x7c000275 || size != 0x1000 {
		t.Errorf("gpuaddr: got %08x len %x", addr, size)
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatal(err)
	}
	words := rec.Words()
	if words.Len() != 2 || words.At(0) != 0x11111111 || words.At(1) != 0x22222222 {
		t.Errorf("cmdstream words: got %08x", []uint32(words))
	}

	rec, err = r.Next()
	if err != nil {
		t.Fatal(err)
	}
	if rec.Kind != KindFlush || len(rec.Payload) != 0 {
		t.Errorf("flush: got %s len %d", rec.Kind, len(rec.Payload))
	}

	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if r.Count() != 4 {
		t.Errorf("count: got %d want 4", r.Count())
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"partial header", []byte{5, 0, 0}, io.ErrUnexpectedEOF},
		{"short payload", []byte{5, 0, 0, 0, 8, 0, 0, 0, 1, 2, 3}, io.ErrUnexpectedEOF},
		{"unknown kind", []byte{42, 0, 0, 0, 0, 0, 0, 0}, ErrUnknownKind},
		{"kind none", []byte{0, 0, 0, 0, 0, 0, 0, 0}, ErrUnknownKind},
		{"too large", []byte{5, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}, ErrRecordTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(tc.data)).Next()
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestWordsAtOutOfRange(t *testing.T) {
	w := Words{1, 2, 3}
	for _, i := range []int{-1, 3, 100} {
		if got := w.At(i); got != 0 {
			t.Errorf("At(%d) = %d, want 0", i, got)
		}
	}
	if w.At(2) != 3 {
		t.Errorf("At(2) = %d, want 3", w.At(2))
	}
}

func TestWordsIgnoresTrailingBytes(t *testing.T) {
	rec := Record{Kind: KindCmdStream, Payload: []byte{1, 0, 0, 0, 0xff, 0xff}}
	w := rec.Words()
	if w.Len() != 1 || w.At(0) != 1 {
		t.Fatalf("got %v", w)
	}
}

func TestTextStopsAtNUL(t *testing.T) {
	rec := Record{Kind: KindCmd, Payload: []byte("draw\x00garbage")}
	if rec.Text() != "draw" {
		t.Fatalf("got %q", rec.Text())
	}
	rec = Record{Kind: KindCmd, Payload: []byte("no terminator")}
	if rec.Text() != "no terminator" {
		t.Fatalf("got %q", rec.Text())
	}
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		name  string
		words Words
		want  Param
		err   error
	}{
		{"surface width", Words{0, 1920, 16}, Param{ParamSurfaceWidth, 1920, 16}, nil},
		{"full word", Words{uint32(ParamColor), 0xff00ff00, 32}, Param{ParamColor, 0xff00ff00, 32}, nil},
		{"short", Words{0, 1}, Param{}, ErrShortPayload},
		{"bad kind", Words{NumParamKinds, 1, 8}, Param{}, ErrInvalidParam},
		{"bad bitlen", Words{0, 1, 33}, Param{}, ErrInvalidParam},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseParam(tc.words)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err: got %v want %v", err, tc.err)
			}
			if got != tc.want {
				t.Errorf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestParamMask(t *testing.T) {
	tests := []struct {
		bitlen uint32
		want   uint64
	}{
		{0, 0},
		{8, 0xff},
		{16, 0xffff},
		{32, 0xffffffff},
	}
	for _, tc := range tests {
		if got := (Param{BitLen: tc.bitlen}).Mask(); got != tc.want {
			t.Errorf("bitlen %d: got %x want %x", tc.bitlen, got, tc.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	if KindCmdStream.String() != "cmdstream" {
		t.Errorf("got %q", KindCmdStream.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("got %q", Kind(99).String())
	}
	if ParamSurfaceWidth.String() != "surface width" {
		t.Errorf("got %q", ParamSurfaceWidth.String())
	}
	if ParamKind(8).String() != "" {
		t.Errorf("reserved slot should be unnamed, got %q", ParamKind(8).String())
	}
}
