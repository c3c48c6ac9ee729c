package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/oisee/redump/pkg/rd"
)

func dump(t *testing.T, fn func(w *rd.Writer) error) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := fn(rd.NewWriter(&buf)); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestAdvanceReplacesRecord(t *testing.T) {
	buf := dump(t, func(w *rd.Writer) error {
		if err := w.WriteWords(rd.KindCmdStream, 1, 2, 3); err != nil {
			return err
		}
		return w.WriteText(rd.KindCmd, "draw")
	})
	c := New("a.rd", buf)

	ok, err := c.Advance()
	if err != nil || !ok {
		t.Fatalf("first advance: ok=%v err=%v", ok, err)
	}
	if c.Words().Len() != 3 {
		t.Errorf("words: got %d want 3", c.Words().Len())
	}

	ok, err = c.Advance()
	if err != nil || !ok {
		t.Fatalf("second advance: ok=%v err=%v", ok, err)
	}
	rec, has := c.Record()
	if !has || rec.Kind != rd.KindCmd || rec.Text() != "draw" {
		t.Errorf("record: got %v %q", rec.Kind, rec.Text())
	}

	ok, err = c.Advance()
	if err != nil || ok {
		t.Fatalf("third advance: ok=%v err=%v", ok, err)
	}
	if _, has := c.Record(); has {
		t.Error("record should be cleared at end of input")
	}
	if c.Words().Len() != 0 {
		t.Error("words should be cleared at end of input")
	}
	if c.Records() != 2 {
		t.Errorf("records: got %d want 2", c.Records())
	}

	// Stays exhausted.
	if ok, err := c.Advance(); ok || err != nil {
		t.Fatalf("advance after end: ok=%v err=%v", ok, err)
	}
}

func TestAdvanceTruncated(t *testing.T) {
	c := New("bad.rd", bytes.NewReader([]byte{5, 0, 0, 0, 16, 0, 0, 0, 1}))
	_, err := c.Advance()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v", err)
	}
}

func TestAddressTracking(t *testing.T) {
	c := New("a.rd", bytes.NewReader(nil))

	idx, err := c.AddAddress(0x7c000275)
	if err != nil || idx != 0 {
		t.Fatalf("first: idx=%d err=%v", idx, err)
	}
	idx, err = c.AddAddress(0x7c001000)
	if err != nil || idx != 1 {
		t.Fatalf("second: idx=%d err=%v", idx, err)
	}

	if i, ok := c.FindAddress(0x7c001000); !ok || i != 1 {
		t.Errorf("FindAddress: got %d %v", i, ok)
	}
	if _, ok := c.FindAddress(0xdeadbeef); ok {
		t.Error("unexpected match")
	}
}

func TestAddressCapacity(t *testing.T) {
	c := New("a.rd", bytes.NewReader(nil))
	for i := 0; i < MaxAddresses; i++ {
		if _, err := c.AddAddress(uint32(0x1000 + i)); err != nil {
			t.Fatalf("address %d: %v", i, err)
		}
	}
	if _, err := c.AddAddress(0xffff); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	if _, ok := c.FindAddress(0xffff); ok {
		t.Error("overflowing add must not append")
	}
}

func TestParamCapacityAndFlush(t *testing.T) {
	c := New("a.rd", bytes.NewReader(nil))
	for i := 0; i < MaxParams; i++ {
		if err := c.AddParam(rd.Param{Kind: rd.ParamColor, Value: uint32(i + 1), BitLen: 32}); err != nil {
			t.Fatalf("param %d: %v", i, err)
		}
	}
	if err := c.AddParam(rd.Param{Kind: rd.ParamColor, Value: 1, BitLen: 8}); !errors.Is(err, ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}

	c.Flush()
	if len(c.Params()) != 0 {
		t.Fatalf("flush left %d params", len(c.Params()))
	}
	if err := c.AddParam(rd.Param{Kind: rd.ParamBlitX, Value: 3, BitLen: 16}); err != nil {
		t.Fatalf("add after flush: %v", err)
	}
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestClose(t *testing.T) {
	r := &closeRecorder{Reader: bytes.NewReader(nil)}
	c := New("a.rd", r)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !r.closed {
		t.Error("underlying reader not closed")
	}

	if err := New("b.rd", bytes.NewReader(nil)).Close(); err != nil {
		t.Fatal(err)
	}
}
