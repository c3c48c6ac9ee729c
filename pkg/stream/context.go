// Package stream tracks the per-input state accumulated while walking a dump.
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/oisee/redump/pkg/rd"
)

const (
	// MaxAddresses is the number of GPU addresses a stream may announce.
	MaxAddresses = 32

	// MaxParams is the number of parameters that may be active at once.
	MaxParams = 32
)

// ErrCapacity indicates a stream announced more addresses or parameters
// than it can track.
var ErrCapacity = errors.New("capacity exceeded")

// Context owns one input: its reader, the current record, and the
// addresses and parameters announced so far.
type Context struct {
	Name string

	r      *rd.Reader
	closer io.Closer

	rec   rd.Record
	words rd.Words
	has   bool
	done  bool

	addrs  []uint32
	params []rd.Param
}

// New creates a context reading from r. If r is an io.Closer it is closed
// by Close.
func New(name string, r io.Reader) *Context {
	c := &Context{Name: name, r: rd.NewReader(r)}
	if closer, ok := r.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// Advance drops the current record and decodes the next one.
// It returns false once the input is exhausted; later calls keep
// returning false.
func (c *Context) Advance() (bool, error) {
	c.rec, c.words, c.has = rd.Record{}, nil, false
	if c.done {
		return false, nil
	}

	rec, err := c.r.Next()
	if err == io.EOF {
		c.done = true
		return false, nil
	}
	if err != nil {
		c.done = true
		return false, fmt.Errorf("%s: %w", c.Name, err)
	}

	c.rec, c.has = rec, true
	c.words = rec.Words()
	return true, nil
}

// Record returns the current record and whether there is one.
func (c *Context) Record() (rd.Record, bool) {
	return c.rec, c.has
}

// Words returns the current record's payload as words.
func (c *Context) Words() rd.Words {
	return c.words
}

// Records returns the number of records decoded so far.
func (c *Context) Records() int {
	return c.r.Count()
}

// AddAddress records an announced GPU address and returns its index.
func (c *Context) AddAddress(addr uint32) (int, error) {
	if len(c.addrs) >= MaxAddresses {
		return -1, fmt.Errorf("%s: gpuaddr %08x: %w: %d addresses", c.Name, addr, ErrCapacity, MaxAddresses)
	}
	c.addrs = append(c.addrs, addr)
	return len(c.addrs) - 1, nil
}

// FindAddress returns the index of word in the announced address list.
func (c *Context) FindAddress(word uint32) (int, bool) {
	for i, a := range c.addrs {
		if a == word {
			return i, true
		}
	}
	return -1, false
}

// AddParam activates a parameter.
func (c *Context) AddParam(p rd.Param) error {
	if len(c.params) >= MaxParams {
		return fmt.Errorf("%s: param %s: %w: %d params", c.Name, p.Kind, ErrCapacity, MaxParams)
	}
	c.params = append(c.params, p)
	return nil
}

// Params returns the active parameters in announcement order.
func (c *Context) Params() []rd.Param {
	return c.params
}

// Flush clears the active parameters.
func (c *Context) Flush() {
	c.params = c.params[:0]
}

// Close releases the underlying input.
func (c *Context) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
