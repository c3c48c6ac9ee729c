// Package report turns classified rows into the comparison document.
package report

import (
	"github.com/oisee/redump/pkg/classify"
	"github.com/oisee/redump/pkg/rd"
)

// Row is one lockstep iteration: the record kind shared by all streams and
// one cell per stream.
type Row struct {
	Kind  rd.Kind
	Cells []Cell
}

// Cell is what one stream contributed to a row. Exactly one of the content
// fields is set, according to the row kind.
type Cell struct {
	// Present is false when the stream had already reached end of input.
	Present bool

	Text    string          // KindTest, KindCmd
	Address *Address        // KindGPUAddr
	Param   *rd.Param       // KindParam
	Words   []classify.Word // KindCmdStream
}

// Address is a GPU address announcement.
type Address struct {
	Addr  uint32
	Size  uint32
	Index int // position in the stream's address list
}

// Writer consumes rows as they are produced.
type Writer interface {
	Begin(streams []string) error
	WriteRow(r Row) error
	End() error
}

// Aborter is implemented by writers that hold rows back until End. Abort
// writes what was collected along with the error that stopped the run.
type Aborter interface {
	Abort(err error) error
}

// Table stores rows in memory.
type Table struct {
	streams []string
	rows    []Row
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Begin records the stream names.
func (t *Table) Begin(streams []string) error {
	t.streams = append([]string(nil), streams...)
	return nil
}

// WriteRow appends a row.
func (t *Table) WriteRow(r Row) error {
	t.rows = append(t.rows, r)
	return nil
}

// End is a no-op.
func (t *Table) End() error {
	return nil
}

// Streams returns the stream names given to Begin.
func (t *Table) Streams() []string {
	return t.streams
}

// Rows returns the rows in the order they were written.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}
