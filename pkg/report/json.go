package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/oisee/redump/pkg/classify"
	"github.com/oisee/redump/pkg/palette"
)

// JSON document layout. Words and colors are hex strings so the output can be
// diffed and grepped the same way the HTML is read.
type jsonDoc struct {
	Streams []string  `json:"streams"`
	Rows    []jsonRow `json:"rows"`
	Error   string    `json:"error,omitempty"`
}

type jsonRow struct {
	Kind  string     `json:"kind"`
	Cells []jsonCell `json:"cells"`
}

type jsonCell struct {
	Present bool       `json:"present"`
	Text    string     `json:"text,omitempty"`
	Address *jsonAddr  `json:"gpuaddr,omitempty"`
	Param   *jsonParam `json:"param,omitempty"`
	Words   []jsonWord `json:"words,omitempty"`
}

type jsonAddr struct {
	Addr  string `json:"addr"`
	Size  uint32 `json:"len"`
	Index int    `json:"index"`
	Color string `json:"color"`
}

type jsonParam struct {
	Name   string `json:"name"`
	Kind   uint32 `json:"kind"`
	Value  string `json:"value"`
	BitLen uint32 `json:"bitlen"`
	Color  string `json:"color"`
}

type jsonWord struct {
	Class        string     `json:"class"`
	Value        string     `json:"value,omitempty"`
	AddressIndex *int       `json:"gpuaddr_index,omitempty"`
	Pattern      string     `json:"pattern,omitempty"`
	Color        string     `json:"color,omitempty"`
	Bytes        []jsonByte `json:"bytes,omitempty"`
	Labels       []string   `json:"labels,omitempty"`
}

type jsonByte struct {
	Value string `json:"value"`
	Color string `json:"color"`
	Bold  bool   `json:"bold,omitempty"`
}

// WriteJSON writes the table as an indented JSON document.
func WriteJSON(w io.Writer, t *Table) error {
	return writeDoc(w, toJSONDoc(t))
}

func toJSONDoc(t *Table) jsonDoc {
	doc := jsonDoc{Streams: t.Streams(), Rows: make([]jsonRow, 0, t.Len())}
	for _, r := range t.Rows() {
		doc.Rows = append(doc.Rows, toJSONRow(r))
	}
	return doc
}

func writeDoc(w io.Writer, doc jsonDoc) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func toJSONRow(r Row) jsonRow {
	jr := jsonRow{Kind: r.Kind.String(), Cells: make([]jsonCell, len(r.Cells))}
	for i, c := range r.Cells {
		jc := jsonCell{Present: c.Present, Text: c.Text}
		if a := c.Address; a != nil {
			jc.Address = &jsonAddr{
				Addr:  fmt.Sprintf("%08x", a.Addr),
				Size:  a.Size,
				Index: a.Index,
				Color: palette.GPUAddr(a.Index).Hex(),
			}
		}
		if p := c.Param; p != nil {
			jc.Param = &jsonParam{
				Name:   p.Kind.String(),
				Kind:   uint32(p.Kind),
				Value:  fmt.Sprintf("%08x", p.Value),
				BitLen: p.BitLen,
				Color:  palette.Param(p.Kind).Hex(),
			}
		}
		for _, w := range c.Words {
			jc.Words = append(jc.Words, toJSONWord(w))
		}
		jr.Cells[i] = jc
	}
	return jr
}

func toJSONWord(w classify.Word) jsonWord {
	jw := jsonWord{Class: w.Class.String()}
	switch w.Class {
	case classify.Filler:
	case classify.Address:
		idx := w.AddressIndex
		jw.Value = fmt.Sprintf("%08x", w.Value)
		jw.AddressIndex = &idx
		jw.Color = w.Color.Hex()
	case classify.Shared:
		jw.Value = fmt.Sprintf("%08x", w.Value)
		jw.Pattern = fmt.Sprintf("%08x", classify.Patterns[w.Pattern])
		jw.Labels = w.Labels
		jw.Bytes = make([]jsonByte, len(w.Bytes))
		for i, b := range w.Bytes {
			jw.Bytes[i] = jsonByte{Value: fmt.Sprintf("%02x", b.Value), Color: b.Color.Hex(), Bold: b.Bold}
		}
	default:
		jw.Value = fmt.Sprintf("%08x", w.Value)
		jw.Color = w.Color.Hex()
	}
	return jw
}

// JSONWriter collects rows and writes them as one JSON document on End.
type JSONWriter struct {
	*Table
	w io.Writer
}

// NewJSONWriter returns a writer emitting JSON to w.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{Table: NewTable(), w: w}
}

// End writes the collected document.
func (j *JSONWriter) End() error {
	return WriteJSON(j.w, j.Table)
}

// Abort writes the rows collected so far with err recorded in the document.
func (j *JSONWriter) Abort(err error) error {
	doc := toJSONDoc(j.Table)
	doc.Error = err.Error()
	return writeDoc(j.w, doc)
}
