package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/oisee/redump/pkg/classify"
	"github.com/oisee/redump/pkg/palette"
	"github.com/oisee/redump/pkg/rd"
)

// HTMLWriter streams rows as a single HTML table, one column per stream.
type HTMLWriter struct {
	w   io.Writer
	buf strings.Builder
}

// NewHTMLWriter returns a writer emitting HTML to w.
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: w}
}

func (h *HTMLWriter) flush() error {
	_, err := io.WriteString(h.w, h.buf.String())
	h.buf.Reset()
	return err
}

// Begin writes the document head and a header row naming the streams.
func (h *HTMLWriter) Begin(streams []string) error {
	h.buf.WriteString("<html><body><table border=\"1\">\n<tr><th></th>")
	for _, s := range streams {
		fmt.Fprintf(&h.buf, "<th>%s</th>", html.EscapeString(s))
	}
	h.buf.WriteString("</tr>\n")
	return h.flush()
}

// WriteRow writes one table row labeled with the record kind.
func (h *HTMLWriter) WriteRow(r Row) error {
	fmt.Fprintf(&h.buf, "<tr><th>%s</th>", r.Kind)
	for _, c := range r.Cells {
		h.buf.WriteString("<td>")
		if c.Present {
			h.cell(r.Kind, c)
		}
		h.buf.WriteString("</td>")
	}
	h.buf.WriteString("</tr>\n")
	return h.flush()
}

// End closes the document.
func (h *HTMLWriter) End() error {
	h.buf.WriteString("</table></body></html>\n")
	return h.flush()
}

func (h *HTMLWriter) cell(kind rd.Kind, c Cell) {
	switch kind {
	case rd.KindTest, rd.KindCmd:
		h.buf.WriteString(html.EscapeString(c.Text))
	case rd.KindGPUAddr:
		if a := c.Address; a != nil {
			fmt.Fprintf(&h.buf, "<font color=\"%s\"><b>%08x</b></font><br>(len: %x)",
				palette.GPUAddr(a.Index).Hex(), a.Addr, a.Size)
		}
	case rd.KindParam:
		if p := c.Param; p != nil {
			fmt.Fprintf(&h.buf, "%s<br><font color=\"%s\"><b>%08x</b></font><br>(bitlen: %d)",
				html.EscapeString(p.Kind.String()), palette.Param(p.Kind).Hex(), p.Value, p.BitLen)
		}
	case rd.KindCmdStream:
		for _, w := range c.Words {
			h.word(w)
		}
	case rd.KindContext, rd.KindFlush:
	}
}

func (h *HTMLWriter) word(w classify.Word) {
	switch w.Class {
	case classify.Filler:
		fmt.Fprintf(&h.buf, "<font face=\"monospace\" color=\"%s\">........</font><br>", w.Color.Hex())
	case classify.Address:
		fmt.Fprintf(&h.buf, "<font face=\"monospace\"><font color=\"%s\"><b>%08x</b></font> (gpuaddr)</font><br>",
			w.Color.Hex(), w.Value)
	case classify.Shared:
		h.buf.WriteString("<font face=\"monospace\">")
		for _, b := range w.Bytes {
			if b.Bold {
				h.buf.WriteString("<b>")
			}
			fmt.Fprintf(&h.buf, "<font color=\"%s\">%02x</font>", b.Color.Hex(), b.Value)
			if b.Bold {
				h.buf.WriteString("</b>")
			}
		}
		if len(w.Labels) > 0 {
			fmt.Fprintf(&h.buf, " (%s?)", html.EscapeString(strings.Join(w.Labels, ", ")))
		}
		h.buf.WriteString("</font><br>")
	default:
		fmt.Fprintf(&h.buf, "<font face=\"monospace\" color=\"%s\">%08x</font><br>", w.Color.Hex(), w.Value)
	}
}
