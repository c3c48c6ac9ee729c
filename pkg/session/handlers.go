package session

import (
	"fmt"

	"github.com/oisee/redump/pkg/align"
	"github.com/oisee/redump/pkg/classify"
	"github.com/oisee/redump/pkg/rd"
	"github.com/oisee/redump/pkg/report"
	"github.com/oisee/redump/pkg/stream"
)

// dispatch builds the row for kind from every stream that has a record.
func (s *Session) dispatch(kind rd.Kind, present []bool) (report.Row, error) {
	row := report.Row{Kind: kind, Cells: make([]report.Cell, len(s.streams))}
	for i := range row.Cells {
		row.Cells[i].Present = present[i]
	}

	var err error
	switch kind {
	case rd.KindTest, rd.KindCmd:
		err = s.each(row.Cells, func(c *stream.Context, cell *report.Cell) error {
			rec, _ := c.Record()
			cell.Text = rec.Text()
			return nil
		})
	case rd.KindGPUAddr:
		err = s.each(row.Cells, func(c *stream.Context, cell *report.Cell) (err error) {
			cell.Address, err = handleGPUAddr(c)
			return err
		})
	case rd.KindContext:
		// ignored for now
	case rd.KindCmdStream:
		s.handleCmdStream(row.Cells)
	case rd.KindParam:
		err = s.each(row.Cells, func(c *stream.Context, cell *report.Cell) (err error) {
			cell.Param, err = handleParam(c)
			return err
		})
	case rd.KindFlush:
		err = s.each(row.Cells, func(c *stream.Context, _ *report.Cell) error {
			c.Flush()
			return nil
		})
	default:
		err = fmt.Errorf("%w: %d", rd.ErrUnknownKind, uint32(kind))
	}
	if err != nil {
		return report.Row{}, err
	}
	return row, nil
}

// each calls fn for every stream that contributed a record to the row.
func (s *Session) each(cells []report.Cell, fn func(c *stream.Context, cell *report.Cell) error) error {
	for i, c := range s.streams {
		if !cells[i].Present {
			continue
		}
		if err := fn(c, &cells[i]); err != nil {
			return err
		}
	}
	return nil
}

func handleGPUAddr(c *stream.Context) (*report.Address, error) {
	addr, size, err := rd.ParseGPUAddr(c.Words())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	idx, err := c.AddAddress(addr)
	if err != nil {
		return nil, err
	}
	return &report.Address{Addr: addr, Size: size, Index: idx}, nil
}

func handleParam(c *stream.Context) (*rd.Param, error) {
	p, err := rd.ParseParam(c.Words())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name, err)
	}
	if err := c.AddParam(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// handleCmdStream aligns the command streams of every present stream
// against each other and classifies each stream's words.
func (s *Session) handleCmdStream(cells []report.Cell) {
	var group []align.Stream
	var columns []int
	for i, c := range s.streams {
		if cells[i].Present {
			group = append(group, c)
			columns = append(columns, i)
		}
	}

	e := align.New(group)
	e.Fuzzy = !s.cfg.NoAlign

	for g, i := range columns {
		c := s.streams[i]
		steps := e.Scan(g)
		words := make([]classify.Word, 0, len(steps))
		for _, st := range steps {
			for n := 0; n < st.Fill; n++ {
				words = append(words, classify.FillerWord())
			}
			words = append(words, classifyStep(c, st))
		}
		cells[i].Words = words
	}
}

// classifyStep picks the annotation for one scanned word: an address the
// stream announced, else bits it shares with the aligned words of the other
// streams, else nothing.
func classifyStep(c *stream.Context, st align.Step) classify.Word {
	if idx, ok := c.FindAddress(st.Word); ok {
		return classify.AddressWord(st.Word, idx)
	}
	if p, ok := classify.SharedMask(st.Word, st.Column); ok {
		return classify.SharedWord(st.Word, p, c.Params())
	}
	return classify.RawWord(st.Word)
}
