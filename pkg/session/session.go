// Package session walks several dumps in lockstep, one record from each per
// row, and hands every record to the handler for its kind.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/oisee/redump/pkg/rd"
	"github.com/oisee/redump/pkg/report"
	"github.com/oisee/redump/pkg/stream"
)

// MaxStreams is the number of dumps that can be compared at once.
const MaxStreams = 32

var (
	// ErrNoInputs indicates a session was created without any stream.
	ErrNoInputs = errors.New("no input streams")

	// ErrTooManyStreams indicates more than MaxStreams inputs.
	ErrTooManyStreams = errors.New("too many input streams")

	// ErrKindMismatch indicates streams disagree on the kind of the current
	// record, i.e. the captures are not of the same sequence of operations.
	ErrKindMismatch = errors.New("record kind mismatch")
)

// Config holds session configuration.
type Config struct {
	Logger  *slog.Logger // defaults to slog.Default()
	NoAlign bool         // compare command streams word for word
}

// Session owns the streams being compared.
type Session struct {
	cfg     Config
	log     *slog.Logger
	streams []*stream.Context
	ended   []bool
	rows    int
}

// New creates a session over already opened streams.
func New(streams []*stream.Context, cfg Config) (*Session, error) {
	if len(streams) == 0 {
		return nil, ErrNoInputs
	}
	if len(streams) > MaxStreams {
		return nil, fmt.Errorf("%w: %d, max %d", ErrTooManyStreams, len(streams), MaxStreams)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Session{
		cfg:     cfg,
		log:     cfg.Logger,
		streams: streams,
		ended:   make([]bool, len(streams)),
	}, nil
}

// Open opens every path on fs as one stream. If any path fails to open, the
// files opened so far are closed and the error names the offending path.
func Open(fs afero.Fs, paths []string, cfg Config) (*Session, error) {
	if len(paths) > MaxStreams {
		return nil, fmt.Errorf("%w: %d, max %d", ErrTooManyStreams, len(paths), MaxStreams)
	}

	streams := make([]*stream.Context, 0, len(paths))
	for _, p := range paths {
		f, err := fs.Open(p)
		if err != nil {
			for _, c := range streams {
				c.Close()
			}
			return nil, fmt.Errorf("could not open: %w", err)
		}
		streams = append(streams, stream.New(p, f))
	}
	return New(streams, cfg)
}

// Names returns the stream names in column order.
func (s *Session) Names() []string {
	names := make([]string, len(s.streams))
	for i, c := range s.streams {
		names[i] = c.Name
	}
	return names
}

// Streams returns the stream contexts in column order.
func (s *Session) Streams() []*stream.Context {
	return s.streams
}

// Next reads one record from every stream and builds the row for it.
// It returns io.EOF once every stream is exhausted.
func (s *Session) Next() (report.Row, error) {
	kind := rd.KindNone
	present := make([]bool, len(s.streams))
	var first *stream.Context

	for i, c := range s.streams {
		ok, err := c.Advance()
		if err != nil {
			return report.Row{}, err
		}
		if !ok {
			continue
		}
		rec, _ := c.Record()
		if kind == rd.KindNone {
			kind, first = rec.Kind, c
		} else if rec.Kind != kind {
			return report.Row{}, fmt.Errorf("row %d: %w: unexpected type '%d' (%s) in %s, expected '%d' (%s) from %s",
				s.rows, ErrKindMismatch, uint32(rec.Kind), rec.Kind, c.Name, uint32(kind), kind, first.Name)
		}
		present[i] = true
	}

	if kind == rd.KindNone {
		return report.Row{}, io.EOF
	}

	for i, c := range s.streams {
		if !present[i] && !s.ended[i] {
			s.ended[i] = true
			s.log.Warn("stream ended before the others", "stream", c.Name, "row", s.rows, "records", c.Records())
		}
	}

	row, err := s.dispatch(kind, present)
	if err != nil {
		return report.Row{}, fmt.Errorf("row %d (%s): %w", s.rows, kind, err)
	}
	s.log.Debug("row", "index", s.rows, "kind", kind.String(), "streams", count(present))
	s.rows++
	return row, nil
}

// Run writes every row to w until all streams are exhausted. On error the
// rows already written are left in place and End is not called; a writer
// that holds rows back is given them through Abort instead.
func (s *Session) Run(w report.Writer) error {
	if err := w.Begin(s.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for {
		row, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.abort(w, err)
			return err
		}
		if err := w.WriteRow(row); err != nil {
			return fmt.Errorf("write row %d: %w", s.rows-1, err)
		}
	}
	s.log.Info("comparison complete", "streams", len(s.streams), "rows", s.rows)
	return w.End()
}

func (s *Session) abort(w report.Writer, err error) {
	a, ok := w.(report.Aborter)
	if !ok {
		return
	}
	if aerr := a.Abort(err); aerr != nil {
		s.log.Error("could not write partial report", "error", aerr)
	}
}

// Close closes every stream, returning the first error.
func (s *Session) Close() error {
	var first error
	for _, c := range s.streams {
		if err := c.Close(); err != nil && first == nil {
			first = fmt.Errorf("%s: %w", c.Name, err)
		}
	}
	return first
}

func count(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}
