// Package align lines up the words of several command streams that carry
// the same record, tolerating the odd optional word present in only some
// of them.
//
// Each stream gets an offset: how many extra words it is behind a common
// global index. Stream k's word for global index i is at i - offsets[k].
// Offsets start at zero for every record and only grow, one word at a time,
// when skipping a word in a stream improves agreement over the words ahead.
package align

import (
	"github.com/oisee/redump/pkg/classify"
	"github.com/oisee/redump/pkg/rd"
)

// Stream is the view of one input the engine needs.
type Stream interface {
	Words() rd.Words
	FindAddress(word uint32) (int, bool)
}

// Offsets holds one word offset per stream.
type Offsets []int

// AddressRank is the rank of a position where every stream holds the same
// previously announced GPU address. It beats any shared mask.
const AddressRank = classify.NumPatterns + 1

// ScoreWindow is the number of positions Score looks ahead. A rank that far
// away has been halved to nothing, so the sum stops there.
const ScoreWindow = 64

// Engine scores and adjusts alignments for a group of streams that are
// processing the same command-stream record.
type Engine struct {
	// Fuzzy enables offset adjustment. With it off every stream is compared
	// word for word.
	Fuzzy bool

	streams []Stream
	words   []rd.Words
	maxLen  int
	column  []uint32
}

// New creates an engine over streams. Stream order matters: stream 0
// provides the reference word when ranking, and Adjust tries streams in
// order.
func New(streams []Stream) *Engine {
	e := &Engine{
		Fuzzy:   true,
		streams: streams,
		words:   make([]rd.Words, len(streams)),
		column:  make([]uint32, len(streams)),
	}
	for k, s := range streams {
		e.words[k] = s.Words()
		if n := e.words[k].Len(); n > e.maxLen {
			e.maxLen = n
		}
	}
	return e
}

// horizon returns the first global index at which some stream has run out
// of words under off.
func (e *Engine) horizon(off Offsets) int {
	end := -1
	for k, w := range e.words {
		if n := w.Len() + off[k]; end < 0 || n < end {
			end = n
		}
	}
	return end
}

// Column returns every stream's word at global index i under off. Positions
// before the start or past the end of a stream read as zero. The returned
// slice is reused by the next call.
func (e *Engine) Column(i int, off Offsets) []uint32 {
	for k, w := range e.words {
		e.column[k] = w.At(i - off[k])
	}
	return e.column
}

// Rank scores the agreement of all streams at global index i alone.
func (e *Engine) Rank(i int, off Offsets) int {
	if len(e.streams) == 0 || i >= e.horizon(off) {
		return 0
	}
	col := e.Column(i, off)
	ref := col[0]

	if idx, ok := e.streams[0].FindAddress(ref); ok && e.sameAddress(idx, col) {
		return AddressRank
	}
	if p, ok := classify.SharedMask(ref, col[1:]); ok {
		return classify.NumPatterns - 1 - p
	}
	return 0
}

func (e *Engine) sameAddress(idx int, col []uint32) bool {
	for k := 1; k < len(e.streams); k++ {
		j, ok := e.streams[k].FindAddress(col[k])
		if !ok || j != idx {
			return false
		}
	}
	return true
}

// Score is the rank at i plus half the score at i+1, so near agreement
// outweighs distant agreement. It is computed backwards from the horizon or
// from ScoreWindow positions past i, whichever comes first.
func (e *Engine) Score(i int, off Offsets) int {
	end := e.horizon(off)
	if i >= 0 && end > i+ScoreWindow {
		end = i + ScoreWindow
	}
	score := 0
	for j := end - 1; j >= i; j-- {
		score = e.Rank(j, off) + score/2
	}
	return score
}

// Adjust tries to skip one word in each stream that is still shorter than
// the longest one, keeping the skip only if it strictly improves the score
// at i. Streams are tried one at a time, in order. off is updated in place;
// Adjust reports whether it changed.
func (e *Engine) Adjust(i int, off Offsets) bool {
	score := e.Score(i, off)
	changed := false
	for k := range off {
		if e.words[k].Len()+off[k] >= e.maxLen {
			continue
		}
		off[k]++
		if s := e.Score(i, off); s > score {
			score = s
			changed = true
		} else {
			off[k]--
		}
	}
	return changed
}
