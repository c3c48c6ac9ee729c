package align

// Step is one word of a scanned stream.
type Step struct {
	// Index is the word's position in its own stream.
	Index int
	// Word is the word itself.
	Word uint32
	// Fill is the number of skipped positions to show before this word.
	Fill int
	// Column holds every stream's word at the aligned position, including
	// the scanned stream's own.
	Column []uint32
}

// Scan walks the words of stream s, adjusting offsets as it goes, and
// returns one step per word. Offsets start from zero on every call.
func (e *Engine) Scan(s int) []Step {
	words := e.words[s]
	off := make(Offsets, len(e.streams))
	steps := make([]Step, 0, words.Len())

	offset := 0
	for i := 0; i < words.Len(); i++ {
		if e.Fuzzy {
			e.Adjust(i+offset, off)
		}
		fill := off[s] - offset
		offset = off[s]

		col := make([]uint32, len(e.streams))
		copy(col, e.Column(i+offset, off))
		steps = append(steps, Step{
			Index:  i,
			Word:   words[i],
			Fill:   fill,
			Column: col,
		})
	}
	return steps
}
