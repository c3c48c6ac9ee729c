package classify

import "github.com/oisee/redump/pkg/rd"

// ParamMatch is a parameter value found inside a word.
type ParamMatch struct {
	Param rd.Param
	Shift uint   // bit offset of the match
	Mask  uint32 // bits of the word covered by the match
}

// MatchParams scans word for every active parameter value at byte-aligned
// shifts where the whole field fits inside the word. Only the lowest matching shift of each parameter is reported, but
// several parameters may match the same word; none of these matches are
// certain, they only suggest where a value might be encoded.
//
// Zero values are skipped, they match far too often to be useful.
func MatchParams(word uint32, params []rd.Param) []ParamMatch {
	var matches []ParamMatch
	w := uint64(word)
	for _, p := range params {
		if p.Value == 0 {
			continue
		}
		m := p.Mask()
		v := uint64(p.Value)
		for shift := uint(0); m<<shift <= 0xffffffff; shift += 8 {
			if w&(m<<shift) == v<<shift {
				matches = append(matches, ParamMatch{
					Param: p,
					Shift: shift,
					Mask:  uint32(m << shift),
				})
				break
			}
		}
	}
	return matches
}
