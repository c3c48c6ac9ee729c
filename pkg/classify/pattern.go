// Package classify decides how each command-stream word is annotated: as a
// known GPU address, as a bit pattern shared with the other streams
// (optionally overlaid with a recognized command signature or a tracked
// parameter), or as an unclassified raw word.
package classify

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/oisee/redump/pkg/palette"
)

// Patterns are the masks tried when looking for bits shared across streams,
// ordered by most inclusive pattern first (most 'f's).
var Patterns = [...]uint32{
	0xffffffff,
	0xffffff00,
	0xffff00ff,
	0xff00ffff,
	0x00ffffff,
	0xffff0000,
	0x0000ffff,
	0xff000000,
	0x00ff0000,
	0x0000ff00,
	0x000000ff,
}

// NumPatterns is the size of the mask table.
const NumPatterns = len(Patterns)

// KnownPattern is a recognized full or partial command signature.
type KnownPattern struct {
	Value uint32
	Mask  uint32
	Color colorful.Color
}

// Matches returns true if word carries this signature.
func (k KnownPattern) Matches(word uint32) bool {
	return word&k.Mask == k.Value
}

// KnownPatterns is checked in order; the first match wins.
var KnownPatterns = []KnownPattern{
	{Value: 0x7c000275, Mask: 0xffffffff, Color: palette.RGB(0xdd0000)},
	{Value: 0x7c000100, Mask: 0xffffff00, Color: palette.RGB(0x990099)},
}

// SharedMask returns the index into Patterns of the most specific mask under
// which word agrees with every word in others.
func SharedMask(word uint32, others []uint32) (int, bool) {
	for i, m := range Patterns {
		if agrees(word, others, m) {
			return i, true
		}
	}
	return -1, false
}

func agrees(word uint32, others []uint32, mask uint32) bool {
	for _, o := range others {
		if word&mask != o&mask {
			return false
		}
	}
	return true
}

// Known returns the first known signature carried by word.
func Known(word uint32) (KnownPattern, bool) {
	for _, k := range KnownPatterns {
		if k.Matches(word) {
			return k, true
		}
	}
	return KnownPattern{}, false
}
