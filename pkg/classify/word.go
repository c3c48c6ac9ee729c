package classify

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/oisee/redump/pkg/palette"
	"github.com/oisee/redump/pkg/rd"
)

// Class is the kind of annotation attached to a word.
type Class int

const (
	// Raw words agree with no other stream under any mask.
	Raw Class = iota
	// Address words are a GPU address the stream announced earlier.
	Address
	// Shared words agree with every other stream under some mask.
	Shared
	// Filler marks a word skipped to keep this stream aligned with the others.
	Filler
)

func (c Class) String() string {
	switch c {
	case Raw:
		return "raw"
	case Address:
		return "gpuaddr"
	case Shared:
		return "shared"
	case Filler:
		return "filler"
	default:
		return "unknown"
	}
}

// Byte is the styling of one byte of a word.
type Byte struct {
	Value uint8
	Color colorful.Color
	Bold  bool
}

// Word is a classified command-stream word.
type Word struct {
	Class Class
	Value uint32

	// AddressIndex is the position in the stream's address list (Address only).
	AddressIndex int
	// Color is the whole-word color for Address and Raw words.
	Color colorful.Color

	// Pattern is the index into Patterns of the shared mask (Shared only).
	Pattern int
	// Bytes holds per-byte styling, most significant byte first (Shared only).
	Bytes [4]Byte
	// Labels names the parameters that might be encoded in the word.
	Labels []string
}

// FillerWord returns the marker emitted for a skipped position.
func FillerWord() Word {
	return Word{Class: Filler, Color: palette.Black}
}

// RawWord returns an unclassified word.
func RawWord(word uint32) Word {
	return Word{Class: Raw, Value: word, Color: palette.Black}
}

// AddressWord returns a word that matches the index-th announced address.
func AddressWord(word uint32, index int) Word {
	return Word{
		Class:        Address,
		Value:        word,
		AddressIndex: index,
		Color:        palette.GPUAddr(index),
	}
}

// SharedWord styles a word that agrees with the other streams under
// Patterns[pattern]. Bytes inside the shared mask are blue, the rest black.
// A known signature recolors the bytes it covers, and a parameter match
// recolors and bolds its bytes on top of that.
func SharedWord(word uint32, pattern int, params []rd.Param) Word {
	w := Word{Class: Shared, Value: word, Pattern: pattern}
	mask := Patterns[pattern]

	known, isKnown := Known(word)
	matches := MatchParams(word, params)

	for i := range w.Bytes {
		shift := uint(24 - 8*i)
		byteMask := uint32(0xff) << shift

		b := Byte{Value: uint8(word >> shift), Color: palette.Black}
		if mask&byteMask != 0 {
			b.Color = palette.Blue
		}
		if isKnown && known.Mask&byteMask != 0 {
			b.Color = known.Color
		}
		for _, m := range matches {
			if m.Mask&byteMask != 0 {
				b.Color = palette.Param(m.Param.Kind)
				b.Bold = true
				break
			}
		}
		w.Bytes[i] = b
	}

	for _, m := range matches {
		w.Labels = append(w.Labels, m.Param.Kind.String())
	}
	return w
}
