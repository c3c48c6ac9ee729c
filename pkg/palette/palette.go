// Package palette holds the fixed colors used to annotate the report.
package palette

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/oisee/redump/pkg/rd"
)

// RGB builds a color from a 0xRRGGBB value.
func RGB(v uint32) colorful.Color {
	return colorful.Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

var (
	Black = RGB(0x000000)
	Blue  = RGB(0x0000ff)
)

var gpuAddrColors = []colorful.Color{
	RGB(0xff0000),
	RGB(0x00ff00),
	RGB(0x0000ff),
	RGB(0xcc0000),
	RGB(0x00cc00),
	RGB(0x0000cc),
}

// GPUAddr returns the color for the i-th announced GPU address of a stream.
// Indices past the fixed table get hues spread by the golden angle.
func GPUAddr(i int) colorful.Color {
	if i < len(gpuAddrColors) {
		return gpuAddrColors[i]
	}
	h := math.Mod(float64(i-len(gpuAddrColors))*137.508, 360)
	return colorful.Hsv(h, 0.9, 0.8)
}

var paramColors = [rd.NumParamKinds]colorful.Color{
	RGB(0xff1111),
	RGB(0x11ff11),
	RGB(0x1111ff),
	RGB(0xaa11aa),
	RGB(0xaaaa11),
	RGB(0x11aaaa),
	RGB(0x111111),
	RGB(0xffffff),
	RGB(0xffffff),
	RGB(0xffffff),
	RGB(0xffffff),
}

// Param returns the color for a parameter kind.
func Param(k rd.ParamKind) colorful.Color {
	if k < rd.NumParamKinds {
		return paramColors[k]
	}
	return Black
}
