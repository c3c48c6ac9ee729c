package rd

import "fmt"

// ParamKind identifies what a tracked parameter value means.
type ParamKind uint32

const (
	ParamSurfaceWidth ParamKind = iota
	ParamSurfaceHeight
	ParamColor
	ParamBlitX
	ParamBlitY
	ParamBlitWidth
	ParamBlitHeight

	// NumParamKinds counts the defined kinds plus four reserved slots.
	NumParamKinds = 11
)

var paramNames = [NumParamKinds]string{
	ParamSurfaceWidth:  "surface width",
	ParamSurfaceHeight: "surface height",
	ParamColor:         "color",
	ParamBlitX:         "blit x",
	ParamBlitY:         "blit y",
	ParamBlitWidth:     "blit width",
	ParamBlitHeight:    "blit height",
}

// String returns the display name, empty for reserved slots.
func (k ParamKind) String() string {
	if k < NumParamKinds {
		return paramNames[k]
	}
	return fmt.Sprintf("param(%d)", uint32(k))
}

// Param is a value the capture tool announced so it can be spotted inside
// later command-stream words.
type Param struct {
	Kind   ParamKind
	Value  uint32
	BitLen uint32
}

// Mask returns the low BitLen bits set, as a 64-bit value so it can be
// shifted past the top of a word.
func (p Param) Mask() uint64 {
	return uint64(1)<<p.BitLen - 1
}

// ParseGPUAddr decodes a KindGPUAddr payload into address and buffer size.
func ParseGPUAddr(w Words) (addr, size uint32, err error) {
	if w.Len() < 2 {
		return 0, 0, fmt.Errorf("gpuaddr: %w: %d words, need 2", ErrShortPayload, w.Len())
	}
	return w[0], w[1], nil
}

// ParseParam decodes and validates a KindParam payload.
func ParseParam(w Words) (Param, error) {
	if w.Len() < 3 {
		return Param{}, fmt.Errorf("param: %w: %d words, need 3", ErrShortPayload, w.Len())
	}
	p := Param{Kind: ParamKind(w[0]), Value: w[1], BitLen: w[2]}
	if p.Kind >= NumParamKinds {
		return Param{}, fmt.Errorf("param: %w: kind %d", ErrInvalidParam, w[0])
	}
	if p.BitLen > 32 {
		return Param{}, fmt.Errorf("param %s: %w: bitlen %d", p.Kind, ErrInvalidParam, p.BitLen)
	}
	return p, nil
}
