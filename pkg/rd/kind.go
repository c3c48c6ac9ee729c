package rd

// Kind identifies the type of a record section in a dump file.
// The numeric values are the on-disk tag.
type Kind uint32

const (
	KindNone      Kind = iota // never valid on the wire
	KindTest                  // ascii text
	KindCmd                   // ascii text
	KindGPUAddr               // u32 gpuaddr, u32 size
	KindContext               // raw dump
	KindCmdStream             // raw dump
	KindParam                 // u32 param kind, u32 value, u32 bitlen
	KindFlush                 // empty, clears previous params

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:      "none",
	KindTest:      "test",
	KindCmd:       "cmd",
	KindGPUAddr:   "gpuaddr",
	KindContext:   "context",
	KindCmdStream: "cmdstream",
	KindParam:     "param",
	KindFlush:     "flush",
}

// Valid returns true if k is a record kind that may appear in a dump.
func (k Kind) Valid() bool {
	return k > KindNone && k < kindCount
}

// String returns the section name used as a row label.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}
