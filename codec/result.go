package codec

// Result is the uniform outcome of a RecvBuffer call across decoders,
// filters and encoders (spec.md §4.2).
type Result int

const (
	// DataReady means the output value is valid; the caller should
	// process it and call RecvBuffer again.
	DataReady Result = iota

	// NoData means the codec needs more input; return to the outer loop.
	NoData

	// FormatChanged means a decoder discovered a new output format. The
	// returned frame IS valid and must be treated as DataReady too —
	// callers must fall through, never discard it (spec.md §4.2, §4.6,
	// §9 "FormatChanged fall-through").
	FormatChanged

	// Error is a terminal, non-fatal-to-the-worker failure for this
	// unit.
	Error

	// EndOfStream is a terminal result meaning the codec will not
	// produce anything further for the current input.
	EndOfStream
)

func (r Result) String() string {
	switch r {
	case DataReady:
		return "DataReady"
	case NoData:
		return "NoData"
	case FormatChanged:
		return "FormatChanged"
	case Error:
		return "Error"
	case EndOfStream:
		return "EndOfStream"
	default:
		return "Unknown"
	}
}

// Terminal reports whether this result ends a RecvBuffer drain loop
// without being DataReady/FormatChanged (both of which keep draining).
func (r Result) Terminal() bool {
	return r == NoData || r == Error || r == EndOfStream
}
