package codec

import "github.com/lkmio/transcoder/media"

// Decoder turns coded packets of one input track back into raw frames.
// SendBuffer never blocks indefinitely; it may buffer internally. Callers
// drain RecvBuffer in a loop until it returns a Terminal Result.
type Decoder interface {
	SendBuffer(packet *media.MediaPacket) error
	RecvBuffer() (Result, *media.MediaFrame)
	Close() error
}

// Encoder turns raw frames into coded packets for one output track.
type Encoder interface {
	SendBuffer(frame *media.MediaFrame) error
	RecvBuffer() (Result, *media.MediaPacket)
	Close() error
}

// Filter adapts a decoded frame's actual format (pixel format/scale, or
// sample format/rate/channel-mix) to what an encoder expects as input. One
// Filter instance exists per output track.
type Filter interface {
	SendBuffer(frame *media.MediaFrame) error
	RecvBuffer() (Result, *media.MediaFrame)
	Close() error
}

// DecoderFactory creates a Decoder for codecId using inputContext (a
// decode context — IsEncodingContext must be false).
type DecoderFactory func(codecId media.CodecId, inputContext *media.TranscodeContext) (Decoder, error)

// EncoderFactory creates an Encoder for codecId using outputContext (an
// encode context — IsEncodingContext must be true).
type EncoderFactory func(codecId media.CodecId, outputContext *media.TranscodeContext) (Encoder, error)

// FilterFactory creates a Filter converting from inputContext's actual
// decoded shape to outputContext's target shape, for the given track.
type FilterFactory func(trackId media.TrackId, inputContext, outputContext *media.TranscodeContext) (Filter, error)

// Default factories. A deployment that links a real native codec library
// overrides these (they are package vars, not constants, precisely so the
// parent application can swap in a real implementation without this
// module depending on one). Left unset, they fall back to the
// deterministic software workers in decoder.go, encoder.go and filter.go,
// which do no real compression —
// they exist so the pipeline (queues, routing, fan-out, format-change
// propagation) is fully exercisable without a linked codec.
var (
	NewDecoder DecoderFactory = NewPassthroughDecoder
	NewEncoder EncoderFactory = NewPassthroughEncoder
	NewFilter  FilterFactory  = NewPassthroughFilter
)
