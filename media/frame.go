package media

// PixelFormat is a closed set of raw video sample layouts. The real set
// this module would ultimately need is whatever the linked codec library
// exposes; this is intentionally small since no component decodes a real
// bitstream — it only needs to be distinguishable for format-change
// propagation.
type PixelFormat int

const (
	PixelFormatNone PixelFormat = iota
	PixelFormatYUV420P
	PixelFormatNV12
)

// SampleFormat is a closed set of raw audio sample layouts.
type SampleFormat int

const (
	SampleFormatNone SampleFormat = iota
	SampleFormatS16
	SampleFormatFLT
)

// ChannelLayout is a bitmask of present channels, FFmpeg-style (mono=1,
// stereo=3, ...). Only used as an opaque comparable value here.
type ChannelLayout uint32

const (
	ChannelLayoutMono   ChannelLayout = 1
	ChannelLayoutStereo ChannelLayout = 3
)

// FormatDescriptor is the actual shape of a decoded frame's samples —
// video geometry or audio layout, whichever the frame's Kind carries.
// A decoder stamps this on every frame it emits; when it changes between
// two frames, that's a FormatChanged event (spec.md §4.2/§4.6).
type FormatDescriptor struct {
	Kind Kind

	// video
	PixelFormat PixelFormat
	Width       int
	Height      int

	// audio
	SampleFormat  SampleFormat
	SampleRate    int
	ChannelLayout ChannelLayout
}

func (f FormatDescriptor) Equal(o FormatDescriptor) bool {
	return f == o
}

// MediaFrame is one decoded unit flowing decoder -> filter -> encoder. Like
// MediaPacket it is cloned, never aliased, whenever more than one
// downstream consumer needs it (the filter stage clones once per matching
// output context, spec.md §4.5 "Filter worker").
type MediaFrame struct {
	TrackId TrackId
	Pts     int64
	Format  FormatDescriptor
	Data    []byte
}

// Clone returns a deep copy with a fresh Data backing array.
func (f *MediaFrame) Clone() *MediaFrame {
	if f == nil {
		return nil
	}

	clone := *f
	if f.Data != nil {
		clone.Data = make([]byte, len(f.Data))
		copy(clone.Data, f.Data)
	}
	return &clone
}
