package media

// TranscodeContext is an immutable descriptor handed to a codec worker at
// creation time — either a decode context (mirrors what was actually
// decoded) or an encode context (what a profile asked to be produced).
type TranscodeContext struct {
	IsEncodingContext bool
	Kind              Kind
	CodecId           CodecId
	Bitrate           int
	TimeBase          TimeBase

	// video
	Width     int
	Height    int
	FrameRate float64

	// audio
	SampleRate    int
	SampleFormat  SampleFormat
	ChannelLayout ChannelLayout
}

// NewVideoContext builds a video TranscodeContext, encoding or decoding
// depending on isEncoding.
func NewVideoContext(isEncoding bool, codecId CodecId, bitrate, width, height int, frameRate float64) *TranscodeContext {
	return &TranscodeContext{
		IsEncodingContext: isEncoding,
		Kind:              KindVideo,
		CodecId:           codecId,
		Bitrate:           bitrate,
		Width:             width,
		Height:            height,
		FrameRate:         frameRate,
	}
}

// NewAudioContext builds an audio TranscodeContext, encoding or decoding
// depending on isEncoding.
func NewAudioContext(isEncoding bool, codecId CodecId, bitrate, sampleRate int) *TranscodeContext {
	return &TranscodeContext{
		IsEncodingContext: isEncoding,
		Kind:              KindAudio,
		CodecId:           codecId,
		Bitrate:           bitrate,
		SampleRate:        sampleRate,
	}
}
