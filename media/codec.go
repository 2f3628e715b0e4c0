package media

import "strings"

// CodecId is the closed set of codecs this engine knows how to name in
// configuration. The zero value, CodecNone, is returned by ParseCodecId for
// any name it doesn't recognize. Callers in this module do not treat it
// specially: a sub-profile or input track with an unrecognized codec name
// is still built, with CodecNone as its codec.
type CodecId int

const (
	CodecNone CodecId = iota

	// video
	CodecH264
	CodecVP8
	CodecVP9

	// audio
	CodecAAC
	CodecMP3
	CodecOpus
	CodecFLV
)

func (c CodecId) String() string {
	switch c {
	case CodecH264:
		return "H264"
	case CodecVP8:
		return "VP8"
	case CodecVP9:
		return "VP9"
	case CodecAAC:
		return "AAC"
	case CodecMP3:
		return "MP3"
	case CodecOpus:
		return "OPUS"
	case CodecFLV:
		return "FLV"
	default:
		return "NONE"
	}
}

// ParseCodecId is the Go equivalent of the original GetCodecId(ov::String):
// a case-insensitive lookup over the closed codec set, defaulting to
// CodecNone for anything unrecognized.
func ParseCodecId(name string) CodecId {
	switch strings.ToUpper(name) {
	case "H264":
		return CodecH264
	case "VP8":
		return CodecVP8
	case "VP9":
		return CodecVP9
	case "AAC":
		return CodecAAC
	case "MP3":
		return CodecMP3
	case "OPUS":
		return CodecOpus
	case "FLV":
		return CodecFLV
	default:
		return CodecNone
	}
}

// IsVideo reports whether the codec belongs to the video family.
func (c CodecId) IsVideo() bool {
	switch c {
	case CodecH264, CodecVP8, CodecVP9:
		return true
	default:
		return false
	}
}

func (c CodecId) IsAudio() bool {
	switch c {
	case CodecAAC, CodecMP3, CodecOpus, CodecFLV:
		return true
	default:
		return false
	}
}
