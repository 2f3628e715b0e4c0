package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCodecId(t *testing.T) {
	cases := map[string]CodecId{
		"h264": CodecH264,
		"H264": CodecH264,
		"vp8":  CodecVP8,
		"VP9":  CodecVP9,
		"aac":  CodecAAC,
		"MP3":  CodecMP3,
		"opus": CodecOpus,
		"flv":  CodecFLV,
		"hevc": CodecNone,
		"":     CodecNone,
	}

	for name, want := range cases {
		require.Equal(t, want, ParseCodecId(name), "name=%q", name)
	}
}

func TestCodecIdKindClassification(t *testing.T) {
	require.True(t, CodecH264.IsVideo())
	require.False(t, CodecH264.IsAudio())
	require.True(t, CodecAAC.IsAudio())
	require.False(t, CodecAAC.IsVideo())
	require.False(t, CodecNone.IsVideo())
	require.False(t, CodecNone.IsAudio())
}
