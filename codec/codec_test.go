package codec

import (
	"testing"

	"github.com/lkmio/transcoder/media"
	"github.com/stretchr/testify/require"
)

func TestPassthroughDecoderFormatChangedFallsThroughToDataReady(t *testing.T) {
	ctx := media.NewVideoContext(false, media.CodecH264, 0, 640, 360, 30)
	dec, err := NewPassthroughDecoder(media.CodecH264, ctx)
	require.NoError(t, err)

	pd := dec.(*PassthroughDecoder)

	// The very first frame establishes the decoder's output format, so it
	// is reported as FormatChanged even though nothing has actually
	// changed yet — this is what seeds the first Filter downstream.
	require.NoError(t, dec.SendBuffer(&media.MediaPacket{TrackId: 1, Pts: 0, Payload: []byte{0}}))
	result, frame := dec.RecvBuffer()
	require.Equal(t, FormatChanged, result)
	require.NotNil(t, frame)

	// Ordinary frame: DataReady.
	require.NoError(t, dec.SendBuffer(&media.MediaPacket{TrackId: 1, Pts: 1, Payload: []byte{1, 2, 3}}))
	result, frame = dec.RecvBuffer()
	require.Equal(t, DataReady, result)
	require.NotNil(t, frame)

	result, frame = dec.RecvBuffer()
	require.Equal(t, NoData, result)
	require.Nil(t, frame)

	// Arm a format change: the next SendBuffer's frame must still be
	// delivered (not dropped) — this is the load-bearing fall-through
	// spec.md §9 calls out.
	pd.SimulateFormatChange(media.FormatDescriptor{Kind: media.KindVideo, Width: 1280, Height: 720})
	require.NoError(t, dec.SendBuffer(&media.MediaPacket{TrackId: 1, Pts: 2, Payload: []byte{4, 5}}))

	result, frame = dec.RecvBuffer()
	require.Equal(t, FormatChanged, result)
	require.NotNil(t, frame)
	require.Equal(t, 1280, frame.Format.Width)
	require.Equal(t, int64(2), frame.Pts)
}

func TestPassthroughEncoderOneInOneOut(t *testing.T) {
	enc, err := NewPassthroughEncoder(media.CodecH264, media.NewVideoContext(true, media.CodecH264, 1000, 1280, 720, 30))
	require.NoError(t, err)

	require.NoError(t, enc.SendBuffer(&media.MediaFrame{TrackId: 5, Pts: 9, Data: []byte{9, 9}}))
	result, pkt := enc.RecvBuffer()
	require.Equal(t, DataReady, result)
	require.Equal(t, media.TrackId(5), pkt.TrackId)
	require.Equal(t, []byte{9, 9}, pkt.Payload)

	result, pkt = enc.RecvBuffer()
	require.Equal(t, NoData, result)
	require.Nil(t, pkt)
}

func TestPassthroughFilterClonesAndStampsOutputFormat(t *testing.T) {
	outCtx := media.NewAudioContext(true, media.CodecAAC, 128000, 48000)
	filter, err := NewPassthroughFilter(0x70, media.NewAudioContext(false, media.CodecAAC, 0, 44100), outCtx)
	require.NoError(t, err)

	in := &media.MediaFrame{TrackId: 0x70, Pts: 3, Data: []byte{1, 2, 3}}
	require.NoError(t, filter.SendBuffer(in))

	result, out := filter.RecvBuffer()
	require.Equal(t, DataReady, result)
	require.Equal(t, 48000, out.Format.SampleRate)

	// Mutating the filtered output must never affect the input frame
	// (clone, not alias).
	out.Data[0] = 0xFF
	require.Equal(t, byte(1), in.Data[0])
}
