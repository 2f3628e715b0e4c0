package codec

import "github.com/lkmio/transcoder/media"

type pendingPacket struct {
	result Result
	packet *media.MediaPacket
}

// PassthroughEncoder is the software fallback Encoder: each SendBuffer
// produces exactly one output packet carrying the frame's raw data
// verbatim, every packet marked as a key frame (there is no real GOP
// structure without a real encoder). A deployment with a real codec
// library replaces codec.NewEncoder with one that does.
type PassthroughEncoder struct {
	codecId media.CodecId
	pending []pendingPacket
}

func NewPassthroughEncoder(codecId media.CodecId, outputContext *media.TranscodeContext) (Encoder, error) {
	return &PassthroughEncoder{codecId: codecId}, nil
}

func (e *PassthroughEncoder) SendBuffer(frame *media.MediaFrame) error {
	if frame == nil {
		return nil
	}

	packet := &media.MediaPacket{
		TrackId: frame.TrackId,
		Pts:     frame.Pts,
		Dts:     frame.Pts,
		Flags:   media.PacketFlagKeyFrame,
		Payload: append([]byte(nil), frame.Data...),
	}

	e.pending = append(e.pending, pendingPacket{result: DataReady, packet: packet})
	return nil
}

func (e *PassthroughEncoder) RecvBuffer() (Result, *media.MediaPacket) {
	if len(e.pending) == 0 {
		return NoData, nil
	}

	next := e.pending[0]
	e.pending = e.pending[1:]
	return next.result, next.packet
}

func (e *PassthroughEncoder) Close() error {
	e.pending = nil
	return nil
}
