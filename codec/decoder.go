package codec

import "github.com/lkmio/transcoder/media"

// pendingFrame pairs a drained Result with the frame (if any) it carries,
// mirroring RecvBuffer's (result, output?) contract.
type pendingFrame struct {
	result Result
	frame  *media.MediaFrame
}

// PassthroughDecoder is the software fallback Decoder (see worker.go):
// each SendBuffer produces exactly one output frame carrying the packet's
// payload verbatim, stamped with the decoder's current output format. It
// performs no real decompression — a deployment with a real codec library
// replaces codec.NewDecoder with one that does.
type PassthroughDecoder struct {
	codecId media.CodecId
	current media.FormatDescriptor
	pending []pendingFrame

	// established is false until the first frame has been emitted. That
	// first frame is always reported as FormatChanged — a decoder that
	// has produced nothing yet has, by definition, just established its
	// output format for the first time, exactly as the downstream filter
	// stage needs in order to build its first Filter instance. Without
	// this, a stream that never hits a real resolution change would never
	// get a filter at all.
	established bool

	// stagedFormat, when non-nil, is applied to the next SendBuffer as a
	// FormatChanged event instead of a plain DataReady — test harnesses
	// use SimulateFormatChange to drive spec.md §8 scenario 5 without a
	// real codec ever detecting a resolution change.
	stagedFormat *media.FormatDescriptor
}

func NewPassthroughDecoder(codecId media.CodecId, inputContext *media.TranscodeContext) (Decoder, error) {
	d := &PassthroughDecoder{codecId: codecId}
	if inputContext != nil {
		d.current = formatFromContext(inputContext)
	}
	return d, nil
}

func formatFromContext(ctx *media.TranscodeContext) media.FormatDescriptor {
	return media.FormatDescriptor{
		Kind:          ctx.Kind,
		Width:         ctx.Width,
		Height:        ctx.Height,
		SampleRate:    ctx.SampleRate,
		SampleFormat:  ctx.SampleFormat,
		ChannelLayout: ctx.ChannelLayout,
	}
}

// SimulateFormatChange arms the next SendBuffer to report FormatChanged
// with newFormat, then adopt it as current.
func (d *PassthroughDecoder) SimulateFormatChange(newFormat media.FormatDescriptor) {
	d.stagedFormat = &newFormat
}

func (d *PassthroughDecoder) SendBuffer(packet *media.MediaPacket) error {
	if packet == nil {
		return nil
	}

	frame := &media.MediaFrame{
		TrackId: packet.TrackId,
		Pts:     packet.Pts,
		Data:    append([]byte(nil), packet.Payload...),
	}

	result := DataReady
	if !d.established || d.stagedFormat != nil {
		if d.stagedFormat != nil {
			d.current = *d.stagedFormat
			d.stagedFormat = nil
		}
		result = FormatChanged
		d.established = true
	}
	frame.Format = d.current

	d.pending = append(d.pending, pendingFrame{result: result, frame: frame})
	return nil
}

func (d *PassthroughDecoder) RecvBuffer() (Result, *media.MediaFrame) {
	if len(d.pending) == 0 {
		return NoData, nil
	}

	next := d.pending[0]
	d.pending = d.pending[1:]
	return next.result, next.frame
}

func (d *PassthroughDecoder) Close() error {
	d.pending = nil
	return nil
}
