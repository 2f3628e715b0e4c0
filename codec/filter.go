package codec

import "github.com/lkmio/transcoder/media"

// PassthroughFilter is the software fallback Filter: it stamps the
// output-side format (what the encoder expects) onto the frame without
// touching Data, since there is no real scaler/resampler to invoke. A
// deployment with a real codec library replaces codec.NewFilter with one
// that actually converts pixel format/sample rate/channel layout.
type PassthroughFilter struct {
	outputFormat media.FormatDescriptor
	pending      []pendingFrame
}

func NewPassthroughFilter(trackId media.TrackId, inputContext, outputContext *media.TranscodeContext) (Filter, error) {
	f := &PassthroughFilter{}
	if outputContext != nil {
		f.outputFormat = formatFromContext(outputContext)
	}
	return f, nil
}

func (f *PassthroughFilter) SendBuffer(frame *media.MediaFrame) error {
	if frame == nil {
		return nil
	}

	out := frame.Clone()
	out.Format = f.outputFormat
	f.pending = append(f.pending, pendingFrame{result: DataReady, frame: out})
	return nil
}

func (f *PassthroughFilter) RecvBuffer() (Result, *media.MediaFrame) {
	if len(f.pending) == 0 {
		return NoData, nil
	}

	next := f.pending[0]
	f.pending = f.pending[1:]
	return next.result, next.frame
}

func (f *PassthroughFilter) Close() error {
	f.pending = nil
	return nil
}
