package transcode

import (
	"github.com/lkmio/transcoder/codec"
	"github.com/lkmio/transcoder/log"
	"github.com/lkmio/transcoder/media"
)

// changeOutputFormat rebuilds every filter downstream of trackId after its
// decoder reports FormatChanged (spec.md §4.6). It is deliberately silent
// about any filter already draining frames built against the old format —
// the original leaves that race unhandled too (spec.md §9 Open Question
// #2; DESIGN.md records the decision not to add a barrier here).
func (s *Stream) changeOutputFormat(trackId media.TrackId, frame *media.MediaFrame) {
	kind, ok := s.inputTrackKind[trackId]
	if !ok {
		return
	}

	decodedContext := contextFromFormat(frame.Format)

	for outputId, outputContext := range s.outputContexts {
		if outputContext.Kind != kind {
			continue
		}

		filter, err := codec.NewFilter(outputId, decodedContext, outputContext)
		if err != nil {
			log.Sugar.Warnw("failed to rebuild filter on format change", append(s.logFields.Args(), "track", outputId, "err", err)...)
			continue
		}

		s.filtersMu.Lock()
		s.filters[outputId] = filter
		s.filtersMu.Unlock()
	}
}

func contextFromFormat(format media.FormatDescriptor) *media.TranscodeContext {
	switch format.Kind {
	case media.KindVideo:
		return media.NewVideoContext(false, media.CodecNone, 0, format.Width, format.Height, 0)
	default:
		ctx := media.NewAudioContext(false, media.CodecNone, 0, format.SampleRate)
		ctx.SampleFormat = format.SampleFormat
		ctx.ChannelLayout = format.ChannelLayout
		return ctx
	}
}
