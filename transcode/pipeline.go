package transcode

import (
	"github.com/lkmio/transcoder/codec"
	"github.com/lkmio/transcoder/log"
	"github.com/lkmio/transcoder/media"
)

// decodeStatsInterval controls how often the decode worker logs a
// throughput line, mirroring the teacher's periodic-log pattern rather
// than logging every frame.
const decodeStatsInterval = 300

func (s *Stream) decodeLoop() {
	defer close(s.decodeDone)

	for _, name := range s.streamOrder {
		s.parent.CreateStream(s.streamInfos[name])
	}

	for !s.killed.Load() {
		item, ok := s.qIn.Pop()
		if !ok {
			continue
		}
		s.decodePacket(item.(*media.MediaPacket))
	}

	for _, name := range s.streamOrder {
		s.parent.DeleteStream(s.streamInfos[name])
	}
	s.registry.ReleaseAll(s.appId, s.claimedNames)
}

func (s *Stream) decodePacket(packet *media.MediaPacket) {
	decoder, ok := s.decoders[packet.TrackId]
	if !ok {
		// input track with no surviving decoder (spec.md §7 MissingTrack):
		// silently dropped, the rest of the pipeline is unaffected.
		return
	}

	if err := decoder.SendBuffer(packet); err != nil {
		log.Sugar.Warnw("decoder rejected packet", append(s.logFields.Args(), "track", packet.TrackId, "err", err)...)
		return
	}

	for {
		result, frame := decoder.RecvBuffer()

		switch result {
		case codec.FormatChanged:
			frame.TrackId = packet.TrackId
			s.changeOutputFormat(packet.TrackId, frame)
			fallthrough // the frame carrying the new format is real output too — never dropped.

		case codec.DataReady:
			frame.TrackId = packet.TrackId
			count := s.decodedFrameCount.Add(1)
			if count%decodeStatsInterval == 0 {
				log.Sugar.Infow("decode throughput", append(s.logFields.Args(), "decoded_frame_count", count)...)
			}

			if s.qDecoded.Size() > s.maxQueueSize {
				log.Sugar.Warnw("decoded-frame queue over limit, dropping frame", append(s.logFields.Args(), "track", packet.TrackId)...)
				return
			}
			s.qDecoded.Push(frame)

		default:
			return
		}
	}
}

func (s *Stream) filterLoop() {
	defer close(s.filterDone)

	for !s.killed.Load() {
		item, ok := s.qDecoded.Pop()
		if !ok {
			continue
		}
		s.doFilters(item.(*media.MediaFrame))
	}
}

// doFilters fans a decoded frame out to every output context whose kind
// matches, cloning once per destination so no two filters ever share
// mutable frame state (spec.md §4.5/§4.7).
func (s *Stream) doFilters(frame *media.MediaFrame) {
	kind, ok := s.inputTrackKind[frame.TrackId]
	if !ok {
		return
	}

	for outputId, ctx := range s.outputContexts {
		if ctx.Kind != kind {
			continue
		}
		s.filterFrame(outputId, frame.Clone())
	}
}

func (s *Stream) filterFrame(outputId media.TrackId, frame *media.MediaFrame) {
	s.filtersMu.Lock()
	filter, ok := s.filters[outputId]
	s.filtersMu.Unlock()

	if !ok {
		// format-change hasn't arrived for this output yet; nothing to
		// filter through.
		return
	}

	if err := filter.SendBuffer(frame); err != nil {
		log.Sugar.Warnw("filter rejected frame", append(s.logFields.Args(), "track", outputId, "err", err)...)
		return
	}

	for {
		result, filtered := filter.RecvBuffer()
		if result != codec.DataReady {
			return
		}

		filtered.TrackId = outputId
		if s.qFiltered.Size() > s.maxQueueSize {
			s.queueFullCount.Add(1)
			if n := s.queueFullCount.Load(); n%decodeStatsInterval == 0 {
				log.Sugar.Warnw("filtered-frame queue over limit", append(s.logFields.Args(), "queue_full_count", n)...)
			}
			return
		}
		s.qFiltered.Push(filtered)
	}
}

func (s *Stream) encodeLoop() {
	defer close(s.encodeDone)

	for !s.killed.Load() {
		item, ok := s.qFiltered.Pop()
		if !ok {
			continue
		}
		frame := item.(*media.MediaFrame)
		s.encodeFrame(frame.TrackId, frame)
	}
}

func (s *Stream) encodeFrame(trackId media.TrackId, frame *media.MediaFrame) {
	encoder, ok := s.encoders[trackId]
	if !ok {
		return
	}

	if err := encoder.SendBuffer(frame); err != nil {
		log.Sugar.Warnw("encoder rejected frame", append(s.logFields.Args(), "track", trackId, "err", err)...)
		return
	}

	for {
		result, packet := encoder.RecvBuffer()
		if result != codec.DataReady {
			// NoData: the encoder needs more input before it can produce
			// anything; Error/EndOfStream: nothing more to drain for this
			// frame. Either way control returns to the outer loop.
			return
		}

		packet.TrackId = trackId
		s.statsMu.Lock()
		if stat, ok := s.stats[trackId]; ok {
			stat.observe(len(packet.Payload))
		}
		s.statsMu.Unlock()

		s.sendFrame(packet)
	}
}

// sendFrame fans one encoded packet out to every output stream that
// carries trackId, cloning per destination (spec.md §4.7) so the parent
// application can never observe aliased packets across two streams.
func (s *Stream) sendFrame(packet *media.MediaPacket) {
	for _, name := range s.streamOrder {
		tracks, ok := s.streamTracks[name]
		if !ok || !containsTrack(tracks, packet.TrackId) {
			continue
		}
		s.parent.SendFrame(s.streamInfos[name], packet.Clone())
	}
}
