package transcode

import (
	"sync"
	"sync/atomic"

	"github.com/lkmio/transcoder/codec"
	"github.com/lkmio/transcoder/collections"
	"github.com/lkmio/transcoder/config"
	"github.com/lkmio/transcoder/log"
	"github.com/lkmio/transcoder/media"
	"github.com/lkmio/transcoder/registry"
)

// initialQueueCapacity is just the ring buffer's starting size — Queue
// grows on demand, so this is a hint, not a cap. The actual back-pressure
// boundary is maxQueueSize, checked before every Push.
const initialQueueCapacity = 64

// Stream is one running instance of the decode/filter/encode pipeline for
// a single input stream (spec.md §4). Construct it with NewStream; it
// either comes up Running with its worker goroutines already started, or
// Stopped if it has nothing to do.
type Stream struct {
	appId       uint32
	originName  string
	parent      ParentApp
	registry    *registry.Registry
	logFields   log.Fields

	decoders       map[media.TrackId]codec.Decoder
	inputTrackKind map[media.TrackId]media.Kind

	encoders map[media.TrackId]codec.Encoder

	filtersMu sync.Mutex
	filters   map[media.TrackId]codec.Filter

	outputContexts map[media.TrackId]*media.TranscodeContext
	streamTracks   map[string][]media.TrackId
	streamOrder    []string
	streamInfos    map[string]*media.StreamInfo
	claimedNames   []string

	maxQueueSize int
	qIn          *collections.Queue
	qDecoded     *collections.Queue
	qFiltered    *collections.Queue

	decodeDone  chan struct{}
	filterDone  chan struct{}
	encodeDone  chan struct{}
	killed      atomic.Bool
	state       atomic.Int32

	decodedFrameCount atomic.Int64
	queueFullCount    atomic.Int64

	statsMu sync.Mutex
	stats   map[media.TrackId]*BitrateStatistics

	stopOnce sync.Once
}

// NewStream builds the pipeline for one incoming stream under app,
// including decoders for every input track, the routing table, and an
// encoder/filter slot for every output track any configured output stream
// actually references. If no decoder or no encoder could be built, the
// returned Stream is already Stopped — Push on it returns false (spec.md
// §6, Building -> Stopped transition).
func NewStream(app *config.Application, inputStream *media.StreamInfo, parent ParentApp, reg *registry.Registry) *Stream {
	fields := log.Fields{"app": app.Id, "stream": inputStream.Name}

	s := &Stream{
		appId:      app.Id,
		originName: inputStream.Name,
		parent:     parent,
		registry:   reg,
		logFields:  fields,

		decoders:       make(map[media.TrackId]codec.Decoder),
		inputTrackKind: make(map[media.TrackId]media.Kind),
		encoders:       make(map[media.TrackId]codec.Encoder),
		filters:        make(map[media.TrackId]codec.Filter),
		stats:          make(map[media.TrackId]*BitrateStatistics),

		decodeDone: make(chan struct{}),
		filterDone: make(chan struct{}),
		encodeDone: make(chan struct{}),
	}

	for _, track := range inputStream.Tracks {
		inputContext := decodeContextFor(track)
		decoder, err := codec.NewDecoder(track.CodecId, inputContext)
		if err != nil {
			log.Sugar.Warnw("failed to create decoder for input track, skipping track", append(fields.Args(), "track", track.TrackId, "err", err)...)
			continue
		}
		s.decoders[track.TrackId] = decoder
		s.inputTrackKind[track.TrackId] = track.Kind
	}

	if len(s.decoders) == 0 {
		log.Sugar.Warnw("no decoder could be created, engine is inert", fields.Args()...)
		s.state.Store(int32(Stopped))
		return s
	}

	routing := buildRouting(app.Id, app, inputStream.Name, reg)
	s.outputContexts = routing.outputContexts
	s.streamTracks = routing.streamTracks
	s.streamOrder = routing.streamOrder
	s.streamInfos = routing.streamInfos
	s.claimedNames = routing.claimedNames

	for _, track := range inputStream.Tracks {
		for outputId, ctx := range s.outputContexts {
			if ctx.Kind != track.Kind {
				continue
			}

			encoder, err := codec.NewEncoder(ctx.CodecId, ctx)
			if err != nil {
				log.Sugar.Warnw("failed to create encoder for output track, dropping it", append(fields.Args(), "track", outputId, "err", err)...)
				continue
			}
			s.encoders[outputId] = encoder
			s.stats[outputId] = newBitrateStatistics()

			info := media.TrackInfo{
				TrackId:       outputId,
				Kind:          ctx.Kind,
				CodecId:       ctx.CodecId,
				TimeBase:      ctx.TimeBase,
				Bitrate:       ctx.Bitrate,
				Width:         ctx.Width,
				Height:        ctx.Height,
				FrameRate:     ctx.FrameRate,
				SampleRate:    ctx.SampleRate,
				SampleFormat:  ctx.SampleFormat,
				ChannelLayout: ctx.ChannelLayout,
			}
			for name, tracks := range s.streamTracks {
				if !containsTrack(tracks, outputId) {
					continue
				}
				if !s.streamInfos[name].HasTrack(outputId) {
					s.streamInfos[name].AddTrack(info)
				}
			}
		}
	}

	if len(s.encoders) == 0 {
		log.Sugar.Warnw("no encoder could be created, engine is inert", fields.Args()...)
		reg.ReleaseAll(app.Id, s.claimedNames)
		s.state.Store(int32(Stopped))
		return s
	}

	if app.MaxQueue > 0 {
		s.maxQueueSize = app.MaxQueue
	} else if encoderCount := len(s.encoders); encoderCount > 0x0F {
		s.maxQueueSize = 0xFF
	} else {
		s.maxQueueSize = encoderCount * config.DefaultMaxQueuePerEncoder
	}

	s.qIn = collections.NewQueue(initialQueueCapacity)
	s.qDecoded = collections.NewQueue(initialQueueCapacity)
	s.qFiltered = collections.NewQueue(initialQueueCapacity)

	s.state.Store(int32(Running))

	go s.decodeLoop()
	go s.filterLoop()
	go s.encodeLoop()

	log.Sugar.Infow("transcode stream running", append(fields.Args(), "decoders", len(s.decoders), "encoders", len(s.encoders), "outputs", len(s.claimedNames), "max_queue_size", s.maxQueueSize)...)
	return s
}

func decodeContextFor(track media.TrackInfo) *media.TranscodeContext {
	switch track.Kind {
	case media.KindVideo:
		ctx := media.NewVideoContext(false, track.CodecId, track.Bitrate, track.Width, track.Height, track.FrameRate)
		ctx.TimeBase = track.TimeBase
		return ctx
	default:
		ctx := media.NewAudioContext(false, track.CodecId, track.Bitrate, track.SampleRate)
		ctx.TimeBase = track.TimeBase
		ctx.SampleFormat = track.SampleFormat
		ctx.ChannelLayout = track.ChannelLayout
		return ctx
	}
}

func containsTrack(tracks []media.TrackId, id media.TrackId) bool {
	for _, t := range tracks {
		if t == id {
			return true
		}
	}
	return false
}

// State reports the engine's current lifecycle stage.
func (s *Stream) State() State {
	return State(s.state.Load())
}

// Push hands one coded input packet to the decode stage. It returns false
// without blocking if the engine isn't Running or the decode queue is
// already over its soft limit — the caller is expected to drop the packet
// and move on rather than retry (spec.md §4.1, DROP-not-BLOCK).
func (s *Stream) Push(packet *media.MediaPacket) bool {
	if packet == nil || s.State() != Running {
		return false
	}

	if s.qIn.Size() > s.maxQueueSize {
		log.Sugar.Warnw("decode queue over limit, dropping packet", append(s.logFields.Args(), "track", packet.TrackId)...)
		return false
	}

	s.qIn.Push(packet)
	return true
}

// Stop drains and tears the engine down in the fixed order spec.md §6
// requires: abort the decode queue and join the decode worker, then abort
// the filter queue and join the filter worker, then abort the encode
// queue and join the encode worker. Idempotent.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() {
		if s.State() == Stopped {
			return
		}
		s.state.Store(int32(Stopping))
		s.killed.Store(true)

		if s.qIn != nil {
			s.qIn.Abort()
			<-s.decodeDone

			s.qDecoded.Abort()
			<-s.filterDone

			s.qFiltered.Abort()
			<-s.encodeDone
		}

		s.state.Store(int32(Stopped))
		log.Sugar.Infow("transcode stream stopped", s.logFields.Args()...)
	})
}

// BitrateFor returns average bytes/second observed for an output track, or
// (0, false) if trackId names no encoder this engine owns. Exposed for
// diagnostics surfaces (SPEC_FULL.md §C.2).
func (s *Stream) BitrateFor(trackId media.TrackId) (int, bool) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	stat, ok := s.stats[trackId]
	if !ok {
		return 0, false
	}
	return stat.Average(), true
}

// OutputStreamNames returns the output stream names this engine claimed.
func (s *Stream) OutputStreamNames() []string {
	return append([]string(nil), s.claimedNames...)
}

// BitratesSnapshot returns the current average bytes/second for every
// output track this engine owns, keyed by track id. Exposed for
// diagnostics surfaces (SPEC_FULL.md §C.2).
func (s *Stream) BitratesSnapshot() map[media.TrackId]int {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	out := make(map[media.TrackId]int, len(s.stats))
	for id, stat := range s.stats {
		out[id] = stat.Average()
	}
	return out
}
