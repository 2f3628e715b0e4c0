package transcode

import (
	"strings"

	"github.com/lkmio/transcoder/config"
	"github.com/lkmio/transcoder/log"
	"github.com/lkmio/transcoder/media"
	"github.com/lkmio/transcoder/registry"
)

// originStreamMacro is the substitution token a stream-name template may
// contain (spec.md §4.4, grounded on AddStreamInfoOutput's string
// replacement in original_source/).
const originStreamMacro = "${OriginStreamName}"

// profileTrackPair is the output track pair one encode profile contributes:
// at most one video track id and at most one audio track id, either of
// which may be media.NoTrack if that sub-profile is disabled. This
// replaces the original's fixed-index tracks[0]/tracks[1] access (spec.md
// §9 Open Question #1) so a video-only or audio-only profile never
// misattributes its single track to the wrong slot.
type profileTrackPair struct {
	Video media.TrackId
	Audio media.TrackId
}

// routingResult is everything buildRouting computes at construction time:
// which output contexts exist, which ones each named output stream
// carries, and the StreamInfo announcements built for them.
type routingResult struct {
	outputContexts map[media.TrackId]*media.TranscodeContext
	streamTracks   map[string][]media.TrackId
	streamOrder    []string
	streamInfos    map[string]*media.StreamInfo
	claimedNames   []string
}

// buildRouting runs the three-pass routing build described in spec.md
// §4.4: profile_tracks, then stream_tracks (with macro substitution and
// registry claims), then garbage-collection of any output context no
// stream ended up referencing.
func buildRouting(appId uint32, app *config.Application, originStreamName string, reg *registry.Registry) routingResult {
	allocator := newTrackAllocator()

	outputContexts := make(map[media.TrackId]*media.TranscodeContext)
	profileTracks := make(map[string]profileTrackPair)

	for _, encode := range app.Encodes {
		if !encode.IsActive() {
			continue
		}

		var pair profileTrackPair

		if encode.Video.IsActive() {
			bitrate, err := config.ParseBitrate(encode.Video.Bitrate)
			if err != nil {
				log.Sugar.Warnw("skipping video sub-profile: bad bitrate literal", "profile", encode.Name, "bitrate", encode.Video.Bitrate, "err", err)
			} else if id := allocator.Allocate(media.KindVideo); id != media.NoTrack {
				outputContexts[id] = media.NewVideoContext(true, media.ParseCodecId(encode.Video.Codec), bitrate, encode.Video.Width, encode.Video.Height, encode.Video.Framerate)
				pair.Video = id
			} else {
				log.Sugar.Warnw("video output track range exhausted, dropping sub-profile", "profile", encode.Name)
			}
		}

		if encode.Audio.IsActive() {
			bitrate, err := config.ParseBitrate(encode.Audio.Bitrate)
			if err != nil {
				log.Sugar.Warnw("skipping audio sub-profile: bad bitrate literal", "profile", encode.Name, "bitrate", encode.Audio.Bitrate, "err", err)
			} else if id := allocator.Allocate(media.KindAudio); id != media.NoTrack {
				outputContexts[id] = media.NewAudioContext(true, media.ParseCodecId(encode.Audio.Codec), bitrate, encode.Audio.SampleRate)
				pair.Audio = id
			} else {
				log.Sugar.Warnw("audio output track range exhausted, dropping sub-profile", "profile", encode.Name)
			}
		}

		if pair.Video != media.NoTrack || pair.Audio != media.NoTrack {
			profileTracks[encode.Name] = pair
		}
	}

	streamTracks := make(map[string][]media.TrackId)
	streamOrder := make([]string, 0, len(app.Streams))
	streamInfos := make(map[string]*media.StreamInfo)
	claimedNames := make([]string, 0, len(app.Streams))

	for _, outStream := range app.Streams {
		name := strings.Replace(outStream.Name, originStreamMacro, originStreamName, -1)

		if !reg.Claim(appId, name) {
			log.Sugar.Warnw("output stream name already claimed, dropping", "name", name)
			continue
		}

		var tracks []media.TrackId
		for _, profileName := range outStream.Profiles {
			pair, ok := profileTracks[profileName]
			if !ok {
				log.Sugar.Warnw("output stream references unknown profile", "stream", name, "profile", profileName)
				continue
			}
			if pair.Video != media.NoTrack {
				tracks = append(tracks, pair.Video)
			}
			if pair.Audio != media.NoTrack {
				tracks = append(tracks, pair.Audio)
			}
		}

		if len(tracks) == 0 {
			reg.Release(appId, name)
			log.Sugar.Warnw("output stream resolved to zero tracks, dropping", "name", name)
			continue
		}

		streamTracks[name] = tracks
		streamOrder = append(streamOrder, name)
		streamInfos[name] = media.NewStreamInfo(name)
		claimedNames = append(claimedNames, name)
	}

	referenced := make(map[media.TrackId]struct{})
	for _, tracks := range streamTracks {
		for _, id := range tracks {
			referenced[id] = struct{}{}
		}
	}
	for id := range outputContexts {
		if _, ok := referenced[id]; !ok {
			delete(outputContexts, id)
		}
	}

	return routingResult{
		outputContexts: outputContexts,
		streamTracks:   streamTracks,
		streamOrder:    streamOrder,
		streamInfos:    streamInfos,
		claimedNames:   claimedNames,
	}
}
