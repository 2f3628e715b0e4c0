package transcode

import "github.com/lkmio/transcoder/media"

// trackAllocator hands out output track ids from the two disjoint 8-bit
// ranges reserved for outputs (spec.md §4.3, grounded on
// TranscodeStream::AddOutputContext in original_source/). It is
// per-Stream, never shared — two streams can and do reuse the same ids.
type trackAllocator struct {
	nextVideo media.TrackId
	nextAudio media.TrackId
}

func newTrackAllocator() *trackAllocator {
	return &trackAllocator{
		nextVideo: media.FirstVideoOutputTrack,
		nextAudio: media.FirstAudioOutputTrack,
	}
}

// Allocate returns the next free id for kind, or media.NoTrack once that
// kind's 16-slot range is exhausted. NoTrack is the same sentinel the
// original overloads for "skip" elsewhere — callers here must tell the two
// meanings apart by context (an allocator running dry vs. a disabled
// sub-profile), exactly as documented at the allocator's call sites.
func (a *trackAllocator) Allocate(kind media.Kind) media.TrackId {
	switch kind {
	case media.KindVideo:
		if a.nextVideo > media.LastVideoOutputTrack {
			return media.NoTrack
		}
		id := a.nextVideo
		a.nextVideo++
		return id
	case media.KindAudio:
		if a.nextAudio > media.LastAudioOutputTrack {
			return media.NoTrack
		}
		id := a.nextAudio
		a.nextAudio++
		return id
	default:
		return media.NoTrack
	}
}
