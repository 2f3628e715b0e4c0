package transcode

import (
	"testing"

	"github.com/lkmio/transcoder/config"
	"github.com/lkmio/transcoder/media"
	"github.com/lkmio/transcoder/registry"
	"github.com/stretchr/testify/require"
)

func videoAudioApp() *config.Application {
	return &config.Application{
		Id: 1,
		Encodes: []config.EncodeProfile{
			{
				Name:   "720p",
				Enable: true,
				Video:  &config.VideoProfile{Enable: true, Codec: "H264", Bitrate: "2M", Width: 1280, Height: 720, Framerate: 30},
				Audio:  &config.AudioProfile{Enable: true, Codec: "AAC", Bitrate: "128k", SampleRate: 48000},
			},
			{
				Name:   "unused",
				Enable: true,
				Video:  &config.VideoProfile{Enable: true, Codec: "H264", Bitrate: "500k", Width: 640, Height: 360},
			},
		},
		Streams: []config.OutputStream{
			{Name: "${OriginStreamName}_hd", Profiles: []string{"720p"}},
		},
	}
}

func TestBuildRoutingSubstitutesOriginStreamNameMacro(t *testing.T) {
	reg := registry.New()
	result := buildRouting(1, videoAudioApp(), "camera1", reg)

	require.Contains(t, result.streamTracks, "camera1_hd")
	require.True(t, reg.Has(1, "camera1_hd"))
}

func TestBuildRoutingPairsVideoAndAudioByProfileNotIndex(t *testing.T) {
	reg := registry.New()
	app := videoAudioApp()
	result := buildRouting(1, app, "camera1", reg)

	tracks := result.streamTracks["camera1_hd"]
	require.Len(t, tracks, 2)

	var sawVideo, sawAudio bool
	for _, id := range tracks {
		ctx := result.outputContexts[id]
		require.NotNil(t, ctx)
		if ctx.Kind == media.KindVideo {
			sawVideo = true
		}
		if ctx.Kind == media.KindAudio {
			sawAudio = true
		}
	}
	require.True(t, sawVideo)
	require.True(t, sawAudio)
}

func TestBuildRoutingGarbageCollectsUnreferencedProfiles(t *testing.T) {
	reg := registry.New()
	result := buildRouting(1, videoAudioApp(), "camera1", reg)

	// "unused" profile's video track was allocated during the first pass
	// but no stream template references it, so it must not survive gc.
	for _, ctx := range result.outputContexts {
		require.NotEqual(t, 360, ctx.Height, "gc should have dropped the unreferenced 360p context")
	}
}

func TestBuildRoutingDropsReferenceToUnknownProfile(t *testing.T) {
	reg := registry.New()
	app := videoAudioApp()
	app.Streams = []config.OutputStream{
		{Name: "${OriginStreamName}_mix", Profiles: []string{"720p", "does-not-exist"}},
	}

	result := buildRouting(1, app, "camera1", reg)
	require.Len(t, result.streamTracks["camera1_mix"], 2, "the unknown profile reference is dropped, the known one still lands")
}

func TestBuildRoutingRejectsDuplicateStreamName(t *testing.T) {
	reg := registry.New()
	require.True(t, reg.Claim(1, "camera1_hd"))

	result := buildRouting(1, videoAudioApp(), "camera1", reg)
	require.NotContains(t, result.streamTracks, "camera1_hd")
}
