package transcode

import (
	"sync"
	"testing"
	"time"

	"github.com/lkmio/transcoder/config"
	"github.com/lkmio/transcoder/media"
	"github.com/lkmio/transcoder/registry"
	"github.com/stretchr/testify/require"
)

// fakeParent is a transcode.ParentApp test double that records every
// callback it receives behind a mutex.
type fakeParent struct {
	mu       sync.Mutex
	created  []*media.StreamInfo
	deleted  []*media.StreamInfo
	frames   []*media.MediaPacket
}

func (f *fakeParent) CreateStream(info *media.StreamInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, info)
}

func (f *fakeParent) DeleteStream(info *media.StreamInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, info)
}

func (f *fakeParent) SendFrame(info *media.StreamInfo, packet *media.MediaPacket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, packet)
}

func (f *fakeParent) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func singleVideoApp() *config.Application {
	return &config.Application{
		Id: 7,
		Encodes: []config.EncodeProfile{
			{Name: "720p", Enable: true, Video: &config.VideoProfile{Enable: true, Codec: "H264", Bitrate: "2M", Width: 1280, Height: 720}},
		},
		Streams: []config.OutputStream{
			{Name: "${OriginStreamName}_out", Profiles: []string{"720p"}},
		},
	}
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

func TestStreamEndToEndSingleVideoProfile(t *testing.T) {
	input := media.NewStreamInfo("camera1")
	input.AddTrack(media.TrackInfo{TrackId: 100, Kind: media.KindVideo, CodecId: media.CodecH264, TimeBase: media.TimeBase{Num: 1, Den: 90000}})

	parent := &fakeParent{}
	reg := registry.New()

	s := NewStream(singleVideoApp(), input, parent, reg)
	require.Equal(t, Running, s.State())
	require.Equal(t, []string{"camera1_out"}, s.OutputStreamNames())

	waitUntil(t, time.Second, func() bool { return len(parent.created) == 1 })

	require.True(t, s.Push(&media.MediaPacket{TrackId: 100, Pts: 1, Payload: []byte{1, 2, 3}}))

	waitUntil(t, time.Second, func() bool { return parent.frameCount() > 0 })

	s.Stop()
	require.Equal(t, Stopped, s.State())
	require.Len(t, parent.deleted, 1)
	require.False(t, reg.Has(7, "camera1_out"))
}

func TestStreamPushRejectedAfterStop(t *testing.T) {
	input := media.NewStreamInfo("camera2")
	input.AddTrack(media.TrackInfo{TrackId: 100, Kind: media.KindVideo, CodecId: media.CodecH264})

	s := NewStream(singleVideoApp(), input, &fakeParent{}, registry.New())
	s.Stop()

	require.False(t, s.Push(&media.MediaPacket{TrackId: 100, Payload: []byte{1}}))
}

func TestStreamWithNoMatchingTrackKindIsInert(t *testing.T) {
	// Only an audio input track, but the app config only defines a video
	// sub-profile: a decoder is created (any track gets one), but no
	// encoder ever matches its kind, so construction must stop at Stopped.
	input := media.NewStreamInfo("mic1")
	input.AddTrack(media.TrackInfo{TrackId: 200, Kind: media.KindAudio, CodecId: media.CodecAAC})

	s := NewStream(singleVideoApp(), input, &fakeParent{}, registry.New())
	require.Equal(t, Stopped, s.State())
	require.False(t, s.Push(&media.MediaPacket{TrackId: 200, Payload: []byte{1}}))
}

func TestStreamMaxQueueSizeOverride(t *testing.T) {
	input := media.NewStreamInfo("camera3")
	input.AddTrack(media.TrackInfo{TrackId: 100, Kind: media.KindVideo, CodecId: media.CodecH264})

	app := singleVideoApp()
	app.MaxQueue = 42

	s := NewStream(app, input, &fakeParent{}, registry.New())
	require.Equal(t, 42, s.maxQueueSize)
	s.Stop()
}

func TestStreamMaxQueueSizeDerivedFromEncoderCountWhenUnset(t *testing.T) {
	input := media.NewStreamInfo("camera4")
	input.AddTrack(media.TrackInfo{TrackId: 100, Kind: media.KindVideo, CodecId: media.CodecH264})

	app := singleVideoApp() // app.MaxQueue is left at its zero value
	s := NewStream(app, input, &fakeParent{}, registry.New())
	require.Equal(t, config.DefaultMaxQueuePerEncoder, s.maxQueueSize) // one encoder
	s.Stop()
}
