package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lkmio/transcoder/media"
)

// inputTrackDescriptor is the on-disk shape of one input track — separate
// from media.TrackInfo the same way config.Application is kept separate
// from the engine's internal types: the wire format is allowed to drift
// independently of the domain struct it's loaded into.
type inputTrackDescriptor struct {
	TrackId  uint32  `json:"track_id"`
	Kind     string  `json:"kind"` // "video" | "audio"
	Codec    string  `json:"codec"`
	TimeBase [2]int  `json:"time_base"`
	Bitrate  int     `json:"bitrate"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	FPS      float64 `json:"fps,omitempty"`

	SampleRate    int    `json:"sample_rate,omitempty"`
	SampleFormat  string `json:"sample_format,omitempty"`
	ChannelLayout string `json:"channel_layout,omitempty"`
}

type inputStreamDescriptor struct {
	Name   string                 `json:"name"`
	Tracks []inputTrackDescriptor `json:"tracks"`
}

func loadInputStream(path string) (*media.StreamInfo, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input stream: read %s: %w", path, err)
	}

	var desc inputStreamDescriptor
	if err := json.Unmarshal(file, &desc); err != nil {
		return nil, fmt.Errorf("input stream: parse %s: %w", path, err)
	}

	info := media.NewStreamInfo(desc.Name)
	for _, t := range desc.Tracks {
		kind := media.KindVideo
		if t.Kind == "audio" {
			kind = media.KindAudio
		}

		info.AddTrack(media.TrackInfo{
			TrackId:       media.TrackId(t.TrackId),
			Kind:          kind,
			CodecId:       media.ParseCodecId(t.Codec),
			TimeBase:      media.TimeBase{Num: t.TimeBase[0], Den: t.TimeBase[1]},
			Bitrate:       t.Bitrate,
			Width:         t.Width,
			Height:        t.Height,
			FrameRate:     t.FPS,
			SampleRate:    t.SampleRate,
			SampleFormat:  parseSampleFormat(t.SampleFormat),
			ChannelLayout: parseChannelLayout(t.ChannelLayout),
		})
	}

	return info, nil
}

func parseSampleFormat(name string) media.SampleFormat {
	switch name {
	case "s16":
		return media.SampleFormatS16
	case "flt":
		return media.SampleFormatFLT
	default:
		return media.SampleFormatNone
	}
}

func parseChannelLayout(name string) media.ChannelLayout {
	switch name {
	case "mono":
		return media.ChannelLayoutMono
	case "stereo":
		return media.ChannelLayoutStereo
	default:
		return 0
	}
}
