package config

// VideoProfile is the video sub-profile of an EncodeProfile.
type VideoProfile struct {
	Enable    bool    `json:"enable"`
	Codec     string  `json:"codec"`
	Bitrate   string  `json:"bitrate"` // literal syntax, see ParseBitrate
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Framerate float64 `json:"framerate"`
}

func (v *VideoProfile) IsActive() bool {
	return v != nil && v.Enable
}

// AudioProfile is the audio sub-profile of an EncodeProfile.
type AudioProfile struct {
	Enable     bool   `json:"enable"`
	Codec      string `json:"codec"`
	Bitrate    string `json:"bitrate"`
	SampleRate int    `json:"samplerate"`
}

func (a *AudioProfile) IsActive() bool {
	return a != nil && a.Enable
}

// EncodeProfile is one named row of the profile/stream matrix: a profile
// contributes an output video track and/or an output audio track.
type EncodeProfile struct {
	Name   string        `json:"name"`
	Enable bool          `json:"enable"`
	Video  *VideoProfile `json:"video,omitempty"`
	Audio  *AudioProfile `json:"audio,omitempty"`
}

func (e EncodeProfile) IsActive() bool {
	return e.Enable
}

// OutputStream is one configured output stream template: a name
// containing the ${OriginStreamName} macro, and the ordered list of
// profile names it carries.
type OutputStream struct {
	Name     string   `json:"name"`
	Profiles []string `json:"profiles"`
}

// Application is the configuration surface this module consumes
// (spec.md §6): a list of encode profiles and a list of output streams.
type Application struct {
	Id      uint32          `json:"id"`
	Name    string          `json:"name"`
	Encodes []EncodeProfile `json:"encodes"`
	Streams []OutputStream  `json:"streams"`

	// MaxQueue overrides the per-queue back-pressure threshold a Stream
	// derives from its encoder count. 0 means "derive it" (see
	// transcode.NewStream); any positive value is used as-is.
	MaxQueue int `json:"max_queue_size"`
}
