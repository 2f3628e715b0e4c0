package transcode

import "github.com/lkmio/transcoder/media"

// ParentApp is the contract a Stream needs from whatever owns it — the
// process-wide application object that actually publishes tracks to
// subscribers. A Stream never reaches for a global to find this; it is
// handed one constructor argument and calls back into it for the
// lifetime of the engine (spec.md §5, §9 REDESIGN FLAG).
type ParentApp interface {
	// CreateStream announces a new output stream and its track list.
	// Called once per output stream, from the decode worker, before any
	// frame for that stream is sent.
	CreateStream(info *media.StreamInfo)

	// DeleteStream retracts an output stream on engine shutdown.
	DeleteStream(info *media.StreamInfo)

	// SendFrame delivers one coded packet for one track of one output
	// stream. packet is a clone made for this destination alone; the
	// engine never touches it again, so the parent owns it after the call
	// and may retain or modify it.
	SendFrame(info *media.StreamInfo, packet *media.MediaPacket)
}
