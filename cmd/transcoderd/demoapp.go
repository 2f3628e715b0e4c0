package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lkmio/transcoder/log"
	"github.com/lkmio/transcoder/media"
)

// demoApp is a minimal transcode.ParentApp: it has no real subscribers to
// fan out to, it just logs every lifecycle callback and keeps counters a
// diagnostics handler can read. A real deployment replaces this with
// whatever owns the actual output stream registry (HLS packager, RTMP
// relay, WebRTC publisher, ...) — none of which this module depends on.
type demoApp struct {
	correlationId string

	mu      sync.Mutex
	packets map[media.TrackId]int64
	frames  atomic.Int64
}

func newDemoApp() *demoApp {
	return &demoApp{correlationId: uuid.NewString(), packets: make(map[media.TrackId]int64)}
}

func (d *demoApp) CreateStream(info *media.StreamInfo) {
	log.Sugar.Infow("output stream created", "correlation_id", d.correlationId, "stream", info.Name, "tracks", len(info.Tracks))
}

func (d *demoApp) DeleteStream(info *media.StreamInfo) {
	log.Sugar.Infow("output stream deleted", "correlation_id", d.correlationId, "stream", info.Name)
}

func (d *demoApp) SendFrame(info *media.StreamInfo, packet *media.MediaPacket) {
	d.frames.Add(1)

	d.mu.Lock()
	d.packets[packet.TrackId]++
	d.mu.Unlock()
}

func (d *demoApp) frameCount() int64 {
	return d.frames.Load()
}

func (d *demoApp) packetCounts() map[media.TrackId]int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[media.TrackId]int64, len(d.packets))
	for k, v := range d.packets {
		out[k] = v
	}
	return out
}

func (d *demoApp) handleCounters(w http.ResponseWriter, r *http.Request) {
	byTrack := make(map[string]int64)
	for id, count := range d.packetCounts() {
		byTrack[fmt.Sprintf("0x%02x", uint32(id))] = count
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"correlation_id": d.correlationId,
		"total_frames":   d.frameCount(),
		"by_track":       byTrack,
	}); err != nil {
		log.Sugar.Errorw("failed to encode counters response", "err", err)
	}
}
