package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lkmio/transcoder/log"
	"github.com/lkmio/transcoder/transcode"
)

// streamSummary is the JSON shape one GET /streams entry takes.
type streamSummary struct {
	Name          string         `json:"name"`
	State         string         `json:"state"`
	OutputStreams []string       `json:"output_streams"`
	Bitrates      map[string]int `json:"bitrates,omitempty"`
}

func startDiagnosticsServer(addr string, e *engine, app *demoApp) {
	r := mux.NewRouter()
	r.HandleFunc("/streams", e.handleStreams).Methods(http.MethodGet)
	r.HandleFunc("/counters", app.handleCounters).Methods(http.MethodGet)

	srv := &http.Server{
		Handler:      r,
		Addr:         addr,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	log.Sugar.Infow("diagnostics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Sugar.Errorw("diagnostics server stopped", "err", err)
	}
}

func (e *engine) handleStreams(w http.ResponseWriter, r *http.Request) {
	e.mu.Lock()
	summaries := make([]streamSummary, 0, len(e.streams))
	for name, s := range e.streams {
		bitrates := make(map[string]int)
		for trackId, avg := range s.BitratesSnapshot() {
			bitrates[fmt.Sprintf("0x%02x", uint32(trackId))] = avg
		}
		summaries = append(summaries, streamSummary{
			Name:          name,
			State:         stateName(s),
			OutputStreams: s.OutputStreamNames(),
			Bitrates:      bitrates,
		})
	}
	e.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		log.Sugar.Errorw("failed to encode diagnostics response", "err", err)
	}
}

func stateName(s *transcode.Stream) string {
	return s.State().String()
}
