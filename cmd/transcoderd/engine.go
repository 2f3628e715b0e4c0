package main

import (
	"sync"

	"github.com/lkmio/transcoder/config"
	"github.com/lkmio/transcoder/log"
	"github.com/lkmio/transcoder/media"
	"github.com/lkmio/transcoder/registry"
	"github.com/lkmio/transcoder/transcode"
)

// engine owns the process-wide registry and every live transcode.Stream,
// keyed by input stream name. It is the process's single constructed
// owner of state that the teacher kept as package-level globals (spec.md
// §9 REDESIGN FLAG).
type engine struct {
	app    *config.Application
	parent transcode.ParentApp
	reg    *registry.Registry

	mu      sync.Mutex
	streams map[string]*transcode.Stream
}

func newEngine(app *config.Application, parent transcode.ParentApp) *engine {
	return &engine{
		app:     app,
		parent:  parent,
		reg:     registry.New(),
		streams: make(map[string]*transcode.Stream),
	}
}

// Publish starts a new transcode.Stream for inputStream, replacing any
// prior stream of the same name (stopping it first).
func (e *engine) Publish(inputStream *media.StreamInfo) *transcode.Stream {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prior, ok := e.streams[inputStream.Name]; ok {
		prior.Stop()
		delete(e.streams, inputStream.Name)
	}

	s := transcode.NewStream(e.app, inputStream, e.parent, e.reg)
	e.streams[inputStream.Name] = s

	log.Sugar.Infow("published input stream", "stream", inputStream.Name, "state", s.State().String())
	return s
}

// Unpublish stops and forgets the stream for name, if one exists.
func (e *engine) Unpublish(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.streams[name]
	if !ok {
		return
	}
	s.Stop()
	delete(e.streams, name)
}

// StopAll tears down every running stream, used on process shutdown.
func (e *engine) StopAll() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for name, s := range e.streams {
		s.Stop()
		delete(e.streams, name)
	}
}
