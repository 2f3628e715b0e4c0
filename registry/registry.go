package registry

import "sync"

// Registry tracks, per application id, the set of output stream names
// currently announced by a live transcode engine. It exists so two
// engines under the same application can never both claim the same
// output stream name (spec.md §3 invariant, §9 REDESIGN FLAG: "must be
// an explicitly-owned object with a mutex, not ambient global state").
//
// The process owns exactly one Registry and passes it into every
// transcode.Stream constructor — nothing in this module reaches for a
// package-level global to find it.
type Registry struct {
	mu      sync.Mutex
	streams map[uint32]map[string]struct{}
}

func New() *Registry {
	return &Registry{streams: make(map[uint32]map[string]struct{})}
}

// Claim registers name under appId and reports whether it succeeded. It
// fails (returns false) if that (appId, name) pair is already claimed —
// the caller is expected to drop the duplicate and keep running
// (spec.md §7 Collision).
func (r *Registry) Claim(appId uint32, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.streams[appId]
	if !ok {
		set = make(map[string]struct{})
		r.streams[appId] = set
	}

	if _, exists := set[name]; exists {
		return false
	}

	set[name] = struct{}{}
	return true
}

// Release removes name from appId's claimed set. Idempotent.
func (r *Registry) Release(appId uint32, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.streams[appId]; ok {
		delete(set, name)
	}
}

// ReleaseAll drops each of names from appId's claimed set under a single
// lock — used on engine shutdown instead of calling Release per stream.
// Names claimed under appId that are not listed stay claimed.
func (r *Registry) ReleaseAll(appId uint32, names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.streams[appId]
	if !ok {
		return
	}
	for _, name := range names {
		delete(set, name)
	}
}

// Has reports whether (appId, name) is currently claimed.
func (r *Registry) Has(appId uint32, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.streams[appId]
	if !ok {
		return false
	}
	_, exists := set[name]
	return exists
}
