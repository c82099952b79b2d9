package params

import "sync"

// Recorder receives failure reports from set operations. Every public
// operation resets the recorder on entry and records any failure before
// returning, so the most recent report always describes the last
// operation. A recorder is an injected collaborator, never process-wide
// state; paramkeeper itself only writes to it.
type Recorder interface {
	Record(err error)
	Reset()
}

// LastError is the default Recorder. It keeps the most recent report
// for later retrieval by the caller.
type LastError struct {
	mu   sync.Mutex
	last error
}

// Record stores err as the most recent report.
func (r *LastError) Record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = err
}

// Reset clears any stale report.
func (r *LastError) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = nil
}

// Last returns the most recent report, or nil if none since Reset.
func (r *LastError) Last() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
