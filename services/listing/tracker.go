package listing

import (
	"context"
	"sync"
)

// Tracker keeps at most one in-flight fetch per key. Starting a new fetch cancels
// the one it supersedes, so a slow stale reply can never overwrite a newer one.
type Tracker struct {
	mu       sync.Mutex
	next     uint64
	inflight map[string]*flight
}

type flight struct {
	gen    uint64
	cancel context.CancelFunc
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[string]*flight)}
}

// Begin registers a fetch for key and returns its context and generation. The
// previous fetch for key, if any, is cancelled.
func (t *Tracker) Begin(parent context.Context, key string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	if prev, ok := t.inflight[key]; ok {
		prev.cancel()
	}
	t.inflight[key] = &flight{gen: t.next, cancel: cancel}
	return ctx, t.next
}

// Done releases the fetch and reports whether gen was still the latest for key.
func (t *Tracker) Done(key string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur, ok := t.inflight[key]
	if !ok || cur.gen != gen {
		return false
	}
	cur.cancel()
	delete(t.inflight, key)
	return true
}

// Len returns the number of keys with a fetch in flight.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}
