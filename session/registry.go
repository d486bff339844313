package session

import (
	"sync"
	"time"
)

// Registry holds per-session in-memory state (cart, checkout flow) keyed by
// session id. Entries are created on first use and dropped by Sweep once idle.
type Registry[T any] struct {
	mu      sync.Mutex
	entries map[string]*entry[T]
	newFn   func(sid string) T
	now     func() time.Time
}

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

func NewRegistry[T any](newFn func(sid string) T) *Registry[T] {
	return &Registry[T]{
		entries: make(map[string]*entry[T]),
		newFn:   newFn,
		now:     time.Now,
	}
}

// Get returns the state for sid, creating it if needed.
func (r *Registry[T]) Get(sid string) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sid]
	if !ok {
		e = &entry[T]{value: r.newFn(sid)}
		r.entries[sid] = e
	}
	e.lastSeen = r.now()
	return e.value
}

// Drop forgets the state for sid.
func (r *Registry[T]) Drop(sid string) {
	r.mu.Lock()
	delete(r.entries, sid)
	r.mu.Unlock()
}

// Len reports how many sessions currently hold state.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops entries idle for longer than maxIdle and returns how many were dropped.
func (r *Registry[T]) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	dropped := 0
	for sid, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, sid)
			dropped++
		}
	}
	return dropped
}
