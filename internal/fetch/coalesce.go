// Package fetch provides keyed request coalescing for list reloads.
// Concurrent reloads with an identical effective query key collapse
// onto the single in-flight request; a reload with a different key runs
// independently. Nothing is ever cancelled: a superseded request still
// resolves and its result is still delivered to its callers.
package fetch

import "sync"

type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Group de-duplicates function calls by key.
type Group[V any] struct {
	mu       sync.Mutex
	inflight map[string]*call[V]
}

// NewGroup creates an empty coalescing group.
func NewGroup[V any]() *Group[V] {
	return &Group[V]{inflight: make(map[string]*call[V])}
}

// Do executes fn unless a call with the same key is already in flight,
// in which case it waits for that call and shares its result. The
// second return reports whether the result was shared with an earlier
// caller.
func (g *Group[V]) Do(key string, fn func() (V, error)) (V, bool, error) {
	g.mu.Lock()
	if c, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, true, c.err
	}
	c := &call[V]{done: make(chan struct{})}
	g.inflight[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
	close(c.done)

	return c.val, false, c.err
}

// Pending reports whether a call for the key is currently in flight.
func (g *Group[V]) Pending(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.inflight[key]
	return ok
}
