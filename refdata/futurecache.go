package refdata

import (
	"fmt"
	"sync"
)

// future is a cache slot that is either in flight (done still open) or
// resolved (done closed, val/err final).
type future[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// FutureCache memoizes keyed lookups with request de-duplication: for any
// key, at most one fetch is outstanding at a time for the lifetime of the
// cache. Concurrent callers for the same key await the existing future
// instead of issuing a second fetch, and the resolved value or failure
// replaces the future permanently. Failures are not retried; callers
// wanting a fresh attempt must Clear first.
type FutureCache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*future[V]
}

// NewFutureCache returns an empty cache.
func NewFutureCache[K comparable, V any]() *FutureCache[K, V] {
	return &FutureCache[K, V]{entries: map[K]*future[V]{}}
}

// Get returns the cached value for key, running fetch exactly once per key
// no matter how many goroutines ask concurrently. The fetch runs on the
// first caller's goroutine.
func (c *FutureCache[K, V]) Get(key K, fetch func() (V, error)) (V, error) {
	c.mu.Lock()
	if c.entries == nil {
		c.entries = map[K]*future[V]{}
	}
	if f, ok := c.entries[key]; ok {
		c.mu.Unlock()
		<-f.done
		return f.val, f.err
	}
	f := &future[V]{done: make(chan struct{})}
	c.entries[key] = f
	c.mu.Unlock()

	// Resolve the future even when fetch panics, so waiters never block
	// on a key that will not complete: they see an error while the panic
	// continues on the fetching goroutine.
	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("refdata: fetch panicked: %v", r)
			close(f.done)
			panic(r)
		}
		close(f.done)
	}()
	f.val, f.err = fetch()
	return f.val, f.err
}

// Clear drops every entry, including in-flight ones; callers already
// awaiting a future still receive its result.
func (c *FutureCache[K, V]) Clear() {
	c.mu.Lock()
	c.entries = map[K]*future[V]{}
	c.mu.Unlock()
}

// Len reports the number of cached (or in-flight) keys.
func (c *FutureCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
