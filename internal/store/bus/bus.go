// Package bus delivers state change notifications to path subscribers.
//
// The bus is per-container and synchronous: Emit invokes every matching
// callback on the calling goroutine before returning. Callbacks are
// collected under the lock but invoked outside it, so a callback that
// mutates the owning container re-enters depth-first rather than
// deadlocking or queueing. A callback that unconditionally triggers
// another emit can therefore recurse without bound; the UI binding
// layer is responsible for breaking such cycles.
package bus

import (
	"sync"

	"github.com/dshills/pathstore/internal/store/path"
	"github.com/dshills/pathstore/internal/store/value"
)

// Callback receives the container's state after a change. Structured
// state arrives as an independent copy per invocation; mutating it is
// never observable by the container or by other subscribers.
type Callback func(state value.Node)

// Bus routes emitted paths to registered callbacks.
type Bus struct {
	mu sync.Mutex

	// exact holds callbacks registered under a literal path, in
	// registration order.
	exact map[string][]Callback

	// patterns holds glob registrations in registration order.
	patterns []patternEntry
}

type patternEntry struct {
	pattern   string
	callbacks []Callback
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{exact: make(map[string][]Callback)}
}

// On registers a callback under a path. Registering the same callback
// twice invokes it twice; there is no de-duplication. A path containing
// glob metacharacters ('*' or '?') registers a pattern subscription
// that fires for every emitted path the pattern matches.
func (b *Bus) On(p string, cb Callback) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if path.IsPattern(p) {
		for i := range b.patterns {
			if b.patterns[i].pattern == p {
				b.patterns[i].callbacks = append(b.patterns[i].callbacks, cb)
				return
			}
		}
		b.patterns = append(b.patterns, patternEntry{pattern: p, callbacks: []Callback{cb}})
		return
	}
	b.exact[p] = append(b.exact[p], cb)
}

// RemoveAll unregisters every callback under a path or pattern.
// Removing an unknown path is a no-op.
func (b *Bus) RemoveAll(p string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if path.IsPattern(p) {
		for i := range b.patterns {
			if b.patterns[i].pattern == p {
				b.patterns = append(b.patterns[:i], b.patterns[i+1:]...)
				return
			}
		}
		return
	}
	delete(b.exact, p)
}

// Handlers returns the number of callbacks registered under a path or
// pattern. Intended for tests and leak checks.
func (b *Bus) Handlers(p string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if path.IsPattern(p) {
		for i := range b.patterns {
			if b.patterns[i].pattern == p {
				return len(b.patterns[i].callbacks)
			}
		}
		return 0
	}
	return len(b.exact[p])
}

// Emit synchronously notifies every callback registered under each of
// the given paths. Within one path, exact callbacks fire in
// registration order followed by matching pattern callbacks in
// registration order. No ordering is promised across distinct paths.
func (b *Bus) Emit(paths []string, state value.Node) {
	for _, p := range paths {
		b.mu.Lock()
		callbacks := make([]Callback, 0, len(b.exact[p]))
		callbacks = append(callbacks, b.exact[p]...)
		for _, entry := range b.patterns {
			if path.Match(p, entry.pattern) {
				callbacks = append(callbacks, entry.callbacks...)
			}
		}
		b.mu.Unlock()

		for _, cb := range callbacks {
			cb(payload(state))
		}
	}
}

// payload prepares the state handed to one callback invocation.
func payload(state value.Node) value.Node {
	if state.IsStructure() {
		return state.Clone()
	}
	return state
}
