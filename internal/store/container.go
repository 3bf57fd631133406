package store

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/dshills/pathstore/internal/store/bus"
	"github.com/dshills/pathstore/internal/store/merge"
	"github.com/dshills/pathstore/internal/store/path"
	"github.com/dshills/pathstore/internal/store/value"
)

// UpdateFunc produces a partial update from the current state. The
// state argument is an independent copy; mutating it has no effect on
// the container.
type UpdateFunc func(current value.Node) (value.Node, error)

// Container owns one state value and its subscriber registry.
//
// The default snapshot taken at construction is never mutated and
// never aliased with the live state. The derived listener surface is
// computed once from the initial shape and is not recomputed when
// later merges grow arrays.
type Container struct {
	key string

	mu    sync.RWMutex
	state value.Node

	// def is the deep construction-time snapshot used by Reset.
	def value.Node

	// listeners is the full derived path surface, or [key] when the
	// state is a primitive or has no addressable leaves.
	listeners []string

	bus *bus.Bus
}

// NewContainer creates a container for the given key and initial
// state. The key must be non-empty; uniqueness across containers is
// the Registry's concern.
func NewContainer(key string, initial value.Node) (*Container, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if !initial.IsValid() {
		return nil, fmt.Errorf("container %q: %w", key, value.ErrInvalidNode)
	}

	listeners := path.Derive(initial)
	if len(listeners) == 0 {
		listeners = []string{key}
	}

	return &Container{
		key:       key,
		state:     initial.Clone(),
		def:       initial.Clone(),
		listeners: listeners,
		bus:       bus.New(),
	}, nil
}

// Key returns the container's process-unique identifier.
func (c *Container) Key() string { return c.key }

// Get returns a deep, independent copy of the current state.
func (c *Container) Get() value.Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// Default returns a deep copy of the construction-time snapshot.
func (c *Container) Default() value.Node {
	return c.def.Clone()
}

// Listeners returns the container's full derived path surface.
func (c *Container) Listeners() []string {
	out := make([]string, len(c.listeners))
	copy(out, c.listeners)
	return out
}

// GetPath returns a copy of the value at a dot-separated path, or
// false when the path does not address anything in the current state.
func (c *Container) GetPath(p string) (value.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cur := c.state
	for _, seg := range path.Split(p) {
		switch cur.Kind() {
		case value.KindObject:
			child, ok := cur.Field(seg)
			if !ok {
				return value.Node{}, false
			}
			cur = child
		case value.KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return value.Node{}, false
			}
			child, ok := cur.Index(idx)
			if !ok {
				return value.Node{}, false
			}
			cur = child
		default:
			return value.Node{}, false
		}
	}
	return cur.Clone(), true
}

// Set applies a partial update and notifies subscribers.
//
// For structured state the partial is merged key-by-key (see the merge
// package); a primitive container replaces its value wholesale. The
// fired path set is the explicit listeners argument when non-empty,
// otherwise the paths derived from the partial itself, falling back to
// the container's full surface for primitive state.
//
// Subscribers run synchronously on the calling goroutine before Set
// returns; a subscriber that calls Set again interleaves depth-first.
func (c *Container) Set(partial value.Node, listeners ...string) error {
	c.mu.Lock()
	var next value.Node
	if c.state.IsStructure() {
		merged, err := merge.Apply(c.state, partial)
		if err != nil {
			c.mu.Unlock()
			return err
		}
		next = merged
	} else {
		next = partial.Clone()
	}
	c.state = next

	fire := listeners
	if len(fire) == 0 {
		if next.IsStructure() {
			fire = path.Derive(partial)
		} else {
			fire = c.listeners
		}
	}
	snapshot := c.state
	c.mu.Unlock()

	c.bus.Emit(fire, snapshot)
	return nil
}

// SetFunc invokes an updater with a copy of the current state to
// obtain the partial, then applies it exactly like Set.
func (c *Container) SetFunc(fn UpdateFunc, listeners ...string) error {
	partial, err := fn(c.Get())
	if err != nil {
		return fmt.Errorf("container %q: updater: %w", c.key, err)
	}
	return c.Set(partial, listeners...)
}

// Reset restores the construction-time default and notifies every
// subscriber unconditionally: the fired set is the container key plus
// the full derived path surface, regardless of what individual
// subscribers declared interest in.
func (c *Container) Reset() {
	c.mu.Lock()
	c.state = c.def.Clone()
	fire := make([]string, 0, len(c.listeners)+1)
	fire = append(fire, c.key)
	for _, p := range c.listeners {
		if p != c.key {
			fire = append(fire, p)
		}
	}
	snapshot := c.state
	c.mu.Unlock()

	c.bus.Emit(fire, snapshot)
}

// AddListeners registers a callback under each of the given paths.
// Paths containing glob metacharacters register pattern subscriptions.
func (c *Container) AddListeners(cb bus.Callback, paths []string) {
	for _, p := range paths {
		c.bus.On(p, cb)
	}
}

// Unsubscribe removes every callback registered under each of the
// given paths. The UI binding layer must call this symmetrically with
// AddListeners or callbacks leak for the container's lifetime.
func (c *Container) Unsubscribe(paths []string) {
	for _, p := range paths {
		c.bus.RemoveAll(p)
	}
}

// SubscribeSelector registers a callback for the paths a selector
// declares interest in and returns those paths so the caller can later
// Unsubscribe symmetrically. The selector is a structure isomorphic to
// the state with true leaves marking subscription.
func (c *Container) SubscribeSelector(cb bus.Callback, selector value.Node) ([]string, error) {
	c.mu.RLock()
	structured := c.state.IsStructure()
	c.mu.RUnlock()
	if !structured {
		return nil, fmt.Errorf("container %q: %w", c.key, ErrUnsupportedOperation)
	}

	paths, err := path.FromSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("container %q: %w", c.key, err)
	}
	c.AddListeners(cb, paths)
	return paths, nil
}

// Handlers returns the number of callbacks registered under a path.
// Intended for tests and leak diagnostics.
func (c *Container) Handlers(p string) int {
	return c.bus.Handlers(p)
}
