package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/pathstore/internal/store/value"
)

// Registry indexes containers by key. It replaces a process-global
// store: the composition root owns a registry explicitly, and tests
// construct isolated ones.
type Registry struct {
	mu         sync.RWMutex
	containers map[string]*Container
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{containers: make(map[string]*Container)}
}

// Create constructs a container and registers it under its key.
// Returns ErrDuplicateKey if the key is already present.
func (r *Registry) Create(key string, initial value.Node) (*Container, error) {
	c, err := NewContainer(key, initial)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.containers[key]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	r.containers[key] = c
	return c, nil
}

// Get returns the container registered under key.
func (r *Registry) Get(key string) (*Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.containers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContainerNotFound, key)
	}
	return c, nil
}

// Has reports whether a container is registered under key.
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.containers[key]
	return ok
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.containers))
	for k := range r.containers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered containers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.containers)
}
