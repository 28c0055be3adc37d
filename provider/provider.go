package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Provider is implemented by the service's pluggable backends, the
// transcription engine and the text generation model.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory builds a provider from the generic config map the loader
// extracts from its section of the config file.
type Factory[T Provider] func(cfg map[string]any) (T, error)

// Registry maps backend names to factories. Each backend kind
// (transcription, llm) holds its own typed registry and the configured
// name selects which factory runs at startup.
type Registry[T Provider] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// NewRegistry creates an empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
	}
}

// RegisterFactory registers a named factory. A later registration under
// the same name replaces the earlier one.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Create builds the named backend. Unknown names report the registered
// alternatives so a config typo is obvious from the error alone.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("provider %q not registered (have: %s)",
			name, strings.Join(r.List(), ", "))
	}
	return factory(cfg)
}

// List returns the registered factory names, sorted.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
