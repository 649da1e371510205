package registry

import (
	"sort"
	"sync"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/gauge"
)

// Registry maps method names to gauge constructors.
// Each widget owns its own registry; there is no package-level instance.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]gauge.Constructor
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		methods: make(map[string]gauge.Constructor),
	}
}

// Register adds a method. Names are unique for the registry's lifetime.
func (r *Registry) Register(name string, ctor gauge.Constructor) error {
	if name == "" {
		return &domain.ConfigError{Field: "name", Reason: "method name must be a non-empty string"}
	}
	if ctor == nil {
		return &domain.ConfigError{Method: name, Field: "constructor", Reason: "must be a function"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.methods[name]; exists {
		return &domain.ConfigError{Method: name, Reason: "name already in use", Err: domain.ErrDuplicateMethod}
	}
	r.methods[name] = ctor
	return nil
}

// Resolve returns the constructor registered under name.
func (r *Registry) Resolve(name string) (gauge.Constructor, error) {
	r.mu.RLock()
	ctor, ok := r.methods[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &domain.ConfigError{Method: name, Field: "method", Reason: "not registered", Err: domain.ErrUnknownMethod}
	}
	return ctor, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.methods[name]
	return ok
}

// Names returns the registered method names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
