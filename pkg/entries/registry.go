package entries

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps resource type names to their collections.
type Registry struct {
	mu          sync.RWMutex
	collections map[string]Collection
}

// NewRegistry allocates an empty registry.
func NewRegistry() *Registry {
	return &Registry{collections: make(map[string]Collection)}
}

// Register adds a collection under its name. Names are case-insensitive.
func (r *Registry) Register(c Collection) error {
	name := normalize(c.Name())
	if name == "" {
		return fmt.Errorf("registry: collection name required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.collections[name]; exists {
		return fmt.Errorf("registry: collection %s already registered", name)
	}
	r.collections[name] = c
	return nil
}

// Get fetches a collection by name.
func (r *Registry) Get(name string) (Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[normalize(name)]
	return c, ok
}

// MustGet fetches a collection by name and panics if it is missing.
func (r *Registry) MustGet(name string) Collection {
	c, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("registry: collection %s not registered", name))
	}
	return c
}

// Names returns the sorted collection names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
