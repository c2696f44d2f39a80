package leagues

import (
	"sort"
	"strings"
	"sync"
)

// Registry is a concurrency-safe league lookup that can be swapped at runtime.
type Registry struct {
	mu      sync.RWMutex
	leagues map[string]League
}

// NewRegistry seeds a registry; nil seeds with Builtins.
func NewRegistry(seed map[string]League) *Registry {
	if seed == nil {
		seed = Builtins()
	}
	r := &Registry{}
	r.Replace(seed)
	return r
}

// Lookup finds a league by case-insensitive name.
func (r *Registry) Lookup(name string) (League, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.leagues[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// Replace swaps the league table.
func (r *Registry) Replace(leagues map[string]League) {
	next := make(map[string]League, len(leagues))
	for name, l := range leagues {
		key := strings.ToLower(name)
		if l.Name == "" {
			l.Name = key
		}
		next[key] = l
	}
	r.mu.Lock()
	r.leagues = next
	r.mu.Unlock()
}

// Names returns the registered league names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.leagues))
	for name := range r.leagues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
