// Package registry holds the named generator instances of one built graph.
package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/aretw0/tendril/pkg/generator"
)

// Registry is an ordered map from instance name to generator.
// A registry is filled by the builder and never changed once published;
// the lock only guards readers that race with a private build.
type Registry struct {
	mu    sync.RWMutex
	names []string
	gens  map[string]generator.Generator
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		gens: make(map[string]generator.Generator),
	}
}

// Add registers g under name. Names are unique within a registry.
func (r *Registry) Add(name string, g generator.Generator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.gens[name]; ok {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
	}
	r.gens[name] = g
	r.names = append(r.names, name)
	return nil
}

// Get looks a generator up by name.
func (r *Registry) Get(name string) (generator.Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.gens[name]
	return g, ok
}

// Names returns the instance names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Len returns the number of registered generators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Each calls fn for every generator in registration order, stopping at the
// first error.
func (r *Registry) Each(fn func(name string, g generator.Generator) error) error {
	for _, name := range r.Names() {
		g, _ := r.Get(name)
		if err := fn(name, g); err != nil {
			return err
		}
	}
	return nil
}

// Edges recovers the wiring from the ports' subscriber lists, in registration
// order of the source generator and declaration order of its ports.
// Duplicate wirings show up as duplicate edges.
func (r *Registry) Edges() []domain.Edge {
	var edges []domain.Edge
	_ = r.Each(func(name string, g generator.Generator) error {
		for _, p := range g.Ports() {
			for _, sub := range p.Subscribers() {
				edges = append(edges, domain.Edge{
					From: domain.Endpoint{Generator: name, Port: p.Name()},
					To:   domain.Endpoint{Generator: sub.Owner(), Port: sub.Name()},
				})
			}
		}
		return nil
	})
	return edges
}
