package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// Registry manages the available programs.
type Registry struct {
	mu       sync.RWMutex
	programs map[string]*Program
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		programs: make(map[string]*Program),
	}
}

// Default returns a registry holding the built-in programs.
func Default() *Registry {
	r := NewRegistry()
	r.Register(BinaryIncrement())
	r.Register(BinaryInvert())
	r.Register(BusyBeaver2())
	return r
}

// Register adds a program to the registry.
// If a program with the same name exists, it is overwritten.
func (r *Registry) Register(p *Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[p.Name] = p
}

// Get looks up a program by name.
func (r *Registry) Get(name string) (*Program, error) {
	r.mu.RLock()
	p, ok := r.programs[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return p, nil
}

// List returns all programs sorted by name.
func (r *Registry) List() []*Program {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Program, 0, len(r.programs))
	for _, p := range r.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
