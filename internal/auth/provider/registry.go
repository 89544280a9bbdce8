package provider

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoProviders is returned when a registry would be empty, i.e. no
// complete provider credential pair was configured.
var ErrNoProviders = errors.New("no oauth providers configured")

// Registry holds all configured OAuth strategies and allows lookup by
// provider name. It is built once at startup and read-only afterwards.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry registers the given strategies by name.
// Provider names must be unique; at least one strategy is required.
func NewRegistry(list ...Strategy) (*Registry, error) {
	if len(list) == 0 {
		return nil, ErrNoProviders
	}

	m := make(map[string]Strategy)
	for _, s := range list {
		m[s.Name()] = s
	}
	return &Registry{strategies: m}, nil
}

// Get returns the strategy by name or an error if not registered.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown oauth provider: %s", name)
	}
	return s, nil
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
