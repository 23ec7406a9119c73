// Package profile maintains named execution profiles.
//
// A profile is a reusable bundle of execution options registered under a
// name. Statements reference profiles by name at execution time; the session
// layers the profile's attributes between its own defaults and the per-call
// overrides. Referencing a name that was never registered fails the
// execution with an UnknownProfileError.
//
// Profiles can be registered programmatically or loaded from a YAML file:
//
//	profiles:
//	  analytics:
//	    consistency: one
//	    page_size: 50000
//	    timeout: 120s
//	  critical-writes:
//	    consistency: each_quorum
//	    idempotent: false
package profile

import (
	"sort"
	"sync"

	"github.com/arloliu/strata/types"
)

// Registry is a named collection of execution profiles, safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*types.Profile
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*types.Profile)}
}

// Register adds or replaces a profile under the given name.
//
// Parameters:
//   - name: Profile name statements reference at execution time
//   - p: The profile attributes
//
// Returns:
//   - error: InvalidArgumentError if the name is empty or the profile nil
func (r *Registry) Register(name string, p *types.Profile) error {
	if name == "" {
		return &types.InvalidArgumentError{Detail: "profile name must not be empty"}
	}
	if p == nil {
		return &types.InvalidArgumentError{Detail: "profile must not be nil"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[name] = p

	return nil
}

// Lookup returns the profile registered under the given name.
//
// Returns:
//   - *types.Profile: The registered profile
//   - error: UnknownProfileError if no profile carries the name
func (r *Registry) Lookup(name string) (*types.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return nil, &types.UnknownProfileError{Name: name}
	}

	return p, nil
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.profiles)
}
