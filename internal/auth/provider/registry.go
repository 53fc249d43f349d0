package provider

import (
	"errors"
	"fmt"
)

// ErrUnknownProvider is returned when a lookup names a provider that
// was never registered.
var ErrUnknownProvider = errors.New("unknown oauth provider")

// Registry holds all configured OAuth providers and allows
// lookup by provider name. It performs no auth logic itself.
type Registry struct {
	providers map[string]OAuthProvider
}

// NewRegistry registers the given OAuth providers by name.
// Provider names must be unique.
func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider)
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the OAuth provider by name or ErrUnknownProvider.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// Ensure verifies a provider name is registered. Run at startup so a
// misconfigured default fails boot instead of the first callback.
func (r *Registry) Ensure(name string) error {
	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("%w: %s is not configured (have %v)", ErrUnknownProvider, name, r.Names())
	}
	return nil
}

// Names lists registered provider names; used for startup logging.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
