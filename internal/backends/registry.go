package backends

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/minitoolchain/internal/registry"
	"github.com/rs/zerolog/log"
)

var ErrUnsupportedBackend = errors.New("unsupported backend")

// Registry maps backend names to factories.
type Registry struct {
	items *registry.Registry[Factory]
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{items: registry.New[Factory]("backend")}
}

// Register adds a backend factory under name.
func (r *Registry) Register(name string, factory Factory) error {
	return r.items.Register(name, factory)
}

// Names returns registered backend names in ascending order.
func (r *Registry) Names() []string {
	return r.items.Names()
}

// New builds the backend registered under name.
func (r *Registry) New(name string, deps Deps) (Backend, error) {
	factory, ok := r.items.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w %q. Try --backend %s", ErrUnsupportedBackend, name, strings.Join(r.Names(), "|"))
	}
	log.Debug().Str("backend", name).Msg("backends.Registry.New")
	return factory(deps), nil
}

// Capabilities returns descriptors for every registered backend, ordered by
// name.
func (r *Registry) Capabilities(deps Deps) []Capabilities {
	names := r.Names()
	out := make([]Capabilities, 0, len(names))
	for _, name := range names {
		factory, _ := r.items.Resolve(name)
		out = append(out, factory(deps).Capabilities())
	}
	return out
}
