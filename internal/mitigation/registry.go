package mitigation

import (
	"fmt"
	"strings"

	"github.com/danmuck/minitoolchain/internal/registry"
	"github.com/rs/zerolog/log"
)

// Registry maps mitigator names to factories. The name "none" is reserved.
type Registry struct {
	items *registry.Registry[Factory]
}

func NewRegistry() *Registry {
	return &Registry{items: registry.New[Factory]("mitigator")}
}

func (r *Registry) Register(name string, factory Factory) error {
	if name == None {
		return fmt.Errorf("%w: mitigator %q is reserved", registry.ErrInvalidName, name)
	}
	return r.items.Register(name, factory)
}

// Names returns "none" followed by registered names in ascending order.
func (r *Registry) Names() []string {
	return append([]string{None}, r.items.Names()...)
}

// New builds the mitigator registered under name. It reports ok=false for
// "none".
func (r *Registry) New(name string, deps Deps) (Mitigator, bool, error) {
	if name == None {
		return nil, false, nil
	}
	factory, found := r.items.Resolve(name)
	if !found {
		return nil, false, fmt.Errorf("%w %q. Try --mitigation %s", ErrUnsupportedMitigation, name, strings.Join(r.Names(), "|"))
	}
	log.Debug().Str("mitigation", name).Msg("mitigation.Registry.New")
	return factory(deps), true, nil
}
