package backends

import (
	"slices"

	"github.com/danmuck/minitoolchain/internal/contracts"
)

// Capabilities is the static descriptor a backend reports about itself.
type Capabilities struct {
	Name         string   `json:"name"`
	MaxWidth     int      `json:"max_width"`
	SupportedOps []string `json:"supported_ops"`
	Notes        string   `json:"notes,omitempty"`
}

// Supports reports whether op is in the supported operation set.
func (c Capabilities) Supports(op string) bool {
	return slices.Contains(c.SupportedOps, op)
}

// Backend executes workflows. Implementations must return results that pass
// contracts.Result.ValidateSchema.
type Backend interface {
	Capabilities() Capabilities
	Execute(wf contracts.Workflow) (contracts.Result, error)
}

// Deps are the side-effecting capabilities a backend may use.
type Deps struct {
	Clock contracts.Clock
}

// ClockOrSystem returns d.Clock, or the wall clock when unset.
func (d Deps) ClockOrSystem() contracts.Clock {
	if d.Clock == nil {
		return contracts.SystemClock{}
	}
	return d.Clock
}

// Factory constructs a backend from its dependencies.
type Factory func(deps Deps) Backend
