// Package mitigation owns the post-processing step applied to backend
// results.
package mitigation

import (
	"errors"

	"github.com/danmuck/minitoolchain/internal/contracts"
	"github.com/danmuck/minitoolchain/internal/diag"
)

// None is the reserved name meaning no mitigation step runs.
const None = "none"

var (
	ErrUnsupportedMitigation = errors.New("unsupported mitigation")
	ErrEmptyCounts           = errors.New("cannot mitigate empty counts")
)

// Mitigator adjusts counts and returns a new Result. Implementations must
// keep the schema valid and the count total unchanged, and must not mutate
// their input.
type Mitigator interface {
	Name() string
	Apply(res contracts.Result, cfg contracts.Config) (contracts.Result, error)
}

// Deps are the side-effecting capabilities a mitigator may use.
type Deps struct {
	Warnings diag.Sink
}

// SinkOrDiscard returns d.Warnings, or a sink that drops warnings when unset.
func (d Deps) SinkOrDiscard() diag.Sink {
	if d.Warnings == nil {
		return diag.Discard{}
	}
	return d.Warnings
}

// Factory constructs a mitigator from its dependencies.
type Factory func(deps Deps) Mitigator
