package sim

import (
	"github.com/danmuck/minitoolchain/internal/backends"
	"github.com/danmuck/minitoolchain/internal/contracts"
	"github.com/rs/zerolog/log"
)

const Name = "sim"

// Backend splits shots across two outcome labels. It ignores the circuit
// content and stands in for real execution.
type Backend struct {
	clock contracts.Clock
	caps  backends.Capabilities
}

// New is the registry factory for the simulated backend.
func New(deps backends.Deps) backends.Backend {
	return NewBackend(deps.ClockOrSystem())
}

// NewBackend constructs a simulated backend stamping executions with clock.
func NewBackend(clock contracts.Clock) *Backend {
	log.Debug().Msg("backends.sim.NewBackend")
	if clock == nil {
		clock = contracts.SystemClock{}
	}
	return &Backend{
		clock: clock,
		caps: backends.Capabilities{
			Name:         Name,
			MaxWidth:     32,
			SupportedOps: []string{"cx", "h", "measure", "x"},
		},
	}
}

// Capabilities returns the static descriptor.
func (b *Backend) Capabilities() backends.Capabilities {
	caps := b.caps
	caps.SupportedOps = append([]string(nil), b.caps.SupportedOps...)
	return caps
}

// Execute produces floor(shots/2) "0" outcomes and the remainder as "1".
func (b *Backend) Execute(wf contracts.Workflow) (contracts.Result, error) {
	cfg := wf.Config
	shots := cfg.Shots
	log.Debug().Str("run_id", cfg.RunID).Int("shots", shots).Msg("backends.sim.Backend.Execute")

	counts := map[string]int{
		"0": shots / 2,
		"1": shots - shots/2,
	}
	meta := map[string]any{
		contracts.MetaRunID:             cfg.RunID,
		contracts.MetaBackendName:       cfg.BackendName,
		contracts.MetaShots:             shots,
		contracts.MetaMitigationApplied: false,
		"created_at":                    cfg.CreatedAt,
		"executed_at":                   contracts.Timestamp(b.clock.Now()),
		"calibration_id":                cfg.CalibrationValue(),
		"circuit":                       cfg.Circuit,
	}
	raw := map[string]any{"note": "simulated backend raw payload placeholder"}
	return contracts.NewResult(counts, meta, raw), nil
}

var _ backends.Backend = (*Backend)(nil)
var _ backends.Factory = New
