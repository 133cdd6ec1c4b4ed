// Package pipeline runs one configuration end to end: validate, build the
// workflow, dispatch to a backend, optionally mitigate, and check the result
// schema after every step. Every error is fatal to the run.
package pipeline

import (
	"fmt"
	"maps"

	"github.com/danmuck/minitoolchain/internal/backends"
	"github.com/danmuck/minitoolchain/internal/backends/sim"
	"github.com/danmuck/minitoolchain/internal/contracts"
	"github.com/danmuck/minitoolchain/internal/diag"
	"github.com/danmuck/minitoolchain/internal/mitigation"
	"github.com/danmuck/minitoolchain/internal/mitigation/toy"
	"github.com/rs/zerolog/log"
)

const workflowNote = "placeholder workflow meta"

// Options is the user intent for a single run.
type Options struct {
	Backend       string
	Shots         int
	Circuit       string
	Mitigation    string
	CalibrationID *string
	Tags          map[string]string
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{Shots: 1000, Mitigation: mitigation.None}
}

// Outcome is everything a run produced.
type Outcome struct {
	Config   contracts.Config
	Workflow contracts.Workflow
	Raw      contracts.Result // backend output before mitigation
	Result   contracts.Result
	Warnings []diag.Warning
}

// Pipeline holds the registries and traceability sources for runs.
type Pipeline struct {
	backends   *backends.Registry
	mitigators *mitigation.Registry
	clock      contracts.Clock
	ids        contracts.IDSource
}

// New wires a pipeline. Nil clock or ids fall back to system sources.
func New(b *backends.Registry, m *mitigation.Registry, clock contracts.Clock, ids contracts.IDSource) *Pipeline {
	if clock == nil {
		clock = contracts.SystemClock{}
	}
	if ids == nil {
		ids = contracts.UUIDSource{}
	}
	return &Pipeline{backends: b, mitigators: m, clock: clock, ids: ids}
}

// Default returns a pipeline with the built-in backends and mitigators.
func Default() *Pipeline {
	return New(DefaultBackends(), DefaultMitigators(), nil, nil)
}

// DefaultBackends registers every built-in backend.
func DefaultBackends() *backends.Registry {
	r := backends.NewRegistry()
	mustRegister(r.Register(sim.Name, sim.New))
	return r
}

// DefaultMitigators registers every built-in mitigator.
func DefaultMitigators() *mitigation.Registry {
	r := mitigation.NewRegistry()
	mustRegister(r.Register(toy.Name, toy.New))
	return r
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// Backends exposes the backend registry.
func (p *Pipeline) Backends() *backends.Registry {
	return p.backends
}

// Mitigators exposes the mitigator registry.
func (p *Pipeline) Mitigators() *mitigation.Registry {
	return p.mitigators
}

// Run executes opts. Dispatch is resolved before the backend executes, so an
// unknown backend or mitigation name fails without running anything.
func (p *Pipeline) Run(opts Options) (Outcome, error) {
	warnings := diag.NewCollector()
	out, err := p.run(opts, warnings)
	out.Warnings = warnings.Warnings()
	return out, err
}

func (p *Pipeline) run(opts Options, warnings diag.Sink) (Outcome, error) {
	cfg := contracts.NewConfig(contracts.ConfigParams{
		BackendName:   opts.Backend,
		Shots:         opts.Shots,
		Mitigation:    opts.Mitigation,
		Circuit:       opts.Circuit,
		CalibrationID: opts.CalibrationID,
		Tags:          opts.Tags,
	}, p.clock, p.ids)
	out := Outcome{Config: cfg}
	if err := cfg.Validate(); err != nil {
		return out, err
	}
	log.Debug().Str("run_id", cfg.RunID).Str("backend", cfg.BackendName).Int("shots", cfg.Shots).Msg("pipeline.Run")

	if cfg.Mitigation != mitigation.None && !cfg.HasCalibration() {
		warnings.Warn(diag.Warning{
			Code:    diag.CodeCalibrationMissing,
			Source:  "pipeline",
			Message: "Mitigation enabled without calibration_id. Consider providing --calibration-id.",
		})
	}

	meta := map[string]any{"note": workflowNote}
	if len(cfg.Tags) > 0 {
		meta["tags"] = maps.Clone(cfg.Tags)
	}
	out.Workflow = contracts.NewWorkflow(cfg.Circuit, meta, cfg)

	backend, err := p.backends.New(cfg.BackendName, backends.Deps{Clock: p.clock})
	if err != nil {
		return out, err
	}
	mitigator, mitigate, err := p.mitigators.New(cfg.Mitigation, mitigation.Deps{Warnings: warnings})
	if err != nil {
		return out, err
	}

	res, err := backend.Execute(out.Workflow)
	if err != nil {
		return out, fmt.Errorf("backend %s: %w", cfg.BackendName, err)
	}
	if err := res.ValidateSchema(); err != nil {
		return out, fmt.Errorf("backend %s: %w", cfg.BackendName, err)
	}
	out.Raw = res
	out.Result = res

	if mitigate {
		res, err = mitigator.Apply(res, cfg)
		if err != nil {
			return out, fmt.Errorf("mitigation %s: %w", mitigator.Name(), err)
		}
		if err := res.ValidateSchema(); err != nil {
			return out, fmt.Errorf("mitigation %s: %w", mitigator.Name(), err)
		}
		out.Result = res
	}

	return out, nil
}
