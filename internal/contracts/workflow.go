package contracts

import "maps"

// Workflow is the backend-agnostic job handed to a backend. It does not
// validate Config; callers do that before building one.
type Workflow struct {
	CircuitSpec any
	Meta        map[string]any
	Config      Config
}

func NewWorkflow(circuitSpec any, meta map[string]any, cfg Config) Workflow {
	m := map[string]any{}
	maps.Copy(m, meta)
	return Workflow{CircuitSpec: circuitSpec, Meta: m, Config: cfg}
}
