// Package diag carries advisory warnings: observable, non-fatal, and never
// altering control flow or output.
package diag

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Warning codes emitted by the run pipeline.
const (
	CodeCalibrationMissing     = "calibration.missing"
	CodeMitigationUncalibrated = "mitigation.uncalibrated"
)

// Warning is a single advisory diagnostic.
type Warning struct {
	Code    string `json:"code"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Sink receives advisory warnings.
type Sink interface {
	Warn(w Warning)
}

// Discard drops every warning.
type Discard struct{}

func (Discard) Warn(Warning) {}

// Collector keeps warnings in emission order and forwards each to a logger.
type Collector struct {
	logger   *zerolog.Logger
	warnings []Warning
}

// NewCollector forwards to the global logger.
func NewCollector() *Collector {
	return &Collector{logger: &log.Logger}
}

// NewCollectorWithLogger forwards to logger; nil disables forwarding.
func NewCollectorWithLogger(logger *zerolog.Logger) *Collector {
	return &Collector{logger: logger}
}

func (c *Collector) Warn(w Warning) {
	c.warnings = append(c.warnings, w)
	if c.logger != nil {
		c.logger.Warn().Str("code", w.Code).Str("source", w.Source).Msg(w.Message)
	}
}

// Warnings returns a copy of the collected warnings.
func (c *Collector) Warnings() []Warning {
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Has reports whether a warning with code was collected.
func (c *Collector) Has(code string) bool {
	for _, w := range c.warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

var _ Sink = (*Collector)(nil)
var _ Sink = Discard{}
