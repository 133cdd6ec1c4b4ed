package contracts

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Config captures user intent at the CLI/API boundary. Treat it as a value:
// it is never mutated after NewConfig returns.
type Config struct {
	BackendName string
	Shots       int
	Mitigation  string
	Circuit     string

	RunID     string
	CreatedAt string

	CalibrationID *string
	Tags          map[string]string
}

// ConfigParams are the user-supplied fields of a Config.
type ConfigParams struct {
	BackendName   string
	Shots         int
	Mitigation    string
	Circuit       string
	CalibrationID *string
	Tags          map[string]string
}

// NewConfig stamps params with a fresh run id and creation time. Nil sources
// fall back to the wall clock and random UUIDs.
func NewConfig(params ConfigParams, clock Clock, ids IDSource) Config {
	if clock == nil {
		clock = SystemClock{}
	}
	if ids == nil {
		ids = UUIDSource{}
	}
	tags := map[string]string{}
	maps.Copy(tags, params.Tags)

	var calibrationID *string
	if params.CalibrationID != nil {
		v := *params.CalibrationID
		calibrationID = &v
	}

	return Config{
		BackendName:   params.BackendName,
		Shots:         params.Shots,
		Mitigation:    params.Mitigation,
		Circuit:       params.Circuit,
		RunID:         ids.NewID(),
		CreatedAt:     Timestamp(clock.Now()),
		CalibrationID: calibrationID,
		Tags:          tags,
	}
}

// Validate reports the first field that breaks the configuration contract.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BackendName) == "" {
		return fmt.Errorf("%w: backend_name must be a non-empty string", ErrValidation)
	}
	if c.Shots <= 0 {
		return fmt.Errorf("%w: shots must be a positive integer, got %d", ErrValidation, c.Shots)
	}
	if strings.TrimSpace(c.Mitigation) == "" {
		return fmt.Errorf("%w: mitigation must be a non-empty string (e.g. \"none\" or a mitigator name)", ErrValidation)
	}
	if strings.TrimSpace(c.Circuit) == "" {
		return fmt.Errorf("%w: circuit must be a non-empty string", ErrValidation)
	}
	return nil
}

// HasCalibration reports whether a calibration context was supplied.
func (c Config) HasCalibration() bool {
	return c.CalibrationID != nil
}

// CalibrationValue returns the calibration id for metadata, nil when absent.
func (c Config) CalibrationValue() any {
	if c.CalibrationID == nil {
		return nil
	}
	return *c.CalibrationID
}

// ParseShots converts raw text into a shot count. Non-integer input is a
// type error; range checks are left to Validate.
func ParseShots(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: shots must be an int, got %q", ErrType, raw)
	}
	return n, nil
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}
