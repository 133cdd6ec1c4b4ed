package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata keys every Result must carry.
const (
	MetaRunID             = "run_id"
	MetaBackendName       = "backend_name"
	MetaShots             = "shots"
	MetaMitigationApplied = "mitigation_applied"
)

// RequiredMetaKeys lists the keys checked by ValidateSchema, in check order.
var RequiredMetaKeys = []string{MetaRunID, MetaBackendName, MetaShots, MetaMitigationApplied}

// Result is the stable output schema shared by backends and mitigators.
type Result struct {
	Counts map[string]int `json:"counts" yaml:"counts"`
	Meta   map[string]any `json:"meta" yaml:"meta"`
	Raw    map[string]any `json:"raw" yaml:"raw"`
}

// NewResult copies its inputs so the returned value shares no maps with the
// caller.
func NewResult(counts map[string]int, meta map[string]any, raw map[string]any) Result {
	c := map[string]int{}
	maps.Copy(c, counts)
	m := map[string]any{}
	maps.Copy(m, meta)
	r := map[string]any{}
	maps.Copy(r, raw)
	return Result{Counts: c, Meta: m, Raw: r}
}

// ValidateSchema checks required metadata keys and count integrity.
func (r Result) ValidateSchema() error {
	for _, key := range RequiredMetaKeys {
		if _, ok := r.Meta[key]; !ok {
			return fmt.Errorf("%w: result meta %q", ErrMissingKey, key)
		}
	}
	if len(r.Counts) == 0 {
		return fmt.Errorf("%w: counts must be a non-empty mapping", ErrSchema)
	}
	for label, n := range r.Counts {
		if n < 0 {
			return fmt.Errorf("%w: count for %q must be >= 0, got %d", ErrSchema, label, n)
		}
	}
	return nil
}

// Total sums every count.
func (r Result) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// ToJSON renders the result with sorted keys and two-space indentation.
func (r Result) ToJSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.normalized()); err != nil {
		return "", fmt.Errorf("encode result json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ToYAML renders the result as YAML with sorted keys and two-space
// indentation.
func (r Result) ToYAML() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r.normalized()); err != nil {
		return "", fmt.Errorf("encode result yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode result yaml: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// normalized keeps nil maps rendering as empty objects.
func (r Result) normalized() Result {
	out := r
	if out.Counts == nil {
		out.Counts = map[string]int{}
	}
	if out.Meta == nil {
		out.Meta = map[string]any{}
	}
	if out.Raw == nil {
		out.Raw = map[string]any{}
	}
	return out
}
