package contracts

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/minitoolchain/internal/testutil/testlog"
	"gopkg.in/yaml.v3"
)

func sampleResult() Result {
	return NewResult(
		map[string]int{"1": 5, "0": 5},
		map[string]any{
			"shots":              10,
			"run_id":             "run-1",
			"mitigation_applied": false,
			"backend_name":       "sim",
			"calibration_id":     nil,
		},
		map[string]any{"note": "x"},
	)
}

func TestValidateSchemaAcceptsCompleteResult(t *testing.T) {
	testlog.Start(t)
	if err := sampleResult().ValidateSchema(); err != nil {
		t.Fatalf("validate schema: %v", err)
	}
}

func TestValidateSchemaMissingKeys(t *testing.T) {
	testlog.Start(t)
	for _, key := range RequiredMetaKeys {
		res := sampleResult()
		delete(res.Meta, key)
		err := res.ValidateSchema()
		if !errors.Is(err, ErrMissingKey) || !errors.Is(err, ErrSchema) {
			t.Fatalf("missing %q: expected ErrMissingKey, got %v", key, err)
		}
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error should name %q: %v", key, err)
		}
	}
}

func TestValidateSchemaBadCounts(t *testing.T) {
	testlog.Start(t)
	empty := sampleResult()
	empty.Counts = map[string]int{}
	if err := empty.ValidateSchema(); !errors.Is(err, ErrSchema) || errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrSchema for empty counts, got %v", err)
	}

	negative := sampleResult()
	negative.Counts = map[string]int{"0": 3, "1": -1}
	if err := negative.ValidateSchema(); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for negative count, got %v", err)
	}

	zeros := sampleResult()
	zeros.Counts = map[string]int{"0": 0}
	if err := zeros.ValidateSchema(); err != nil {
		t.Fatalf("zero counts are valid: %v", err)
	}
}

func TestNewResultCopiesInputs(t *testing.T) {
	testlog.Start(t)
	counts := map[string]int{"0": 1}
	meta := map[string]any{"run_id": "a"}
	res := NewResult(counts, meta, nil)
	counts["0"] = 99
	meta["run_id"] = "b"
	if res.Counts["0"] != 1 || res.Meta["run_id"] != "a" {
		t.Fatalf("result aliased caller maps: %+v", res)
	}
	if res.Raw == nil || len(res.Raw) != 0 {
		t.Fatalf("expected empty raw, got %+v", res.Raw)
	}
	if res.Total() != 1 {
		t.Fatalf("unexpected total: %d", res.Total())
	}
}

func TestToJSONGolden(t *testing.T) {
	testlog.Start(t)
	want := `{
  "counts": {
    "0": 5,
    "1": 5
  },
  "meta": {
    "backend_name": "sim",
    "calibration_id": null,
    "mitigation_applied": false,
    "run_id": "run-1",
    "shots": 10
  },
  "raw": {
    "note": "x"
  }
}`
	res := sampleResult()
	got, err := res.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected json:\n%s\nwant:\n%s", got, want)
	}
	again, _ := res.ToJSON()
	if again != got {
		t.Fatalf("serialization not stable")
	}
}

func TestToJSONEmptyRaw(t *testing.T) {
	testlog.Start(t)
	res := Result{Counts: map[string]int{"0": 1}, Meta: map[string]any{}}
	got, err := res.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	if !strings.Contains(got, `"raw": {}`) {
		t.Fatalf("expected empty raw object: %s", got)
	}
}

func TestToYAML(t *testing.T) {
	testlog.Start(t)
	got, err := sampleResult().ToYAML()
	if err != nil {
		t.Fatalf("to yaml: %v", err)
	}
	if !strings.HasPrefix(got, "counts:\n") {
		t.Fatalf("expected counts first: %s", got)
	}
	if !strings.Contains(got, "calibration_id: null") {
		t.Fatalf("expected null calibration id: %s", got)
	}
	var decoded struct {
		Counts map[string]int `yaml:"counts"`
	}
	if err := yaml.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if decoded.Counts["0"] != 5 || decoded.Counts["1"] != 5 {
		t.Fatalf("unexpected counts: %+v", decoded.Counts)
	}
}
