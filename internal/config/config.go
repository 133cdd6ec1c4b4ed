package config

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/minitoolchain/internal/contracts"
	"github.com/danmuck/minitoolchain/internal/pipeline"
)

// Output formats for a rendered result.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

// RunProfile is the resolved input for one `run` invocation.
type RunProfile struct {
	Options pipeline.Options
	Format  string
}

// DefaultRunProfile returns the built-in defaults.
func DefaultRunProfile() RunProfile {
	return RunProfile{Options: pipeline.DefaultOptions(), Format: FormatJSON}
}

type fileProfile struct {
	Backend       string            `toml:"backend"`
	Shots         toml.Primitive    `toml:"shots"`
	Circuit       string            `toml:"circuit"`
	Mitigation    string            `toml:"mitigation"`
	CalibrationID string            `toml:"calibration_id"`
	Format        string            `toml:"format"`
	Tags          map[string]string `toml:"tags"`
}

// LoadRunProfile overlays keys defined in the TOML file at path onto base.
// Keys absent from the file leave base untouched; unknown keys are an error.
func LoadRunProfile(path string, base RunProfile) (RunProfile, error) {
	var raw fileProfile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return RunProfile{}, fmt.Errorf("load run profile (%s): %w", path, err)
	}

	cfg := base
	cfg.Options.Tags = maps.Clone(base.Options.Tags)

	if meta.IsDefined("backend") {
		cfg.Options.Backend = strings.TrimSpace(raw.Backend)
	}
	if meta.IsDefined("shots") {
		var shots int
		if err := meta.PrimitiveDecode(raw.Shots, &shots); err != nil {
			return RunProfile{}, fmt.Errorf("%w: shots must be an int, got %s", contracts.ErrType, meta.Type("shots"))
		}
		cfg.Options.Shots = shots
	}
	if meta.IsDefined("circuit") {
		cfg.Options.Circuit = raw.Circuit
	}
	if meta.IsDefined("mitigation") {
		cfg.Options.Mitigation = strings.TrimSpace(raw.Mitigation)
	}
	if meta.IsDefined("calibration_id") {
		cfg.Options.CalibrationID = contracts.StringPtr(strings.TrimSpace(raw.CalibrationID))
	}
	if meta.IsDefined("format") {
		format, err := ParseFormat(raw.Format)
		if err != nil {
			return RunProfile{}, err
		}
		cfg.Format = format
	}
	if meta.IsDefined("tags") {
		if cfg.Options.Tags == nil {
			cfg.Options.Tags = map[string]string{}
		}
		maps.Copy(cfg.Options.Tags, raw.Tags)
	}

	// Primitive values count as undecoded until PrimitiveDecode runs, so this
	// check comes last.
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return RunProfile{}, fmt.Errorf("load run profile (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// ParseFormat normalizes an output format name.
func ParseFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q (supported: json, yaml)", ErrUnknownFormat, raw)
	}
}

// ParseTag splits a key=value tag.
func ParseTag(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("%w: tag must be key=value, got %q", contracts.ErrValidation, raw)
	}
	return key, strings.TrimSpace(value), nil
}
