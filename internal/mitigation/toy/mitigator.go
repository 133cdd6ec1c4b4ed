package toy

import (
	"fmt"
	"maps"
	"sort"

	"github.com/danmuck/minitoolchain/internal/contracts"
	"github.com/danmuck/minitoolchain/internal/diag"
	"github.com/danmuck/minitoolchain/internal/mitigation"
	"github.com/rs/zerolog/log"
)

const Name = "toy"

const assumptionsNote = "toy mitigator; demonstrates post-processing contracts only"

// Mitigator moves about 1% of the total count from the largest bucket to the
// smallest. It is not physically meaningful.
type Mitigator struct {
	warnings diag.Sink
}

// New is the registry factory for the toy mitigator.
func New(deps mitigation.Deps) mitigation.Mitigator {
	return NewMitigator(deps.SinkOrDiscard())
}

func NewMitigator(warnings diag.Sink) *Mitigator {
	log.Debug().Msg("mitigation.toy.NewMitigator")
	if warnings == nil {
		warnings = diag.Discard{}
	}
	return &Mitigator{warnings: warnings}
}

func (m *Mitigator) Name() string { return Name }

// Apply returns a rebalanced copy of res. The total count is preserved and
// no bucket goes negative.
func (m *Mitigator) Apply(res contracts.Result, cfg contracts.Config) (contracts.Result, error) {
	if !cfg.HasCalibration() {
		m.warnings.Warn(diag.Warning{
			Code:    diag.CodeMitigationUncalibrated,
			Source:  Name,
			Message: "Mitigation requested but calibration_id is missing. Proceeding anyway; results may be unreliable.",
		})
	}

	counts := maps.Clone(res.Counts)
	total := 0
	for _, n := range counts {
		total += n
	}
	if total <= 0 {
		return contracts.Result{}, fmt.Errorf("%w: total=%d", mitigation.ErrEmptyCounts, total)
	}

	maxK, minK := selectBuckets(counts)
	delta := max(1, total/100)
	delta = min(delta, counts[maxK])

	counts[maxK] -= delta
	counts[minK] += delta
	log.Debug().
		Str("run_id", cfg.RunID).
		Str("from", maxK).
		Str("to", minK).
		Int("delta", delta).
		Msg("mitigation.toy.Mitigator.Apply")

	meta := maps.Clone(res.Meta)
	if meta == nil {
		meta = map[string]any{}
	}
	meta[contracts.MetaMitigationApplied] = true
	meta["mitigation"] = Name
	meta["mitigation_assumptions"] = map[string]any{
		"note":                assumptionsNote,
		"calibration_id_used": cfg.CalibrationValue(),
	}
	return contracts.NewResult(counts, meta, res.Raw), nil
}

// selectBuckets scans labels in ascending order. The max bucket is the
// smallest label holding the largest count; the min bucket is the largest
// label holding the smallest count, so ties between two labels still move
// mass from one to the other.
func selectBuckets(counts map[string]int) (maxK, minK string) {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	maxK, minK = labels[0], labels[0]
	for _, label := range labels[1:] {
		if counts[label] > counts[maxK] {
			maxK = label
		}
		if counts[label] <= counts[minK] {
			minK = label
		}
	}
	return maxK, minK
}

var _ mitigation.Mitigator = (*Mitigator)(nil)
var _ mitigation.Factory = New
