// internal/matching/weights.go
package matching

import (
	"fmt"

	"govmatch-workers/internal/common/errors"
)

// Provenance tags stamped onto every score this package produces.
const (
	AlgorithmVersion = "v2.1.0"
	ScoringMethod    = "weighted_rules"
)

// NeutralScore is the baseline used whenever an input needed by a rule is
// missing. Missing data lowers confidence, never the score itself.
const NeutralScore = 50.0

// Weights is the fixed scoring policy: the share each category contributes
// to the composite score. The four values must sum to exactly 100.
type Weights struct {
	PastPerformance     int
	TechnicalCapability int
	StrategicFit        int
	Credibility         int
}

// DefaultWeights returns the standard evaluation weighting: past performance
// and technical capability dominate, strategic fit and credibility refine.
func DefaultWeights() Weights {
	return Weights{
		PastPerformance:     35,
		TechnicalCapability: 35,
		StrategicFit:        15,
		Credibility:         15,
	}
}

// Validate rejects any weight table that does not sum to 100. This is a
// configuration-time invariant: callers must fail at startup, not at
// scoring time.
func (w Weights) Validate() error {
	sum := w.PastPerformance + w.TechnicalCapability + w.StrategicFit + w.Credibility
	if sum != 100 {
		return errors.NewWeightsInvalidError(
			fmt.Sprintf("factor weights sum to %d, expected 100 (pastPerformance=%d technicalCapability=%d strategicFit=%d credibility=%d)",
				sum, w.PastPerformance, w.TechnicalCapability, w.StrategicFit, w.Credibility))
	}
	if w.PastPerformance < 0 || w.TechnicalCapability < 0 || w.StrategicFit < 0 || w.Credibility < 0 {
		return errors.NewWeightsInvalidError("factor weights must be non-negative")
	}
	return nil
}
