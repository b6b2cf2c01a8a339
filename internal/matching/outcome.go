// internal/matching/outcome.go
package matching

import (
	"time"

	"govmatch-workers/internal/common/errors"
	"govmatch-workers/internal/models"
)

// OutcomePolicy controls the calibration bookkeeping applied when a real bid
// outcome is recorded against a prediction. The defaults are placeholder
// heuristics intended to steer future manual weight tuning, not an online
// learning rule, so every magnitude is configurable.
type OutcomePolicy struct {
	// WinThreshold is the overall score at or above which the system is
	// considered to have predicted a win.
	WinThreshold float64
	// AccuracyStep is the signed adjustment applied to the aggregate
	// prediction-accuracy counter per recorded outcome.
	AccuracyStep float64
	// ConfidenceStepSmall and ConfidenceStepLarge bound the signed
	// adjustment applied to the confidence-calibration counter; the large
	// step is used when the prediction was made with high confidence.
	ConfidenceStepSmall float64
	ConfidenceStepLarge float64
}

// DefaultOutcomePolicy mirrors the standard configuration defaults.
func DefaultOutcomePolicy() OutcomePolicy {
	return OutcomePolicy{
		WinThreshold:        70,
		AccuracyStep:        0.01,
		ConfidenceStepSmall: 0.05,
		ConfidenceStepLarge: 0.2,
	}
}

// highConfidence is the level above which a wrong prediction is treated as
// overconfidence and a right one as strong calibration.
const highConfidence = 0.8

// ValidOutcome reports whether s is one of the recordable bid outcomes.
func ValidOutcome(s string) bool {
	switch s {
	case models.OutcomeWon, models.OutcomeLost, models.OutcomeNoBid, models.OutcomeWithdrawn:
		return true
	}
	return false
}

// Evaluate compares a stored prediction against the actual bid outcome and
// produces the calibration deltas. It never modifies the stored score: the
// caller persists the impact alongside it.
//
// Correctness is binary: score >= WinThreshold means a predicted win, and
// only an actual award ("won") counts as a win. A no-bid or withdrawal is
// treated as a non-win for calibration purposes.
func (p OutcomePolicy) Evaluate(score *models.MatchScore, outcome string, now time.Time) (*models.OutcomeImpact, error) {
	if score == nil {
		return nil, errors.NewBusinessRuleError("cannot record outcome", "match score is required")
	}
	if !ValidOutcome(outcome) {
		return nil, errors.NewBusinessRuleError("invalid outcome", "outcome must be one of won, lost, no_bid, withdrawn, got "+outcome)
	}

	predictedWin := float64(score.OverallScore) >= p.WinThreshold
	actualWin := outcome == models.OutcomeWon
	correct := predictedWin == actualWin

	accuracyDelta := p.AccuracyStep
	if !correct {
		accuracyDelta = -p.AccuracyStep
	}

	confidenceDelta := p.ConfidenceStepSmall
	if score.Confidence >= highConfidence {
		confidenceDelta = p.ConfidenceStepLarge
	}
	if !correct {
		confidenceDelta = -confidenceDelta
	}

	return &models.OutcomeImpact{
		MatchScoreID:      score.ID,
		Outcome:           outcome,
		PredictedWin:      predictedWin,
		PredictionCorrect: correct,
		AccuracyDelta:     accuracyDelta,
		ConfidenceDelta:   confidenceDelta,
		RecordedAt:        now.UTC(),
	}, nil
}
