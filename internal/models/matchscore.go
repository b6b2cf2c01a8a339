// internal/models/matchscore.go
package models

import "time"

// Match outcome values
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeNoBid     = "no_bid"
	OutcomeWithdrawn = "withdrawn"
)

// FactorScore is one scored category with its fixed weight and an
// explanation of the dominant contributors.
type FactorScore struct {
	Score           float64 `json:"score"`
	Weight          float64 `json:"weight"`
	Details         string  `json:"details"`
	FieldsResolved  int     `json:"fieldsResolved"`
	FieldsAttempted int     `json:"fieldsAttempted"`
}

// DetailedFactors holds exactly the four scoring categories. A struct
// rather than a map so a missing category is a compile error.
type DetailedFactors struct {
	PastPerformance     FactorScore `json:"pastPerformance"`
	TechnicalCapability FactorScore `json:"technicalCapability"`
	StrategicFit        FactorScore `json:"strategicFit"`
	Credibility         FactorScore `json:"credibility"`
}

// MatchInsights holds optional AI-generated explanation text. Never an
// input to the numeric score.
type MatchInsights struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
}

// MatchScore is one persisted score for a profile/opportunity pair.
type MatchScore struct {
	ID               string          `json:"id"`
	ProfileID        string          `json:"profileId"`
	OpportunityID    string          `json:"opportunityId"`
	OverallScore     int             `json:"overallScore"`
	Confidence       float64         `json:"confidence"`
	DetailedFactors  DetailedFactors `json:"detailedFactors"`
	Eligibility      EligibilityResult `json:"eligibility"`
	Insights         *MatchInsights  `json:"insights,omitempty"`
	AlgorithmVersion string          `json:"algorithmVersion"`
	ScoringMethod    string          `json:"scoringMethod"`
	ActualOutcome    string          `json:"actualOutcome,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// EligibilityResult is the output of set-aside eligibility resolution.
type EligibilityResult struct {
	IsMatch   bool    `json:"isMatch"`
	MatchType string  `json:"matchType"` // exact, partial, none
	Score     float64 `json:"score"`
	SetAside  string  `json:"setAside,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// OutcomeImpact records the calibration bookkeeping produced when an
// actual outcome is compared against a prior prediction.
type OutcomeImpact struct {
	MatchScoreID     string  `json:"matchScoreId"`
	Outcome          string  `json:"outcome"`
	PredictedWin     bool    `json:"predictedWin"`
	PredictionCorrect bool   `json:"predictionCorrect"`
	AccuracyDelta    float64 `json:"accuracyDelta"`
	ConfidenceDelta  float64 `json:"confidenceDelta"`
	RecordedAt       time.Time `json:"recordedAt"`
}
