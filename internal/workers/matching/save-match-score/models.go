// internal/workers/matching/save-match-score/models.go
package savematchscore

import "govmatch-workers/internal/models"

type Input struct {
	ProfileID        string                   `json:"profileId"`
	OpportunityID    string                   `json:"opportunityId"`
	OverallScore     int                      `json:"overallScore"`
	Confidence       float64                  `json:"confidence"`
	DetailedFactors  models.DetailedFactors   `json:"detailedFactors"`
	Eligibility      models.EligibilityResult `json:"eligibility"`
	AlgorithmVersion string                   `json:"algorithmVersion"`
	ScoringMethod    string                   `json:"scoringMethod"`
}

type Output struct {
	MatchScoreID string `json:"matchScoreId"`
	Saved        bool   `json:"saved"`
}
