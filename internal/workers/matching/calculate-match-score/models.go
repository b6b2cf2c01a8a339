// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "govmatch-workers/internal/models"

type Input struct {
	ProfileID     string                 `json:"profileId"`
	OpportunityID string                 `json:"opportunityId"`
	Profile       *models.CompanyProfile `json:"profile,omitempty"`
	Opportunity   *models.Opportunity    `json:"opportunity,omitempty"`
}

type Output struct {
	OverallScore     int                      `json:"overallScore"`
	Confidence       float64                  `json:"confidence"`
	DetailedFactors  models.DetailedFactors   `json:"detailedFactors"`
	Eligibility      models.EligibilityResult `json:"eligibility"`
	AlgorithmVersion string                   `json:"algorithmVersion"`
	ScoringMethod    string                   `json:"scoringMethod"`
}
