// internal/workers/matching/generate-match-insights/models.go
package generatematchinsights

import "govmatch-workers/internal/models"

type Input struct {
	MatchScoreID    string                 `json:"matchScoreId"`
	OverallScore    int                    `json:"overallScore"`
	DetailedFactors models.DetailedFactors `json:"detailedFactors"`
	CompanyName     string                 `json:"companyName,omitempty"`
	OpportunityTitle string                `json:"opportunityTitle,omitempty"`
}

type Output struct {
	Insights *models.MatchInsights `json:"insights"`
	Degraded bool                  `json:"degraded"`
}
