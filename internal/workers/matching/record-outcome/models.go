// internal/workers/matching/record-outcome/models.go
package recordoutcome

import "govmatch-workers/internal/models"

type Input struct {
	MatchScoreID    string   `json:"matchScoreId"`
	Outcome         string   `json:"outcome"`
	ActualValue     *float64 `json:"actualValue,omitempty"`
	CompetitorCount *int     `json:"competitorCount,omitempty"`
}

type Output struct {
	Impact   *models.OutcomeImpact `json:"impact"`
	Recorded bool                  `json:"recorded"`
}
