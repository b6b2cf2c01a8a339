// internal/workers/opportunity/enrich-award-history/models.go
package enrichawardhistory

import "govmatch-workers/internal/models"

type Input struct {
	ProfileID string `json:"profileId"`
	UEI       string `json:"uei"`
}

type Output struct {
	UEI         string                `json:"uei"`
	TotalAwards int                   `json:"totalAwards"`
	TotalValue  float64               `json:"totalValue"`
	Agencies    []string              `json:"agencies"`
	Awards      []models.PastContract `json:"awards"`
	FromCache   bool                  `json:"fromCache"`
}

// awardSearchResponse is the subset of the USAspending spending_by_award
// response the enrichment consumes.
type awardSearchResponse struct {
	Results []awardRecord `json:"results"`
}

type awardRecord struct {
	AwardID       string  `json:"Award ID"`
	Amount        float64 `json:"Award Amount"`
	AwardingAgency string `json:"Awarding Agency"`
	NAICSCode     string  `json:"NAICS Code"`
	Description   string  `json:"Description"`
	EndDate       string  `json:"End Date"`
}
