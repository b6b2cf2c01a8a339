// internal/models/opportunity.go
package models

import "time"

// Opportunity is a government contracting opportunity, normalized from
// SAM.gov notices.
type Opportunity struct {
	ID                 string     `json:"id"`
	NoticeID           string     `json:"noticeId"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Agency             string     `json:"agency"`
	SubAgency          string     `json:"subAgency,omitempty"`
	NAICSCodes         []string   `json:"naicsCodes"`
	PSCCode            string     `json:"pscCode,omitempty"`
	SetAsideCode       string     `json:"setAsideCode,omitempty"`
	PlaceOfPerformance string     `json:"placeOfPerformance,omitempty"`
	GovernmentLevel    string     `json:"governmentLevel,omitempty"`
	EstimatedValue     float64    `json:"estimatedValue,omitempty"`
	PostedDate         *time.Time `json:"postedDate,omitempty"`
	ResponseDeadline   *time.Time `json:"responseDeadline,omitempty"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
