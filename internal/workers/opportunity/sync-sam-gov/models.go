// internal/workers/opportunity/sync-sam-gov/models.go
package syncsamgov

type Input struct {
	PostedFrom string   `json:"postedFrom"`
	PostedTo   string   `json:"postedTo"`
	NAICSCodes []string `json:"naicsCodes,omitempty"`
	MaxPages   int      `json:"maxPages,omitempty"`
}

type Output struct {
	Fetched int `json:"fetched"`
	Upserted int `json:"upserted"`
	Indexed int `json:"indexed"`
	Pages   int `json:"pages"`
}

// samGovResponse is the subset of the Get Opportunities API response the
// sync consumes.
type samGovResponse struct {
	TotalRecords int                `json:"totalRecords"`
	Records      []samGovOpportunity `json:"opportunitiesData"`
}

type samGovOpportunity struct {
	NoticeID         string `json:"noticeId"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Department       string `json:"fullParentPathName"`
	SubTier          string `json:"subTier"`
	NAICSCode        string `json:"naicsCode"`
	ClassificationCode string `json:"classificationCode"`
	TypeOfSetAside   string `json:"typeOfSetAside"`
	PostedDate       string `json:"postedDate"`
	ResponseDeadline string `json:"responseDeadLine"`
	Active           string `json:"active"`
	PlaceOfPerformance struct {
		State struct {
			Code string `json:"code"`
		} `json:"state"`
	} `json:"placeOfPerformance"`
	Award struct {
		Amount string `json:"amount"`
	} `json:"award"`
}
