// internal/workers/matching/resolve-eligibility/models.go
package resolveeligibility

type Input struct {
	ProfileID      string   `json:"profileId"`
	SetAsideCode   string   `json:"setAsideCode"`
	Certifications []string `json:"certifications,omitempty"`
}

type Output struct {
	IsMatch           bool     `json:"isMatch"`
	MatchType         string   `json:"matchType"`
	EligibilityScore  float64  `json:"eligibilityScore"`
	SetAside          string   `json:"setAside,omitempty"`
	Reason            string   `json:"reason,omitempty"`
	EligibleSetAsides []string `json:"eligibleSetAsides"`
}
