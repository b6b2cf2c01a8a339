// internal/models/profile.go
package models

import "time"

// CompanyProfile is the contractor-side input to matching. Profiles are
// owned by the profile service; workers read them from Postgres or cache.
type CompanyProfile struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	CompanyName      string    `json:"companyName"`
	UEI              string    `json:"uei,omitempty"`
	CageCode         string    `json:"cageCode,omitempty"`
	NAICSCodes       []string  `json:"naicsCodes"`
	CoreCompetencies []string  `json:"coreCompetencies,omitempty"`
	Certifications   []string  `json:"certifications"`
	AgencyHistory    []string  `json:"agencyHistory,omitempty"`
	ContractHistory  []PastContract `json:"contractHistory,omitempty"`
	ServiceStates    []string  `json:"serviceStates,omitempty"`
	GovernmentLevels []string  `json:"governmentLevels,omitempty"`
	SamRegistered    bool      `json:"samRegistered"`
	SamStatus        string    `json:"samStatus,omitempty"`
	BusinessSize     string    `json:"businessSize,omitempty"`
	WebsiteURL       string    `json:"websiteUrl,omitempty"`
	EmployeeCount    int       `json:"employeeCount,omitempty"`
	AnnualRevenue    float64   `json:"annualRevenue,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PastContract is one award in a profile's contract history.
type PastContract struct {
	Agency      string  `json:"agency"`
	NAICSCode   string  `json:"naicsCode,omitempty"`
	Value       float64 `json:"value,omitempty"`
	Description string  `json:"description,omitempty"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
}
