// internal/workers/profile/update-certifications/models.go
package updatecertifications

type Input struct {
	ProfileID string               `json:"profileId"`
	Changes   []CertificationChange `json:"changes"`
}

type CertificationChange struct {
	CertificationID string  `json:"certificationId"`
	Status          string  `json:"status"`
	IsActivated     *bool   `json:"isActivated,omitempty"`
	ExpirationDate  *string `json:"expirationDate,omitempty"`
}

type Output struct {
	Updated           int  `json:"updated"`
	CachesInvalidated bool `json:"cachesInvalidated"`
}
