// internal/models/certification.go
package models

import "time"

// Certification status values
const (
	CertStatusActive    = "active"
	CertStatusPending   = "pending"
	CertStatusExpired   = "expired"
	CertStatusSuspended = "suspended"
	CertStatusRevoked   = "revoked"
)

// Verification status values
const (
	VerificationPending     = "pending"
	VerificationVerified    = "verified"
	VerificationRejected    = "rejected"
	VerificationNotRequired = "not_required"
)

// UserCertification is a certification a user holds, as tracked per profile.
type UserCertification struct {
	ID                 string     `json:"id"`
	ProfileID          string     `json:"profileId"`
	CertificationID    string     `json:"certificationId"`
	ObtainedDate       *time.Time `json:"obtainedDate,omitempty"`
	ExpirationDate     *time.Time `json:"expirationDate,omitempty"`
	Status             string     `json:"status"`
	VerificationStatus string     `json:"verificationStatus"`
	IsActivated        bool       `json:"isActivated"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ContributesToMatching reports whether this certification counts toward
// set-aside eligibility: active, opted in, and not past expiration.
func (c UserCertification) ContributesToMatching(now time.Time) bool {
	if c.Status != CertStatusActive || !c.IsActivated {
		return false
	}
	if c.ExpirationDate != nil && !c.ExpirationDate.After(now) {
		return false
	}
	return true
}
