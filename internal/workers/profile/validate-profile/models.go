// internal/workers/profile/validate-profile/models.go
package validateprofile

import "govmatch-workers/internal/models"

type Input struct {
	Profile models.CompanyProfile `json:"profile"`
}

type Output struct {
	IsValid   bool                   `json:"isValid"`
	Errors    []FieldError           `json:"errors,omitempty"`
	Sanitized *models.CompanyProfile `json:"sanitized,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
