// internal/workers/profile/validate-profile/handler_test.go
package validateprofile

import (
	"context"
	"testing"
	"time"

	"govmatch-workers/internal/common/logger"
	"govmatch-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, logger.NewTestLogger(t))
}

func createValidProfile() models.CompanyProfile {
	return models.CompanyProfile{
		ID:            "profile-1",
		CompanyName:   "  Acme Federal Systems  ",
		UEI:           "abc123def456",
		CageCode:      "1ab2c",
		NAICSCodes:    []string{"541511", "541511", "541512"},
		ServiceStates: []string{"va", "MD"},
		BusinessSize:  "Small",
		WebsiteURL:    "https://acmefederal.example.com",
		Certifications: []string{"8A", "HubZone"},
	}
}

func fieldsWithErrors(output *Output) []string {
	fields := make([]string, 0, len(output.Errors))
	for _, e := range output.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_ValidProfileSanitized(t *testing.T) {
	h := newHandler(t)

	output, err := h.Execute(context.Background(), &Input{Profile: createValidProfile()})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Empty(t, output.Errors)
	require.NotNil(t, output.Sanitized)

	s := output.Sanitized
	assert.Equal(t, "Acme Federal Systems", s.CompanyName)
	assert.Equal(t, "ABC123DEF456", s.UEI)
	assert.Equal(t, "1AB2C", s.CageCode)
	assert.Equal(t, []string{"541511", "541512"}, s.NAICSCodes)
	assert.Equal(t, []string{"VA", "MD"}, s.ServiceStates)
	assert.Equal(t, "small", s.BusinessSize)
	assert.Equal(t, []string{"8a", "hubzone"}, s.Certifications)
}

func TestExecute_CollectsFieldErrors(t *testing.T) {
	h := newHandler(t)

	profile := models.CompanyProfile{
		CompanyName:   "",
		UEI:           "short",
		CageCode:      "toolong",
		NAICSCodes:    []string{"54151"},
		ServiceStates: []string{"ZZ"},
		BusinessSize:  "tiny",
		WebsiteURL:    "not-a-url",
	}

	output, err := h.Execute(context.Background(), &Input{Profile: profile})

	require.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Nil(t, output.Sanitized)

	fields := fieldsWithErrors(output)
	assert.Contains(t, fields, "companyName")
	assert.Contains(t, fields, "uei")
	assert.Contains(t, fields, "cageCode")
	assert.Contains(t, fields, "naicsCodes")
	assert.Contains(t, fields, "serviceStates")
	assert.Contains(t, fields, "businessSize")
	assert.Contains(t, fields, "websiteUrl")
}

func TestExecute_NAICSRequired(t *testing.T) {
	h := newHandler(t)

	profile := createValidProfile()
	profile.NAICSCodes = nil

	output, err := h.Execute(context.Background(), &Input{Profile: profile})

	require.NoError(t, err)
	assert.False(t, output.IsValid)
	assert.Contains(t, fieldsWithErrors(output), "naicsCodes")
}

func TestExecute_OptionalFieldsMayBeEmpty(t *testing.T) {
	h := newHandler(t)

	profile := models.CompanyProfile{
		CompanyName: "Minimal LLC",
		NAICSCodes:  []string{"541511"},
	}

	output, err := h.Execute(context.Background(), &Input{Profile: profile})

	require.NoError(t, err)
	assert.True(t, output.IsValid)
}

func TestExecute_WebsiteSchemeEnforced(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"https", "https://example.com", true},
		{"http", "http://example.com", true},
		{"ftp", "ftp://example.com", false},
		{"relative", "/about", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createValidProfile()
			profile.WebsiteURL = tt.url

			output, err := h.Execute(context.Background(), &Input{Profile: profile})

			require.NoError(t, err)
			assert.Equal(t, tt.valid, output.IsValid)
		})
	}
}
