// internal/matching/eligibility_test.go
package matching

import (
	"testing"

	"govmatch-workers/pkg/catalog"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Eligibility Resolution Tests
// ==========================

func TestResolveEligibility_ExactMatch(t *testing.T) {
	cat := catalog.Default()

	result := ResolveEligibility(cat, []string{"8a"}, "8A")

	assert.True(t, result.IsMatch)
	assert.Equal(t, MatchTypeExact, result.MatchType)
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, "8A", result.SetAside)
}

func TestResolveEligibility_HierarchicalFallback(t *testing.T) {
	cat := catalog.Default()

	// An 8(a) holder is not directly related to SBA but qualifies for the
	// general small-business set-aside through the specialized program.
	result := ResolveEligibility(cat, []string{"8a"}, "SBA")

	assert.True(t, result.IsMatch)
	assert.Equal(t, MatchTypePartial, result.MatchType)
	assert.Equal(t, 75.0, result.Score)
}

func TestResolveEligibility_GenericSmallBusinessIsExactForSBA(t *testing.T) {
	cat := catalog.Default()

	result := ResolveEligibility(cat, []string{"small-business"}, "SBA")

	assert.True(t, result.IsMatch)
	assert.Equal(t, MatchTypeExact, result.MatchType)
	assert.Equal(t, 100.0, result.Score)
}

func TestResolveEligibility_NoRestriction(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name string
		code string
	}{
		{"empty code", ""},
		{"unknown code", "FULLOPEN"},
		{"whitespace", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveEligibility(cat, []string{"8a"}, tt.code)

			assert.True(t, result.IsMatch)
			assert.Equal(t, MatchTypeNone, result.MatchType)
			assert.Equal(t, 50.0, result.Score)
		})
	}
}

func TestResolveEligibility_NotEligible(t *testing.T) {
	cat := catalog.Default()

	result := ResolveEligibility(cat, []string{"wosb"}, "SDVOSBC")

	assert.False(t, result.IsMatch)
	assert.Equal(t, MatchTypeNone, result.MatchType)
	assert.Equal(t, 0.0, result.Score)
}

func TestResolveEligibility_NoCertificationsAgainstSetAside(t *testing.T) {
	cat := catalog.Default()

	result := ResolveEligibility(cat, nil, "SBA")

	assert.False(t, result.IsMatch)
	assert.Equal(t, 0.0, result.Score)
}

func TestResolveEligibility_CaseInsensitiveCode(t *testing.T) {
	cat := catalog.Default()

	result := ResolveEligibility(cat, []string{"hubzone"}, "hzc")

	assert.True(t, result.IsMatch)
	assert.Equal(t, MatchTypeExact, result.MatchType)
}

func TestEligibleSetAsides_MostSpecificFirst(t *testing.T) {
	cat := catalog.Default()

	codes := EligibleSetAsides(cat, []string{"8a"})

	assert.Equal(t, []string{"8AN", "8A"}, codes)
}
