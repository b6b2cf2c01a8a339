// pkg/catalog/catalog_test.go
package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Default Catalog Tests
// ==========================

func TestDefault_ContainsStandardPrograms(t *testing.T) {
	c := Default()

	for _, code := range []string{"8A", "8AN", "SBA", "SBP", "HZC", "HZS", "SDVOSBC", "SDVOSBS", "WOSB", "WOSBSS", "EDWOSB", "EDWOSBSS"} {
		_, ok := c.Get(code)
		assert.True(t, ok, "expected builtin catalog to contain %s", code)
	}
}

func TestDefault_GetNormalizesCode(t *testing.T) {
	c := Default()

	def, ok := c.Get(" 8a ")
	require.True(t, ok)
	assert.Equal(t, "8A", def.Code)
}

func TestDefault_UnknownCode(t *testing.T) {
	c := Default()

	_, ok := c.Get("NOTACODE")
	assert.False(t, ok)
}

func TestDefault_SoleSourceBeforeCompetitive(t *testing.T) {
	c := Default()

	all := c.All()
	require.NotEmpty(t, all)

	// Priorities ascend, and the 8(a) sole-source variant ranks first.
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Priority, all[i].Priority)
	}
	assert.Equal(t, "8AN", all[0].Code)
}

// ==========================
// Eligibility Lookup Tests
// ==========================

func TestEligibleCodes(t *testing.T) {
	c := Default()

	tests := []struct {
		name           string
		certifications []string
		expected       []string
	}{
		{
			name:           "8a holder eligible for both 8a variants",
			certifications: []string{"8a"},
			expected:       []string{"8AN", "8A"},
		},
		{
			name:           "generic small business only",
			certifications: []string{"small-business"},
			expected:       []string{"SBP", "SBA"},
		},
		{
			name:           "case insensitive certification ids",
			certifications: []string{"HUBZone"},
			expected:       []string{"HZS", "HZC"},
		},
		{
			name:           "multiple certifications ordered by priority",
			certifications: []string{"wosb", "8a"},
			expected:       []string{"8AN", "8A", "WOSBSS", "WOSB"},
		},
		{
			name:           "no certifications",
			certifications: nil,
			expected:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.EligibleCodes(tt.certifications))
		})
	}
}

func TestIsGeneralSmallBusiness(t *testing.T) {
	assert.True(t, IsGeneralSmallBusiness("SBA"))
	assert.True(t, IsGeneralSmallBusiness("sbp"))
	assert.False(t, IsGeneralSmallBusiness("8A"))
	assert.False(t, IsGeneralSmallBusiness(""))
}

func TestIsSpecialized(t *testing.T) {
	assert.True(t, IsSpecialized("8A"))
	assert.True(t, IsSpecialized("sdvosbc"))
	assert.False(t, IsSpecialized("SBA"))
}

// ==========================
// File Loading Tests
// ==========================

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setasides.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeCatalogFile(t, `{
		"version": "2024.1",
		"setAsides": [
			{
				"code": "8A",
				"name": "8(a) Set-Aside",
				"type": "competitive",
				"relatedCertifications": ["8a"],
				"priority": 1
			}
		],
		"naicsToPsc": {"541511": "D302"}
	}`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2024.1", c.Version())

	def, ok := c.Get("8A")
	require.True(t, ok)
	assert.Equal(t, []string{"8a"}, def.RelatedCertifications)

	psc, ok := c.DefaultPSC("541511")
	require.True(t, ok)
	assert.Equal(t, "D302", psc)
}

func TestLoad_RejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing version",
			content: `{"setAsides": [{"code": "8A", "name": "x", "type": "competitive", "relatedCertifications": [], "priority": 1}]}`,
		},
		{
			name:    "empty set-aside list",
			content: `{"version": "1", "setAsides": []}`,
		},
		{
			name:    "invalid type enum",
			content: `{"version": "1", "setAsides": [{"code": "8A", "name": "x", "type": "negotiated", "relatedCertifications": [], "priority": 1}]}`,
		},
		{
			name:    "lowercase code",
			content: `{"version": "1", "setAsides": [{"code": "8a", "name": "x", "type": "competitive", "relatedCertifications": [], "priority": 1}]}`,
		},
		{
			name:    "invalid naics key",
			content: `{"version": "1", "setAsides": [{"code": "8A", "name": "x", "type": "competitive", "relatedCertifications": [], "priority": 1}], "naicsToPsc": {"54": "D302"}}`,
		},
		{
			name:    "not json",
			content: `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_DuplicateCode(t *testing.T) {
	path := writeCatalogFile(t, `{
		"version": "1",
		"setAsides": [
			{"code": "8A", "name": "a", "type": "competitive", "relatedCertifications": ["8a"], "priority": 1},
			{"code": "8A", "name": "b", "type": "sole_source", "relatedCertifications": ["8a"], "priority": 2}
		]
	}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate set-aside code")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
