// internal/workers/opportunity/search-opportunities/queries/builders_test.go
package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func buildAndDecode(t *testing.T, oq OpportunityQuery) map[string]interface{} {
	req, err := BuildQuery(nil, oq)
	require.NoError(t, err)

	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func boolQuery(t *testing.T, body map[string]interface{}) map[string]interface{} {
	query, ok := body["query"].(map[string]interface{})
	require.True(t, ok)
	bq, ok := query["bool"].(map[string]interface{})
	require.True(t, ok)
	return bq
}

// ==========================
// Query Builder Tests
// ==========================

func TestBuildQuery_RequiresIndex(t *testing.T) {
	_, err := BuildQuery(nil, OpportunityQuery{QueryType: "opportunity_search"})
	assert.ErrorIs(t, err, ErrMissingIndex)
}

func TestBuildQuery_RejectsUnknownQueryType(t *testing.T) {
	_, err := BuildQuery(nil, OpportunityQuery{Index: "opportunities", QueryType: "everything"})
	assert.ErrorIs(t, err, ErrUnknownQueryType)
}

func TestBuildQuery_KeywordSearch(t *testing.T) {
	body := buildAndDecode(t, OpportunityQuery{
		Index:     "opportunities",
		QueryType: "opportunity_search",
		Filters:   map[string]interface{}{"keywords": "software development"},
	})

	bq := boolQuery(t, body)
	must := bq["must"].([]interface{})
	require.Len(t, must, 1)
	mm := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "software development", mm["query"])
}

func TestBuildQuery_FiltersApplied(t *testing.T) {
	body := buildAndDecode(t, OpportunityQuery{
		Index:     "opportunities",
		QueryType: "opportunity_search",
		Filters: map[string]interface{}{
			"naicsCodes":      []interface{}{"541511", "541512"},
			"setAsideCodes":   []interface{}{"SBA"},
			"agency":          "DOD",
			"governmentLevel": "federal",
			"valueRange":      map[string]interface{}{"min": float64(100000), "max": float64(5000000)},
			"deadlineAfter":   "2025-01-01",
		},
	})

	bq := boolQuery(t, body)
	filters := bq["filter"].([]interface{})
	// NAICS, set-aside, agency, level, value range, deadline, plus the
	// default active-status filter.
	assert.Len(t, filters, 7)
}

func TestBuildQuery_EmptyFiltersMatchAll(t *testing.T) {
	body := buildAndDecode(t, OpportunityQuery{
		Index:     "opportunities",
		QueryType: "opportunity_search",
		Filters:   map[string]interface{}{},
	})

	bq := boolQuery(t, body)
	must := bq["must"].([]interface{})
	require.Len(t, must, 1)
	_, hasMatchAll := must[0].(map[string]interface{})["match_all"]
	assert.True(t, hasMatchAll)
}

func TestBuildQuery_IncludeClosedDropsStatusFilter(t *testing.T) {
	body := buildAndDecode(t, OpportunityQuery{
		Index:     "opportunities",
		QueryType: "opportunity_search",
		Filters:   map[string]interface{}{"includeClosed": true},
	})

	bq := boolQuery(t, body)
	filters := bq["filter"].([]interface{})
	assert.Empty(t, filters)
}

func TestBuildQuery_SimilarOpportunitiesExcludesSelf(t *testing.T) {
	body := buildAndDecode(t, OpportunityQuery{
		Index:     "opportunities",
		QueryType: "similar_opportunities",
		NoticeID:  "N0001",
		Filters: map[string]interface{}{
			"naicsCodes": []interface{}{"541511"},
			"agency":     "DOD",
		},
	})

	bq := boolQuery(t, body)
	assert.Len(t, bq["should"].([]interface{}), 2)
	mustNot := bq["must_not"].([]interface{})
	require.Len(t, mustNot, 1)
	term := mustNot[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "N0001", term["notice_id"])
}
