// internal/workers/opportunity/search-opportunities/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"govmatch-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryType = errors.New("unknown query type")
	ErrMissingIndex     = errors.New("index name is required")
)

// OpportunityQuery describes one search request against the opportunity index.
type OpportunityQuery struct {
	Index      string
	QueryType  string
	Filters    map[string]interface{}
	NoticeID   string
	Pagination struct {
		From int
		Size int
	}
}

// BuildQuery assembles the Elasticsearch search request for a query type.
func BuildQuery(esClient *elasticsearch.Client, oq OpportunityQuery) (*esapi.SearchRequest, error) {
	if oq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch oq.QueryType {
	case models.QueryOpportunitySearch:
		queryBody = buildOpportunitySearchQuery(oq)
	case models.QuerySimilarOpportunities:
		queryBody = buildSimilarOpportunitiesQuery(oq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, oq.QueryType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{oq.Index},
		Body:  strings.NewReader(string(body)),
		From:  &oq.Pagination.From,
		Size:  &oq.Pagination.Size,
	}

	return &req, nil
}

// buildOpportunitySearchQuery builds the main keyword-and-filter search.
func buildOpportunitySearchQuery(oq OpportunityQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := oq.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"title^3", "description^2", "agency"},
				"type":   "best_fields",
			},
		})
	}

	if codes := stringList(oq.Filters["naicsCodes"]); len(codes) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"naics_codes": codes},
		})
	}

	if codes := stringList(oq.Filters["setAsideCodes"]); len(codes) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"set_aside_code": codes},
		})
	}

	if agency, ok := oq.Filters["agency"].(string); ok && agency != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"agency": agency},
		})
	}

	if level, ok := oq.Filters["governmentLevel"].(string); ok && level != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"government_level": level},
		})
	}

	if state, ok := oq.Filters["state"].(string); ok && state != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"place_of_performance": state},
		})
	}

	if valueRange, ok := oq.Filters["valueRange"].(map[string]interface{}); ok {
		if clause := buildValueRangeFilter(valueRange); clause != nil {
			filterClauses = append(filterClauses, clause)
		}
	}

	if after, ok := oq.Filters["deadlineAfter"].(string); ok && after != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"response_deadline": map[string]interface{}{"gte": after},
			},
		})
	}

	// Only open notices unless the caller asks otherwise.
	if includeClosed, ok := oq.Filters["includeClosed"].(bool); !ok || !includeClosed {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"status": "active"},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match_all": map[string]interface{}{},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   mustClauses,
				"filter": filterClauses,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"response_deadline": map[string]interface{}{"order": "asc", "missing": "_last"}},
		},
	}
}

// buildSimilarOpportunitiesQuery finds notices like a given one, excluding it.
func buildSimilarOpportunitiesQuery(oq OpportunityQuery) map[string]interface{} {
	shouldClauses := []interface{}{}

	if codes := stringList(oq.Filters["naicsCodes"]); len(codes) > 0 {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"terms": map[string]interface{}{"naics_codes": codes},
		})
	}
	if agency, ok := oq.Filters["agency"].(string); ok && agency != "" {
		shouldClauses = append(shouldClauses, map[string]interface{}{
			"term": map[string]interface{}{"agency": agency},
		})
	}

	boolQuery := map[string]interface{}{
		"should":               shouldClauses,
		"minimum_should_match": 1,
	}
	if oq.NoticeID != "" {
		boolQuery["must_not"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"notice_id": oq.NoticeID},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}

func buildValueRangeFilter(valueRange map[string]interface{}) map[string]interface{} {
	bounds := map[string]interface{}{}
	if min, ok := numeric(valueRange["min"]); ok && min > 0 {
		bounds["gte"] = min
	}
	if max, ok := numeric(valueRange["max"]); ok && max > 0 {
		bounds["lte"] = max
	}
	if len(bounds) == 0 {
		return nil
	}
	return map[string]interface{}{
		"range": map[string]interface{}{"estimated_value": bounds},
	}
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
