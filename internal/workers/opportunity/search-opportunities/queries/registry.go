// internal/workers/opportunity/search-opportunities/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type QueryResult struct {
	Data      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

// Execute runs one opportunity search and flattens the hit sources.
func Execute(ctx context.Context, esClient *elasticsearch.Client, oq OpportunityQuery) (*QueryResult, error) {
	if oq.Pagination.Size < 1 {
		oq.Pagination.Size = 20
	}
	if oq.Pagination.Size > 100 {
		oq.Pagination.Size = 100
	}
	if oq.Filters == nil {
		oq.Filters = map[string]interface{}{}
	}

	req, err := BuildQuery(esClient, oq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed search response")
	}

	result := &QueryResult{
		Took: time.Since(start).Milliseconds(),
	}
	if total, ok := hits["total"].(map[string]interface{}); ok {
		if value, ok := total["value"].(float64); ok {
			result.TotalHits = int64(value)
		}
	}
	if ms, ok := hits["max_score"].(float64); ok {
		result.MaxScore = ms
	}
	if hitList, ok := hits["hits"].([]interface{}); ok {
		for _, hit := range hitList {
			if m, ok := hit.(map[string]interface{}); ok {
				if source, ok := m["_source"].(map[string]interface{}); ok {
					result.Data = append(result.Data, source)
				}
			}
		}
	}

	return result, nil
}
