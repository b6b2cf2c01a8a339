// internal/models/query_types.go
package models

// Query types supported by the search-opportunities worker.
const (
	QueryOpportunitySearch    = "opportunity_search"
	QuerySimilarOpportunities = "similar_opportunities"
)
