// internal/workers/opportunity/search-opportunities/models.go
package searchopportunities

type Input struct {
	QueryType  string                 `json:"queryType"`
	Filters    map[string]interface{} `json:"filters"`
	NoticeID   string                 `json:"noticeId,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Results   []map[string]interface{} `json:"results"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"`
}
