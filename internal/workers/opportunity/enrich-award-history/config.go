// internal/workers/opportunity/enrich-award-history/config.go
package enrichawardhistory

import "time"

type Config struct {
	BaseURL  string
	CacheTTL time.Duration
	Timeout  time.Duration
	MaxAwards int
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:   "https://api.usaspending.gov",
		CacheTTL:  24 * time.Hour,
		Timeout:   30 * time.Second,
		MaxAwards: 50,
	}
}
