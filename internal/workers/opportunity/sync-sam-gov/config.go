// internal/workers/opportunity/sync-sam-gov/config.go
package syncsamgov

import "time"

type Config struct {
	BaseURL   string
	APIKey    string
	IndexName string
	PageSize  int
	MaxPages  int
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:   "https://api.sam.gov",
		IndexName: "opportunities",
		PageSize:  100,
		MaxPages:  10,
		Timeout:   60 * time.Second,
	}
}
