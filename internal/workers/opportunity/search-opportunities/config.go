// internal/workers/opportunity/search-opportunities/config.go
package searchopportunities

import "time"

type Config struct {
	IndexName string
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IndexName: "opportunities",
		Timeout:   5 * time.Second,
	}
}
