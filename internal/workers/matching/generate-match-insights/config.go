// internal/workers/matching/generate-match-insights/config.go
package generatematchinsights

import "time"

type Config struct {
	GenAIBaseURL string
	APIKey       string
	Model        string
	Timeout      time.Duration
	MaxRetries   int
	MaxTokens    int
	Temperature  float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		MaxRetries:  1,
		MaxTokens:   500,
		Temperature: 0.7,
	}
}
