// internal/workers/matching/resolve-eligibility/config.go
package resolveeligibility

import "time"

type Config struct {
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: 5 * time.Minute,
		Timeout:  10 * time.Second,
	}
}
