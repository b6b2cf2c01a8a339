// internal/workers/matching/record-outcome/config.go
package recordoutcome

import (
	"time"

	"govmatch-workers/internal/matching"
)

type Config struct {
	Timeout time.Duration
	Policy  matching.OutcomePolicy
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Policy:  matching.DefaultOutcomePolicy(),
	}
}
