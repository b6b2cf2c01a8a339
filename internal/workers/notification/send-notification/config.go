// internal/workers/notification/send-notification/config.go
package sendnotification

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	AWSRegion    string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		FromEmail:    "noreply@govmatch.example",
		AWSRegion:    "us-east-1",
		Timeout:      30 * time.Second,
	}
}
