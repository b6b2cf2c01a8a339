// internal/workers/crm/sync-crm-contact/config.go
package synccrmcontact

import "time"

type Config struct {
	KeycloakBaseURL      string
	KeycloakRealm        string
	KeycloakClientID     string
	KeycloakClientSecret string
	ZohoAPIKey           string
	ZohoOAuthToken       string
	ZohoBaseURL          string
	Timeout              time.Duration
}

func LoadConfig() *Config {
	return &Config{
		KeycloakRealm: "govmatch",
		Timeout:       15 * time.Second,
	}
}
