// internal/common/auth/keycloak.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"govmatch-workers/internal/common/errors"
)

// KeycloakClient looks up platform users in Keycloak. Authentication flows
// live in the API gateway; workers only need read access to identities
// when syncing contacts downstream.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	accessToken  string
	tokenExpiry  time.Time
}

// User represents a user in Keycloak.
type User struct {
	ID            string `json:"id,omitempty"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Username      string `json:"username"`
	Enabled       bool   `json:"enabled"`
	EmailVerified bool   `json:"emailVerified"`
}

// TokenResponse holds the response from Keycloak's token endpoint.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	TokenType        string `json:"token_type"`
	RefreshToken     string `json:"refresh_token"`
	Scope            string `json:"scope"`
}

// NewKeycloakClient creates a new instance of KeycloakClient.
func NewKeycloakClient(baseURL, realm, clientID, clientSecret string) *KeycloakClient {
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// getAccessToken fetches a new access token using the client credentials flow.
// It caches the token until expiry.
func (k *KeycloakClient) getAccessToken(ctx context.Context) error {
	if k.tokenExpiry.After(time.Now()) && k.accessToken != "" {
		// Token is still valid, no need to fetch a new one
		return nil
	}

	tokenURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", k.baseURL, k.realm)

	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", k.clientID)
	data.Set("client_secret", k.clientSecret)

	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("keycloak token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	k.accessToken = tokenResp.AccessToken
	k.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (k *KeycloakClient) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if err := k.getAccessToken(ctx); err != nil {
		return nil, &errors.StandardError{
			Code:      "KEYCLOAK_AUTH_ERROR",
			Message:   "Failed to authenticate with Keycloak",
			Details:   err.Error(),
			Retryable: true,
		}
	}

	// Use Keycloak's search API by email
	searchURL := fmt.Sprintf("%s/admin/realms/%s/users?email=%s&exact=true", k.baseURL, k.realm, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, &errors.StandardError{
			Code:      "HTTP_REQUEST_ERROR",
			Message:   "Failed to create search request",
			Details:   err.Error(),
			Retryable: false,
		}
	}

	req.Header.Set("Authorization", "Bearer "+k.accessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, &errors.StandardError{
			Code:      "NETWORK_ERROR",
			Message:   "Failed to send search request",
			Details:   err.Error(),
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &errors.StandardError{
			Code:      "KEYCLOAK_API_ERROR",
			Message:   "Keycloak API error during user search",
			Details:   string(body),
			Retryable: k.isTransientHTTPError(resp.StatusCode),
		}
	}

	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, &errors.StandardError{
			Code:      "DESERIALIZATION_ERROR",
			Message:   "Failed to decode user search results",
			Details:   err.Error(),
			Retryable: false,
		}
	}

	if len(users) == 0 {
		return nil, &errors.StandardError{
			Code:      "USER_NOT_FOUND",
			Message:   "User not found",
			Details:   fmt.Sprintf("No user found with email: %s", email),
			Retryable: false,
		}
	}

	// Assuming the search is exact and returns only one user
	return &users[0], nil
}

// GetUser retrieves a user by their unique ID.
func (k *KeycloakClient) GetUser(ctx context.Context, userID string) (*User, error) {
	if err := k.getAccessToken(ctx); err != nil {
		return nil, &errors.StandardError{
			Code:      "KEYCLOAK_AUTH_ERROR",
			Message:   "Failed to authenticate with Keycloak",
			Details:   err.Error(),
			Retryable: true,
		}
	}

	userURL := fmt.Sprintf("%s/admin/realms/%s/users/%s", k.baseURL, k.realm, userID)

	req, err := http.NewRequestWithContext(ctx, "GET", userURL, nil)
	if err != nil {
		return nil, &errors.StandardError{
			Code:      "HTTP_REQUEST_ERROR",
			Message:   "Failed to create get user request",
			Details:   err.Error(),
			Retryable: false,
		}
	}

	req.Header.Set("Authorization", "Bearer "+k.accessToken)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, &errors.StandardError{
			Code:      "NETWORK_ERROR",
			Message:   "Failed to send get user request",
			Details:   err.Error(),
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &errors.StandardError{
			Code:      "USER_NOT_FOUND",
			Message:   "User not found",
			Details:   fmt.Sprintf("No user found with id: %s", userID),
			Retryable: false,
		}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &errors.StandardError{
			Code:      "KEYCLOAK_API_ERROR",
			Message:   "Keycloak API error during user retrieval",
			Details:   string(body),
			Retryable: k.isTransientHTTPError(resp.StatusCode),
		}
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, &errors.StandardError{
			Code:      "DESERIALIZATION_ERROR",
			Message:   "Failed to decode user details",
			Details:   err.Error(),
			Retryable: false,
		}
	}

	return &user, nil
}

// isTransientHTTPError returns true if the HTTP status code indicates a potentially transient error.
func (k *KeycloakClient) isTransientHTTPError(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError, // 500
		http.StatusBadGateway,         // 502
		http.StatusServiceUnavailable, // 503
		http.StatusGatewayTimeout:     // 504
		return true
	default:
		return false
	}
}
