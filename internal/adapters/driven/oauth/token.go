// Package oauth implements the browser authorization code flow and token
// persistence for external material sources.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

const tokenRequestTimeout = 30 * time.Second

// tokenResponse is the provider's JSON token payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// toTokens converts the wire payload, resolving expires_in to a point
// in time.
func (r *tokenResponse) toTokens() *domain.OAuthTokens {
	tokens := &domain.OAuthTokens{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
	}
	if r.ExpiresIn > 0 {
		tokens.Expiry = time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return tokens
}

// ExchangeCodeForTokens exchanges an authorization code for tokens.
func ExchangeCodeForTokens(
	ctx context.Context,
	tokenURL, clientID, clientSecret, code, redirectURI, codeVerifier string,
) (*domain.OAuthTokens, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("client_id", clientID)
	data.Set("client_secret", clientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", redirectURI)
	if codeVerifier != "" {
		data.Set("code_verifier", codeVerifier)
	}

	return postTokenRequest(ctx, tokenURL, data)
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func RefreshAccessToken(
	ctx context.Context,
	tokenURL, clientID, clientSecret, refreshToken string,
) (*domain.OAuthTokens, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", clientID)
	if clientSecret != "" {
		data.Set("client_secret", clientSecret)
	}

	return postTokenRequest(ctx, tokenURL, data)
}

// postTokenRequest sends a form-encoded request to the token endpoint
// and decodes the response.
func postTokenRequest(ctx context.Context, tokenURL string, data url.Values) (*domain.OAuthTokens, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: tokenRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("token error: %s - %s", errResp.Error, errResp.Description)
		}
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	return payload.toTokens(), nil
}
