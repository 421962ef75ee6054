package domain

import "time"

// OAuthTokens holds credentials issued by an OAuth provider.
type OAuthTokens struct {
	// AccessToken authorizes API calls until Expiry.
	AccessToken string

	// RefreshToken obtains new access tokens without user interaction.
	// Some providers omit it on refresh responses.
	RefreshToken string

	// TokenType is the authorization scheme, typically "Bearer".
	TokenType string

	// Expiry is when the access token stops working. A zero value means
	// the provider did not report a lifetime.
	Expiry time.Time
}

// Valid returns true if the access token is present and not expired.
func (t *OAuthTokens) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return t.Expiry.IsZero() || time.Now().Before(t.Expiry)
}

// OAuthConfig describes a provider's authorization code flow endpoints.
type OAuthConfig struct {
	// AuthURL is the consent page the user's browser is sent to.
	AuthURL string

	// TokenURL is the endpoint that exchanges codes for tokens.
	TokenURL string

	ClientID     string
	ClientSecret string

	// Scopes are the access scopes requested from the provider.
	Scopes []string

	// ExtraAuthParams are provider-specific query parameters added to
	// the authorization URL (for example Google's access_type=offline).
	ExtraAuthParams map[string]string
}
