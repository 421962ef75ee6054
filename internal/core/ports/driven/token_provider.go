package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}

// TokenStore persists tokens in addition to serving them.
type TokenStore interface {
	TokenProvider

	// SaveTokens persists tokens obtained from an authorization flow.
	SaveTokens(tokens *domain.OAuthTokens) error

	// Clear removes any stored tokens.
	Clear() error
}
