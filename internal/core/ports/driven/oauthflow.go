package driven

import (
	"context"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// OAuthFlow obtains tokens from an OAuth provider through an
// authorization code flow.
type OAuthFlow interface {
	// Authorize sends the user to the provider's consent page, waits for
	// the redirect and exchanges the authorization code for tokens.
	Authorize(ctx context.Context, cfg domain.OAuthConfig) (*domain.OAuthTokens, error)
}
