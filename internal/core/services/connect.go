package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// Google OAuth endpoints. The client credentials come from config so
// users can register their own Google Cloud app.
const (
	googleAuthURL    = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL   = "https://oauth2.googleapis.com/token" //nolint:gosec // G101: endpoint URL, not a credential
	googleDriveScope = "https://www.googleapis.com/auth/drive.readonly"
)

// Config keys for source credentials.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyGoogleClientID     = "google.client_id"
	keyGoogleClientSecret = "google.client_secret"
	keyGitHubToken        = "github.token"
)

// ConnectService links external accounts used by material sources.
type ConnectService struct {
	configStore  driven.ConfigStore
	googleTokens driven.TokenStore
	flow         driven.OAuthFlow
}

// Ensure ConnectService implements the interface.
var _ driving.ConnectService = (*ConnectService)(nil)

// NewConnectService creates a new connect service.
func NewConnectService(
	configStore driven.ConfigStore,
	googleTokens driven.TokenStore,
	flow driven.OAuthFlow,
) *ConnectService {
	return &ConnectService{
		configStore:  configStore,
		googleTokens: googleTokens,
		flow:         flow,
	}
}

// ConnectGoogle runs the browser authorization flow for Google Drive
// and stores the resulting tokens.
func (s *ConnectService) ConnectGoogle(ctx context.Context) error {
	clientID := s.configStore.GetString(keyGoogleClientID)
	if clientID == "" {
		return fmt.Errorf("%w: %s is not set in %s",
			domain.ErrInvalidInput, keyGoogleClientID, s.configStore.Path())
	}

	logger.Section("Google Drive Connection")
	logger.Info("Waiting for browser authorization...")

	tokens, err := s.flow.Authorize(ctx, domain.OAuthConfig{
		AuthURL:      googleAuthURL,
		TokenURL:     googleTokenURL,
		ClientID:     clientID,
		ClientSecret: s.configStore.GetString(keyGoogleClientSecret),
		Scopes:       []string{googleDriveScope},
		// Google only issues a refresh token for offline access with
		// explicit consent.
		ExtraAuthParams: map[string]string{
			"access_type": "offline",
			"prompt":      "consent",
		},
	})
	if err != nil {
		return fmt.Errorf("authorize with google: %w", err)
	}

	if err := s.googleTokens.SaveTokens(tokens); err != nil {
		return fmt.Errorf("store google tokens: %w", err)
	}

	logger.Info("Google Drive connected")
	return nil
}

// ConnectGitHub stores a personal access token for the GitHub source.
func (s *ConnectService) ConnectGitHub(_ context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token must not be empty", domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(keyGitHubToken, token); err != nil {
		return fmt.Errorf("store github token: %w", err)
	}

	logger.Info("GitHub connected")
	return nil
}

// GoogleConnected reports whether a usable Google token is cached.
func (s *ConnectService) GoogleConnected() bool {
	return s.googleTokens.IsAuthenticated()
}

// GitHubConnected reports whether a GitHub token is stored.
func (s *ConnectService) GitHubConnected() bool {
	return s.configStore.GetString(keyGitHubToken) != ""
}

// GitHubToken returns the stored personal access token, or empty.
func (s *ConnectService) GitHubToken() string {
	return s.configStore.GetString(keyGitHubToken)
}
