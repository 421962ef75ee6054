package oauth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

const (
	// DefaultCallbackPortStart and DefaultCallbackPortEnd bound the
	// local ports tried for the redirect listener.
	DefaultCallbackPortStart = 8400
	DefaultCallbackPortEnd   = 8500

	// DefaultAuthTimeout is how long Authorize waits for the user to
	// approve access in the browser.
	DefaultAuthTimeout = 5 * time.Minute
)

// BrowserFlow runs the authorization code flow with PKCE using a local
// callback server and the system browser.
type BrowserFlow struct {
	portStart   int
	portEnd     int
	authTimeout time.Duration
	openBrowser func(url string) error
}

// Ensure BrowserFlow implements the interface.
var _ driven.OAuthFlow = (*BrowserFlow)(nil)

// NewBrowserFlow creates a browser-based OAuth flow.
func NewBrowserFlow() *BrowserFlow {
	return &BrowserFlow{
		portStart:   DefaultCallbackPortStart,
		portEnd:     DefaultCallbackPortEnd,
		authTimeout: DefaultAuthTimeout,
		openBrowser: OpenBrowser,
	}
}

// Authorize sends the user's browser to the provider's consent page,
// waits for the redirect and exchanges the code for tokens.
func (f *BrowserFlow) Authorize(ctx context.Context, cfg domain.OAuthConfig) (*domain.OAuthTokens, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client id", domain.ErrInvalidInput)
	}
	if cfg.AuthURL == "" || cfg.TokenURL == "" {
		return nil, fmt.Errorf("%w: missing provider endpoints", domain.ErrInvalidInput)
	}

	verifier, err := GenerateCodeVerifier()
	if err != nil {
		return nil, fmt.Errorf("generate code verifier: %w", err)
	}
	challenge := GenerateCodeChallenge(verifier)

	state, err := GenerateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	port, err := FindAvailablePort(f.portStart, f.portEnd)
	if err != nil {
		return nil, fmt.Errorf("find callback port: %w", err)
	}

	server := NewCallbackServer(port, state)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}
	defer func() { _ = server.Stop() }()

	authURL := buildAuthURL(cfg, server.RedirectURI(), state, challenge)

	logger.Debug("Authorization URL: %s", authURL)
	if err := f.openBrowser(authURL); err != nil {
		// Headless environments still get a usable flow.
		logger.Info("Could not open a browser. Visit this URL to authorize:")
		logger.Info("  %s", authURL)
	}

	code, err := f.waitForCode(ctx, server)
	if err != nil {
		return nil, fmt.Errorf("wait for authorization: %w", err)
	}

	tokens, err := ExchangeCodeForTokens(ctx, cfg.TokenURL, cfg.ClientID, cfg.ClientSecret,
		code, server.RedirectURI(), verifier)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return tokens, nil
}

// waitForCode waits for the callback, honoring context cancellation.
func (f *BrowserFlow) waitForCode(ctx context.Context, server *CallbackServer) (string, error) {
	type result struct {
		code string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		code, err := server.WaitForCode(f.authTimeout)
		done <- result{code: code, err: err}
	}()

	select {
	case r := <-done:
		return r.code, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// buildAuthURL assembles the consent page URL with PKCE parameters.
func buildAuthURL(cfg domain.OAuthConfig, redirectURI, state, challenge string) string {
	params := url.Values{}
	params.Set("client_id", cfg.ClientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("state", state)
	params.Set("code_challenge", challenge)
	params.Set("code_challenge_method", "S256")
	if len(cfg.Scopes) > 0 {
		params.Set("scope", strings.Join(cfg.Scopes, " "))
	}
	for key, value := range cfg.ExtraAuthParams {
		params.Set(key, value)
	}

	return cfg.AuthURL + "?" + params.Encode()
}
