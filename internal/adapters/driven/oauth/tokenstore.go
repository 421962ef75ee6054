package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

const (
	// DefaultTokenDir is the directory under the user's home where tokens
	// are stored.
	DefaultTokenDir = ".coursemate"

	// DefaultTokenFile is the file name for stored Google tokens.
	DefaultTokenFile = "google_token.json"

	// DefaultRefreshBuffer is how long before expiry a token is refreshed.
	DefaultRefreshBuffer = 5 * time.Minute

	// GoogleTokenURL is Google's OAuth token endpoint, used both for the
	// initial code exchange and for refreshes.
	GoogleTokenURL = "https://oauth2.googleapis.com/token" //nolint:gosec // G101: endpoint URL, not a credential
)

// storedToken is the on-disk representation of an OAuth token.
type storedToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// FileTokenProvider stores OAuth tokens in a JSON file and refreshes
// them transparently when they approach expiry.
type FileTokenProvider struct {
	path          string
	tokenURL      string
	clientID      string
	clientSecret  string
	refreshBuffer time.Duration

	mu          sync.RWMutex
	cachedToken string
	cacheExpiry time.Time
}

// Ensure FileTokenProvider implements the TokenStore interface.
var _ driven.TokenStore = (*FileTokenProvider)(nil)

// FileTokenProviderConfig holds configuration for a FileTokenProvider.
type FileTokenProviderConfig struct {
	Path          string // defaults to ~/.coursemate/google_token.json
	TokenURL      string
	ClientID      string
	ClientSecret  string // optional for PKCE clients
	RefreshBuffer time.Duration
}

// NewFileTokenProvider creates a token provider backed by a JSON file.
func NewFileTokenProvider(cfg FileTokenProviderConfig) (*FileTokenProvider, error) {
	path := cfg.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, DefaultTokenDir, DefaultTokenFile)
	}

	buffer := cfg.RefreshBuffer
	if buffer == 0 {
		buffer = DefaultRefreshBuffer
	}

	return &FileTokenProvider{
		path:          path,
		tokenURL:      cfg.TokenURL,
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		refreshBuffer: buffer,
	}, nil
}

// GetToken returns a valid access token, refreshing it first if it has
// expired or is about to.
func (p *FileTokenProvider) GetToken(ctx context.Context) (string, error) {
	// Fast path: cached token still valid.
	p.mu.RLock()
	if p.cachedToken != "" && time.Now().Before(p.cacheExpiry) {
		token := p.cachedToken
		p.mu.RUnlock()
		return token, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check: another goroutine may have refreshed while we waited.
	if p.cachedToken != "" && time.Now().Before(p.cacheExpiry) {
		return p.cachedToken, nil
	}

	stored, err := p.load()
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: run 'coursemate connect google' first", domain.ErrAuthRequired)
		}
		return "", fmt.Errorf("load stored token: %w", err)
	}
	if stored.AccessToken == "" {
		return "", fmt.Errorf("%w: run 'coursemate connect google' first", domain.ErrAuthRequired)
	}

	if p.needsRefresh(stored) {
		if stored.RefreshToken == "" {
			return "", fmt.Errorf("%w: token expired and no refresh token is stored", domain.ErrAuthExpired)
		}

		refreshed, err := RefreshAccessToken(ctx, p.tokenURL, p.clientID, p.clientSecret, stored.RefreshToken)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
		}

		// Providers often omit the refresh token on refresh responses.
		if refreshed.RefreshToken == "" {
			refreshed.RefreshToken = stored.RefreshToken
		}

		stored = &storedToken{
			AccessToken:  refreshed.AccessToken,
			RefreshToken: refreshed.RefreshToken,
			TokenType:    refreshed.TokenType,
			Expiry:       refreshed.Expiry,
		}
		if err := p.save(stored); err != nil {
			return "", fmt.Errorf("save refreshed token: %w", err)
		}
	}

	p.cacheToken(stored)
	return stored.AccessToken, nil
}

// IsAuthenticated returns true if a usable token is stored.
func (p *FileTokenProvider) IsAuthenticated() bool {
	p.mu.RLock()
	if p.cachedToken != "" && time.Now().Before(p.cacheExpiry) {
		p.mu.RUnlock()
		return true
	}
	p.mu.RUnlock()

	stored, err := p.load()
	if err != nil || stored.AccessToken == "" {
		return false
	}
	// An expired token still counts if it can be refreshed.
	return !p.needsRefresh(stored) || stored.RefreshToken != ""
}

// SaveTokens persists tokens obtained from an authorization code
// exchange and primes the cache.
func (p *FileTokenProvider) SaveTokens(tokens *domain.OAuthTokens) error {
	if tokens == nil || tokens.AccessToken == "" {
		return fmt.Errorf("%w: missing access token", domain.ErrInvalidInput)
	}

	stored := &storedToken{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
		Expiry:       tokens.Expiry,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.save(stored); err != nil {
		return err
	}
	p.cacheToken(stored)
	return nil
}

// Clear removes the stored token and invalidates the cache.
func (p *FileTokenProvider) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cachedToken = ""
	p.cacheExpiry = time.Time{}

	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// Path returns the token file location.
func (p *FileTokenProvider) Path() string {
	return p.path
}

// needsRefresh reports whether the token expires within the refresh buffer.
func (p *FileTokenProvider) needsRefresh(tok *storedToken) bool {
	if tok.Expiry.IsZero() {
		return false
	}
	return time.Now().Add(p.refreshBuffer).After(tok.Expiry)
}

// cacheToken stores the access token in memory. Must hold the write lock.
func (p *FileTokenProvider) cacheToken(tok *storedToken) {
	p.cachedToken = tok.AccessToken
	if tok.Expiry.IsZero() {
		p.cacheExpiry = time.Now().Add(1 * time.Hour)
	} else {
		p.cacheExpiry = tok.Expiry.Add(-p.refreshBuffer)
	}
}

// load reads the token file from disk.
func (p *FileTokenProvider) load() (*storedToken, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}

	var tok storedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	return &tok, nil
}

// save writes the token file with restrictive permissions. Must hold the
// write lock.
func (p *FileTokenProvider) save(tok *storedToken) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
