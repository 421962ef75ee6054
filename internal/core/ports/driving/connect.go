package driving

import "context"

// ConnectService links external accounts used by material sources.
type ConnectService interface {
	// ConnectGoogle runs the browser OAuth flow and caches the resulting
	// token for the Google Drive source.
	ConnectGoogle(ctx context.Context) error

	// ConnectGitHub stores a personal access token for the GitHub source.
	ConnectGitHub(ctx context.Context, token string) error

	// GoogleConnected reports whether a usable Google token is cached.
	GoogleConnected() bool

	// GitHubConnected reports whether a GitHub token is stored.
	GitHubConnected() bool
}
