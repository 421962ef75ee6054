package connectors

import (
	"fmt"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driven/oauth"
	"github.com/clarity-labs/coursemate-cli/internal/connectors/filesystem"
	"github.com/clarity-labs/coursemate-cli/internal/connectors/github"
	"github.com/clarity-labs/coursemate-cli/internal/connectors/googledrive"
	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
)

// githubTokenKey is the config key holding the GitHub personal access
// token.
const githubTokenKey = "github.token"

// Factory builds material sources from import specs. GitHub sources
// read their token from configuration; Drive sources share the OAuth
// token provider.
type Factory struct {
	config       driven.ConfigStore
	googleTokens driven.TokenProvider
}

// NewFactory creates a source factory.
func NewFactory(config driven.ConfigStore, googleTokens driven.TokenProvider) *Factory {
	return &Factory{
		config:       config,
		googleTokens: googleTokens,
	}
}

// New builds the material source the spec names.
func (f *Factory) New(spec driving.ImportSpec) (driven.MaterialSource, error) {
	switch spec.SourceType {
	case driving.ImportSourceDirectory:
		return filesystem.New(spec.Path, spec.Patterns), nil

	case driving.ImportSourceGitHub:
		token := f.config.GetString(githubTokenKey)
		return github.New(spec.Repo, spec.Patterns, oauth.NewStaticTokenProvider(token))

	case driving.ImportSourceGoogleDrive:
		return googledrive.New(spec.FolderID, spec.Patterns, f.googleTokens), nil

	default:
		return nil, fmt.Errorf("%w: unknown source type %q", domain.ErrInvalidInput, spec.SourceType)
	}
}
