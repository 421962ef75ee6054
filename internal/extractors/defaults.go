package extractors

import (
	"github.com/clarity-labs/coursemate-cli/internal/extractors/markdown"
	"github.com/clarity-labs/coursemate-cli/internal/extractors/pdf"
	"github.com/clarity-labs/coursemate-cli/internal/extractors/plaintext"
)

// RegisterDefaults registers all built-in extractors with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(pdf.New())
}
