package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupportedMIMETypes(t *testing.T) {
	extractor := New()
	mimeTypes := extractor.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/markdown")
	assert.Contains(t, mimeTypes, "text/x-markdown")
	assert.Len(t, mimeTypes, 2)
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract_NilDocument(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, text)
}

func TestExtract_EmptyContent(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	raw := &domain.RawDocument{
		URI:      "/path/to/empty.md",
		Filename: "empty.md",
		MIMEType: "text/markdown",
		Content:  []byte(""),
	}

	text, err := extractor.Extract(ctx, raw)
	require.NoError(t, err)
	assert.Empty(t, text)
}

// TestExtract_StripsFormatting tests that markdown syntax is removed while
// the readable content survives.
func TestExtract_StripsFormatting(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "heading markers",
			content:  "# Hello World\n\nThis is a test.",
			expected: "Hello World\n\nThis is a test.",
		},
		{
			name:     "nested heading levels",
			content:  "## Section\n\nBody.",
			expected: "Section\n\nBody.",
		},
		{
			name:     "bold markers",
			content:  "This is **bold** text.",
			expected: "This is bold text.",
		},
		{
			name:     "inline code",
			content:  "Use `go build` to compile.",
			expected: "Use go build to compile.",
		},
		{
			name:     "code fence keeps code",
			content:  "Before\n\n```go\nfmt.Println(\"hi\")\n```\n\nAfter",
			expected: "Before\n\nfmt.Println(\"hi\")\n\nAfter",
		},
		{
			name:     "links keep text",
			content:  "See [the docs](https://example.com) for more.",
			expected: "See the docs for more.",
		},
		{
			name:     "images removed",
			content:  "![diagram](img.png)\n\nCaption text.",
			expected: "Caption text.",
		},
		{
			name:     "blockquote markers",
			content:  "> quoted line\nnormal line",
			expected: "quoted line\nnormal line",
		},
		{
			name:     "list markers",
			content:  "- alpha\n- beta\n1. first\n2. second",
			expected: "alpha\nbeta\nfirst\nsecond",
		},
		{
			name:     "horizontal rule",
			content:  "Above\n\n---\n\nBelow",
			expected: "Above\n\nBelow",
		},
	}

	extractor := New()
	ctx := context.Background()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := &domain.RawDocument{
				URI:      "/doc.md",
				Filename: "doc.md",
				MIMEType: "text/markdown",
				Content:  []byte(tc.content),
			}

			text, err := extractor.Extract(ctx, raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, text)
		})
	}
}

func TestExtract_CollapsesExtraNewlines(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	raw := &domain.RawDocument{
		URI:      "/doc.md",
		Filename: "doc.md",
		MIMEType: "text/markdown",
		Content:  []byte("First paragraph.\n\n\n\n\nSecond paragraph."),
	}

	text, err := extractor.Extract(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", text)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
