package domain

// RawDocument represents opaque bytes fetched by a material source.
// It is the source's output before extraction.
type RawDocument struct {
	// URI is the original location (file path, repo path, Drive file ID).
	URI string

	// Filename is the name to register the document under.
	Filename string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains source-specific key-value pairs.
	Metadata map[string]any
}
