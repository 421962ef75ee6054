// Package chunker provides a recursive character text chunking processor.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// defaultSeparators is the split hierarchy: paragraphs first, then
// lines, then words, then single characters as the last resort.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Processor splits extracted text into bounded, overlapping chunks.
// It prefers natural boundaries: a paragraph break over a line break,
// a line break over a space, and only cuts mid-word when a single word
// exceeds the chunk size. It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the extracted text into chunks with dense sequence
// indices. Input chunks are ignored; this processor creates new chunks.
// Empty or whitespace-only content produces no chunks.
func (p *Processor) Process(_ context.Context, documentID, content string, _ []domain.Chunk) ([]domain.Chunk, error) {
	if content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	pieces := p.splitText(content, defaultSeparators)

	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:            uuid.New().String(),
			DocumentID:    documentID,
			SequenceIndex: i,
			Content:       piece,
		})
	}

	return chunks, nil
}

// splitText splits on the coarsest separator present in the text, then
// recursively re-splits any piece still larger than the chunk size with
// the finer separators. Pieces within the size limit are merged back
// together up to the chunk size, carrying overlap between neighbours.
func (p *Processor) splitText(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var finer []string
	for i, s := range separators {
		if s == "" {
			separator = s
			break
		}
		if strings.Contains(text, s) {
			separator = s
			finer = separators[i+1:]
			break
		}
	}

	splits := splitKeepingSeparator(text, separator)

	var final []string
	var fitting []string
	for _, s := range splits {
		if utf8.RuneCountInString(s) < p.chunkSize {
			fitting = append(fitting, s)
			continue
		}
		if len(fitting) > 0 {
			final = append(final, p.mergeSplits(fitting)...)
			fitting = nil
		}
		if len(finer) == 0 {
			final = append(final, s)
		} else {
			final = append(final, p.splitText(s, finer)...)
		}
	}
	if len(fitting) > 0 {
		final = append(final, p.mergeSplits(fitting)...)
	}

	return final
}

// splitKeepingSeparator splits text and attaches each separator to the
// start of the piece that follows it, so no characters are lost and
// joining pieces back together reconstructs the original text. The
// empty separator splits into single characters.
func splitKeepingSeparator(text, separator string) []string {
	if separator == "" {
		out := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			out = append(out, string(r))
		}
		return out
	}

	parts := strings.Split(text, separator)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i == 0 {
			if part != "" {
				out = append(out, part)
			}
			continue
		}
		out = append(out, separator+part)
	}
	return out
}

// mergeSplits packs consecutive pieces into chunks of at most chunkSize
// characters. When a chunk fills up it is emitted and the window slides:
// pieces are dropped from the front until at most overlap characters
// remain to seed the next chunk.
func (p *Processor) mergeSplits(splits []string) []string {
	var docs []string
	var current []string
	total := 0

	for _, s := range splits {
		length := utf8.RuneCountInString(s)
		if total+length > p.chunkSize && len(current) > 0 {
			if doc := joinPieces(current); doc != "" {
				docs = append(docs, doc)
			}
			for total > p.overlap || (total+length > p.chunkSize && total > 0) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, s)
		total += length
	}

	if doc := joinPieces(current); doc != "" {
		docs = append(docs, doc)
	}

	return docs
}

func joinPieces(pieces []string) string {
	return strings.TrimSpace(strings.Join(pieces, ""))
}
