package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
// It resolves course membership through the DocumentStore it is
// constructed with, the way the SQLite store joins on documents.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string][]domain.Chunk
	docs   *DocumentStore
}

// NewChunkStore creates a new in-memory chunk store backed by the given
// document store for course scoping.
func NewChunkStore(docs *DocumentStore) *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string][]domain.Chunk),
		docs:   docs,
	}
}

// SaveChunks atomically replaces the document's chunk set.
func (s *ChunkStore) SaveChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	if documentID == "" {
		return domain.ErrInvalidInput
	}
	for i, chunk := range chunks {
		if chunk.DocumentID != documentID {
			return fmt.Errorf("%w: chunk %s belongs to document %q",
				domain.ErrInvalidInput, chunk.ID, chunk.DocumentID)
		}
		if chunk.SequenceIndex != i {
			return fmt.Errorf("%w: chunk at position %d has sequence index %d",
				domain.ErrInvalidInput, i, chunk.SequenceIndex)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.Chunk, len(chunks))
	copy(stored, chunks)
	s.chunks[documentID] = stored
	return nil
}

// GetChunks retrieves all chunks for a document in sequence order.
func (s *ChunkStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks, ok := s.chunks[documentID]
	if !ok {
		return nil, nil
	}
	result := make([]domain.Chunk, len(chunks))
	copy(result, chunks)
	return result, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *ChunkStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, chunks := range s.chunks {
		for _, chunk := range chunks {
			if chunk.ID == id {
				return &chunk, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteChunks removes all chunks for a document.
func (s *ChunkStore) DeleteChunks(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chunks, documentID)
	return nil
}

// Search returns the course's top k chunks by cosine similarity.
func (s *ChunkStore) Search(
	_ context.Context,
	courseID string,
	vector []float32,
	k int,
	minScore float64,
) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.RetrievedChunk
	for documentID, chunks := range s.chunks {
		if !s.documentInCourse(documentID, courseID) {
			continue
		}
		for _, chunk := range chunks {
			score := cosineSimilarity(vector, chunk.Embedding)
			if score < minScore {
				continue
			}
			results = append(results, domain.RetrievedChunk{Chunk: chunk, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.SequenceIndex < results[j].Chunk.SequenceIndex
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// documentInCourse reports whether the document belongs to the course.
func (s *ChunkStore) documentInCourse(documentID, courseID string) bool {
	if s.docs == nil {
		return true
	}
	s.docs.mu.RLock()
	defer s.docs.mu.RUnlock()
	doc, ok := s.docs.documents[documentID]
	return ok && doc.CourseID == courseID
}

// cosineSimilarity computes cosine similarity clamped to [0, 1].
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Min(1, math.Max(0, score))
}
