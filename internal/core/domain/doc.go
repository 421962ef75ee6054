// Package domain defines the core business entities for Coursemate.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Course: A collection of study materials
//   - Document: A course material and its processing state
//   - Chunk: An embedded retrieval unit within a document
//   - Answer: A synthesized response with source attributions
//   - FlashcardSet / QuizSet / StudyNote: Generated study artifacts
//   - RawDocument: Opaque bytes from a material source
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
