// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - CourseStore: Course persistence
//   - DocumentStore: Document metadata and processing state persistence
//   - ChunkStore: Chunk persistence and similarity search
//   - StudyStore: Generated study artifact persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Similarity Search
//
// Chunk embeddings are stored as little-endian float32 blobs. Search scans a
// course's chunks and scores each against the query vector with cosine
// similarity, which is exact and fast enough at single-user course sizes.
//
// # Data Location
//
// By default, the database is stored at ~/.coursemate/data/coursemate.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
