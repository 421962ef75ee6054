// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Converts raw document bytes into plain text
//   - ExtractorRegistry: Selects the extractor for a MIME type
//   - PostProcessorPipeline: Splits extracted text into chunks
//   - CourseStore: Course persistence
//   - DocumentStore: Document persistence
//   - ChunkStore: Chunk persistence and similarity search
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the affected operations report unavailability:
//
//   - EmbeddingService: Generates vector embeddings. Without it,
//     documents cannot be processed.
//   - LLMService: Language model operations. Without it, answers and
//     study generation are disabled.
//   - StudyStore: Study artifact persistence.
//   - MaterialSource: Bulk document import.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
