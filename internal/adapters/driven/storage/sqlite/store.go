package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.coursemate/data/coursemate.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".coursemate", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "coursemate.db")

	// Open database with WAL mode for better concurrency. Pragmas in the
	// DSN apply to every pooled connection, which matters for
	// foreign_keys: cascades must hold no matter which connection serves
	// a delete.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CourseStore returns a CourseStore interface backed by this store.
func (s *Store) CourseStore() driven.CourseStore {
	return &courseStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// StudyStore returns a StudyStore interface backed by this store.
func (s *Store) StudyStore() driven.StudyStore {
	return &studyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_init.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Course Store ====================

// courseStore implements driven.CourseStore.
type courseStore struct {
	store *Store
}

var _ driven.CourseStore = (*courseStore)(nil)

// SaveCourse stores or updates a course.
func (s *courseStore) SaveCourse(ctx context.Context, course *domain.Course) error {
	if course == nil || course.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO courses (id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at
	`, course.ID, course.Name, course.Description, course.CreatedAt, course.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving course: %w", err)
	}
	return nil
}

// GetCourse retrieves a course by ID.
func (s *courseStore) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM courses WHERE id = ?
	`, id)

	var course domain.Course
	if err := row.Scan(&course.ID, &course.Name, &course.Description,
		&course.CreatedAt, &course.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}

	return &course, nil
}

// ListCourses returns all courses.
func (s *courseStore) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM courses ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course //nolint:prealloc // size unknown from query
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Description,
			&course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}

	return courses, nil
}

// DeleteCourse removes a course. Documents, chunks, and study artifacts
// follow through foreign key cascades.
func (s *courseStore) DeleteCourse(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" || doc.CourseID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, course_id, filename, mime_type, status, failure_reason, chunk_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			course_id = excluded.course_id,
			filename = excluded.filename,
			mime_type = excluded.mime_type,
			status = excluded.status,
			failure_reason = excluded.failure_reason,
			chunk_count = excluded.chunk_count,
			updated_at = excluded.updated_at
	`, doc.ID, doc.CourseID, doc.Filename, doc.MIMEType, string(doc.Status),
		doc.FailureReason, doc.ChunkCount, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, course_id, filename, mime_type, status, failure_reason, chunk_count, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// ListDocuments returns documents for a course.
func (s *documentStore) ListDocuments(ctx context.Context, courseID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, course_id, filename, mime_type, status, failure_reason, chunk_count, created_at, updated_at
		FROM documents WHERE course_id = ?
		ORDER BY created_at, id
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument removes a document and its chunks.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// UpdateDocumentStatus records a processing state change.
func (s *documentStore) UpdateDocumentStatus(
	ctx context.Context,
	id string,
	status domain.ProcessingStatus,
	failureReason string,
	chunkCount int,
) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE documents
		SET status = ?, failure_reason = ?, chunk_count = ?, updated_at = ?
		WHERE id = ?
	`, string(status), failureReason, chunkCount, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// SaveChunks atomically replaces the document's chunk set.
func (s *chunkStore) SaveChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
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

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("clearing existing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, sequence_index, content, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID,
			chunk.SequenceIndex, chunk.Content, embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunk.SequenceIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetChunks retrieves all chunks for a document in sequence order.
func (s *chunkStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, sequence_index, content, embedding
		FROM chunks WHERE document_id = ?
		ORDER BY sequence_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *chunkStore) GetChunk(ctx context.Context, id string) (*domain.Chunk, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, sequence_index, content, embedding
		FROM chunks WHERE id = ?
	`, id)

	return scanChunkRow(row)
}

// DeleteChunks removes all chunks for a document.
func (s *chunkStore) DeleteChunks(ctx context.Context, documentID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// Search scans the course's chunks and returns the top k by cosine
// similarity, keeping only scores at or above minScore. Ties are broken
// by ascending sequence index.
func (s *chunkStore) Search(
	ctx context.Context,
	courseID string,
	vector []float32,
	k int,
	minScore float64,
) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.document_id, c.sequence_index, c.content, c.embedding
		FROM chunks c
		JOIN documents d ON d.id = c.document_id
		WHERE d.course_id = ?
	`, courseID)
	if err != nil {
		return nil, fmt.Errorf("querying course chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievedChunk
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}

		score := cosineSimilarity(vector, chunk.Embedding)
		if score < minScore {
			continue
		}
		results = append(results, domain.RetrievedChunk{Chunk: *chunk, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating course chunks: %w", err)
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

// ==================== Study Store ====================

// studyStore implements driven.StudyStore.
type studyStore struct {
	store *Store
}

var _ driven.StudyStore = (*studyStore)(nil)

// SaveFlashcardSet stores a flashcard set and its cards.
func (s *studyStore) SaveFlashcardSet(ctx context.Context, set *domain.FlashcardSet) error {
	if set == nil || set.ID == "" || set.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO flashcard_sets (id, document_id, created_at)
		VALUES (?, ?, ?)
	`, set.ID, set.DocumentID, set.CreatedAt); err != nil {
		return fmt.Errorf("saving flashcard set: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO flashcards (set_id, position, front, back)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, card := range set.Cards {
		if _, err := stmt.ExecContext(ctx, set.ID, i, card.Front, card.Back); err != nil {
			return fmt.Errorf("saving flashcard %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListFlashcardSets returns a document's flashcard sets, newest first.
func (s *studyStore) ListFlashcardSets(ctx context.Context, documentID string) ([]domain.FlashcardSet, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, created_at
		FROM flashcard_sets WHERE document_id = ?
		ORDER BY created_at DESC, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying flashcard sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.FlashcardSet //nolint:prealloc // size unknown from query
	for rows.Next() {
		var set domain.FlashcardSet
		if err := rows.Scan(&set.ID, &set.DocumentID, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning flashcard set: %w", err)
		}
		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flashcard sets: %w", err)
	}

	for i := range sets {
		cards, err := s.loadFlashcards(ctx, sets[i].ID)
		if err != nil {
			return nil, err
		}
		sets[i].Cards = cards
	}

	return sets, nil
}

// loadFlashcards reads a set's cards in position order.
func (s *studyStore) loadFlashcards(ctx context.Context, setID string) ([]domain.Flashcard, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT front, back
		FROM flashcards WHERE set_id = ?
		ORDER BY position
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("querying flashcards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Flashcard //nolint:prealloc // size unknown from query
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.Front, &card.Back); err != nil {
			return nil, fmt.Errorf("scanning flashcard: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flashcards: %w", err)
	}

	return cards, nil
}

// SaveQuizSet stores a quiz and its questions.
func (s *studyStore) SaveQuizSet(ctx context.Context, set *domain.QuizSet) error {
	if set == nil || set.ID == "" || set.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quiz_sets (id, document_id, created_at)
		VALUES (?, ?, ?)
	`, set.ID, set.DocumentID, set.CreatedAt); err != nil {
		return fmt.Errorf("saving quiz set: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quiz_questions (set_id, position, question, options, correct_answer_index, explanation)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, q := range set.Questions {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshalling options: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, set.ID, i, q.Question,
			string(optionsJSON), q.CorrectAnswerIndex, q.Explanation); err != nil {
			return fmt.Errorf("saving quiz question %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListQuizSets returns a document's quizzes, newest first.
func (s *studyStore) ListQuizSets(ctx context.Context, documentID string) ([]domain.QuizSet, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, created_at
		FROM quiz_sets WHERE document_id = ?
		ORDER BY created_at DESC, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying quiz sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.QuizSet //nolint:prealloc // size unknown from query
	for rows.Next() {
		var set domain.QuizSet
		if err := rows.Scan(&set.ID, &set.DocumentID, &set.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning quiz set: %w", err)
		}
		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quiz sets: %w", err)
	}

	for i := range sets {
		questions, err := s.loadQuizQuestions(ctx, sets[i].ID)
		if err != nil {
			return nil, err
		}
		sets[i].Questions = questions
	}

	return sets, nil
}

// loadQuizQuestions reads a set's questions in position order.
func (s *studyStore) loadQuizQuestions(ctx context.Context, setID string) ([]domain.QuizQuestion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT question, options, correct_answer_index, explanation
		FROM quiz_questions WHERE set_id = ?
		ORDER BY position
	`, setID)
	if err != nil {
		return nil, fmt.Errorf("querying quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.QuizQuestion //nolint:prealloc // size unknown from query
	for rows.Next() {
		var q domain.QuizQuestion
		var optionsJSON string
		if err := rows.Scan(&q.Question, &optionsJSON, &q.CorrectAnswerIndex, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scanning quiz question: %w", err)
		}

		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshaling options: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quiz questions: %w", err)
	}

	return questions, nil
}

// SaveStudyNote stores a generated note.
func (s *studyStore) SaveStudyNote(ctx context.Context, note *domain.StudyNote) error {
	if note == nil || note.ID == "" || note.DocumentID == "" {
		return domain.ErrInvalidInput
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO study_notes (id, document_id, mode, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, note.DocumentID, string(note.Mode), note.Content, note.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving study note: %w", err)
	}
	return nil
}

// ListStudyNotes returns a document's notes, newest first.
func (s *studyStore) ListStudyNotes(ctx context.Context, documentID string) ([]domain.StudyNote, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, mode, content, created_at
		FROM study_notes WHERE document_id = ?
		ORDER BY created_at DESC, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying study notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.StudyNote //nolint:prealloc // size unknown from query
	for rows.Next() {
		var note domain.StudyNote
		var mode string
		if err := rows.Scan(&note.ID, &note.DocumentID, &mode, &note.Content, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning study note: %w", err)
		}
		note.Mode = domain.NoteMode(mode)
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study notes: %w", err)
	}

	return notes, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity computes cosine similarity clamped to [0, 1].
// Mismatched or zero-magnitude vectors score 0.
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

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var status string

	if err := row.Scan(&doc.ID, &doc.CourseID, &doc.Filename, &doc.MIMEType, &status,
		&doc.FailureReason, &doc.ChunkCount, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.ProcessingStatus(status)
	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var status string

	if err := rows.Scan(&doc.ID, &doc.CourseID, &doc.Filename, &doc.MIMEType, &status,
		&doc.FailureReason, &doc.ChunkCount, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.ProcessingStatus(status)
	return &doc, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.SequenceIndex,
		&chunk.Content, &embeddingBlob); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
	return &chunk, nil
}

// scanChunkRow scans a chunk from *sql.Row.
func scanChunkRow(row *sql.Row) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte

	if err := row.Scan(&chunk.ID, &chunk.DocumentID, &chunk.SequenceIndex,
		&chunk.Content, &embeddingBlob); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
	return &chunk, nil
}
