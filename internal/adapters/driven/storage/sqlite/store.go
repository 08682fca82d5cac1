package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// document and folder store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.askdocs/data/askdocs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askdocs", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "askdocs.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
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

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// FolderStore returns a FolderStore interface backed by this store.
func (s *Store) FolderStore() driven.FolderStore {
	return &folderStore{store: s}
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
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

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores a document and its passages in one transaction.
// A document without passages is never persisted.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document, passages []domain.Passage) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if len(passages) == 0 {
		return fmt.Errorf("%w: document must have at least one passage", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, title, type, folder, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			folder = excluded.folder,
			updated_at = excluded.updated_at
	`, doc.ID, doc.OwnerID, doc.Title, string(doc.Type), doc.Folder,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	// Re-ingestion replaces the passage set wholesale.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM passages WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("clearing passages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO passages (id, document_id, text, position, embedding, dimensions, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, passage := range passages {
		metadataJSON, err := json.Marshal(passage.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling passage metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(passage.Embedding)

		if _, err := stmt.ExecContext(ctx, passage.ID, doc.ID, passage.Text,
			passage.Position, embeddingBlob, passage.Dimensions, string(metadataJSON)); err != nil {
			return fmt.Errorf("saving passage: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID, scoped to the owner.
func (s *documentStore) GetDocument(ctx context.Context, id, ownerID string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, type, folder, created_at, updated_at
		FROM documents WHERE id = ? AND owner_id = ?
	`, id, ownerID)

	return scanDocument(row)
}

// GetPassages retrieves all passages for a document in ingestion order.
func (s *documentStore) GetPassages(ctx context.Context, documentID string) ([]domain.Passage, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, text, position, embedding, dimensions, metadata
		FROM passages WHERE document_id = ?
		ORDER BY position
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying passages: %w", err)
	}
	defer rows.Close()

	var passages []domain.Passage //nolint:prealloc // size unknown from query
	for rows.Next() {
		passage, err := scanPassage(rows)
		if err != nil {
			return nil, err
		}
		passages = append(passages, *passage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passages: %w", err)
	}

	return passages, nil
}

// ListDocuments returns the owner's documents, newest first. An empty
// folder matches every folder.
func (s *documentStore) ListDocuments(ctx context.Context, ownerID, folder string) ([]domain.Document, error) {
	query := `
		SELECT id, owner_id, title, type, folder, created_at, updated_at
		FROM documents WHERE owner_id = ?
	`
	args := []any{ownerID}
	if folder != "" {
		query += " AND folder = ?"
		args = append(args, folder)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.store.db.QueryContext(ctx, query, args...)
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

// DeleteDocument removes a document and its passages, scoped to the owner.
func (s *documentStore) DeleteDocument(ctx context.Context, id, ownerID string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deletion: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAllDocuments removes every document the owner has.
func (s *documentStore) DeleteAllDocuments(ctx context.Context, ownerID string) (int, error) {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM documents WHERE owner_id = ?", ownerID)
	if err != nil {
		return 0, fmt.Errorf("deleting documents: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deletion: %w", err)
	}
	return int(affected), nil
}

// MoveFolderDocuments reassigns every document in fromFolder to toFolder.
func (s *documentStore) MoveFolderDocuments(ctx context.Context, ownerID, fromFolder, toFolder string) (int, error) {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET folder = ?, updated_at = ?
		WHERE owner_id = ? AND folder = ?
	`, toFolder, time.Now().UTC(), ownerID, fromFolder)
	if err != nil {
		return 0, fmt.Errorf("moving documents: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking move: %w", err)
	}
	return int(affected), nil
}

// ==================== Folder Store ====================

// folderStore implements driven.FolderStore.
type folderStore struct {
	store *Store
}

var _ driven.FolderStore = (*folderStore)(nil)

// SaveFolder creates a folder. Names are unique per owner.
func (s *folderStore) SaveFolder(ctx context.Context, folder *domain.Folder) error {
	if err := folder.Validate(); err != nil {
		return err
	}

	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO folders (id, owner_id, name, created_at)
		VALUES (?, ?, ?, ?)
	`, folder.ID, folder.OwnerID, folder.Name, folder.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("saving folder: %w", err)
	}
	return nil
}

// ListFolders returns the owner's folders sorted by name.
func (s *folderStore) ListFolders(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, owner_id, name, created_at
		FROM folders WHERE owner_id = ?
		ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	var folders []domain.Folder //nolint:prealloc // size unknown from query
	for rows.Next() {
		var folder domain.Folder
		var createdAt sql.NullTime
		if err := rows.Scan(&folder.ID, &folder.OwnerID, &folder.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		if createdAt.Valid {
			folder.CreatedAt = createdAt.Time
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folders: %w", err)
	}

	return folders, nil
}

// DeleteFolder removes a folder by name, scoped to the owner.
func (s *folderStore) DeleteFolder(ctx context.Context, ownerID, name string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM folders WHERE owner_id = ? AND name = ?", ownerID, name)
	if err != nil {
		return fmt.Errorf("deleting folder: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deletion: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

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

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var docType string

	if err := row.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &docType,
		&doc.Folder, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Type = domain.DocumentType(docType)
	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var docType string

	if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Title, &docType,
		&doc.Folder, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Type = domain.DocumentType(docType)
	return &doc, nil
}

// scanPassage scans a passage from *sql.Rows.
func scanPassage(rows *sql.Rows) (*domain.Passage, error) {
	var passage domain.Passage
	var embeddingBlob []byte
	var metadataJSON sql.NullString

	if err := rows.Scan(&passage.ID, &passage.DocumentID, &passage.Text,
		&passage.Position, &embeddingBlob, &passage.Dimensions, &metadataJSON); err != nil {
		return nil, fmt.Errorf("scanning passage: %w", err)
	}

	passage.Embedding = bytesToFloat32Slice(embeddingBlob)

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &passage.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling passage metadata: %w", err)
		}
	}

	return &passage, nil
}
