// Package sqlite provides a SQLite-based implementation of the driven
// storage port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements the
// DocumentStore and FolderStore interfaces through a single database
// connection.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
// Passage embeddings are stored as little-endian float32 blobs alongside the
// passage text, so retrieval can scan an owner's corpus without a separate
// vector index.
//
// # Data Location
//
// By default, the database is stored at ~/.askdocs/data/askdocs.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
