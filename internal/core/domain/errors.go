package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Ownership violations surface as ErrNotFound as well: a document
	// belonging to another owner must be indistinguishable from a
	// document that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyDocument indicates extraction produced no usable text.
	ErrEmptyDocument = errors.New("document has no extractable text")

	// ErrNoChunks indicates chunking produced zero chunks, or every
	// chunk failed during ingestion. The document is not persisted.
	ErrNoChunks = errors.New("no chunks produced")

	// ErrExtractionFailed indicates the raw bytes could not be
	// converted to UTF-8 text.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrLLMUnavailable indicates the generation service is not
	// configured. Answers fall back to retrieval context only.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding provider is not
	// configured. The lexical fallback is used instead.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
