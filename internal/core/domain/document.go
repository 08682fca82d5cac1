package domain

import (
	"strings"
	"time"
)

// DocumentType identifies the source format of an uploaded document.
// The set is closed; extraction is only defined for these formats.
type DocumentType string

const (
	// TypeText is a plain text document.
	TypeText DocumentType = "txt"

	// TypeMarkdown is a Markdown document.
	TypeMarkdown DocumentType = "md"

	// TypeJSON is a JSON document.
	TypeJSON DocumentType = "json"

	// TypePDF is a PDF document.
	TypePDF DocumentType = "pdf"
)

// Valid reports whether t is one of the supported document types.
func (t DocumentType) Valid() bool {
	switch t {
	case TypeText, TypeMarkdown, TypeJSON, TypePDF:
		return true
	}
	return false
}

// DefaultFolder is the folder documents belong to when none is given.
const DefaultFolder = "root"

// Document represents an ingested document owned by a single user.
// Its passages are created once during ingestion and are immutable
// afterwards; they are deleted together with the document.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// OwnerID identifies the user that owns this document.
	// Every read and delete is scoped to the owner; retrieval
	// never crosses owner boundaries.
	OwnerID string

	// Title is the human-readable title (defaults to the filename).
	Title string

	// Type is the source format the document was extracted from.
	Type DocumentType

	// Folder is the organisational folder name (default "root").
	Folder string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// Passage is a contiguous slice of a document's text stored with its
// own embedding. Passage order within a document is the chunk scan
// order from ingestion and is semantically meaningful: context
// assembly concatenates passages in this order, not in score order.
type Passage struct {
	// ID is the unique identifier for the passage.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Text is the literal slice of source content, trimmed.
	Text string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation used for similarity
	// scoring. Persisted vectors are reconciled to the canonical
	// dimensionality, but stored data from earlier schema versions
	// may carry a different length and must still be scorable.
	Embedding []float32

	// Dimensions records the vector length the passage was written
	// with, so readers need not guess from the raw slice.
	Dimensions int

	// Metadata carries citation and provenance fields.
	Metadata PassageMetadata
}

// PassageMetadata locates a passage within its source document.
type PassageMetadata struct {
	// Source is the document title or filename the passage came from.
	Source string

	// StartIndex is the byte offset of the passage start in the
	// original text. 0 <= StartIndex < EndIndex <= len(original).
	StartIndex int

	// EndIndex is the byte offset just past the passage end.
	EndIndex int

	// Page is the source page number, when the format has pages.
	// Zero means unknown.
	Page int
}

// Validate checks document construction invariants.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.OwnerID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(d.Title) == "" {
		return ErrInvalidInput
	}
	if !d.Type.Valid() {
		return ErrUnsupportedType
	}
	return nil
}
