package driving

import (
	"context"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// IngestRequest describes one document upload.
type IngestRequest struct {
	// OwnerID identifies the uploading user (required).
	OwnerID string

	// Title is the document title; defaults to the source label.
	Title string

	// Type is the declared source format (required).
	Type domain.DocumentType

	// Folder is the destination folder (default "root").
	Folder string

	// Raw is the uploaded file content.
	Raw []byte
}

// IngestResult summarises a successful ingestion.
type IngestResult struct {
	// DocumentID is the persisted document's ID.
	DocumentID string

	// Title is the persisted title.
	Title string

	// PassageCount is how many passages were stored.
	PassageCount int

	// Degraded is true when at least one passage was embedded with the
	// lexical fallback because the provider was unavailable.
	Degraded bool
}

// IngestService turns uploaded files into persisted, embedded passages.
type IngestService interface {
	// Ingest extracts, chunks, embeds and persists one document.
	// It fails with domain.ErrEmptyDocument when no text could be
	// extracted and domain.ErrNoChunks when no passage survived.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}
