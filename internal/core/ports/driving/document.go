package driving

import (
	"context"
	"time"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// DocumentDetails is a display-oriented summary of a document.
type DocumentDetails struct {
	ID           string
	Title        string
	Type         domain.DocumentType
	Folder       string
	PassageCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocumentService manages an owner's documents.
type DocumentService interface {
	// List returns the owner's documents, newest first, optionally
	// filtered by folder.
	List(ctx context.Context, ownerID, folder string) ([]DocumentDetails, error)

	// Get retrieves details for a single document, scoped to the owner.
	Get(ctx context.Context, id, ownerID string) (*DocumentDetails, error)

	// Content returns the concatenated passage text in ingestion order.
	Content(ctx context.Context, id, ownerID string) (string, error)

	// Delete removes a document and its passages, scoped to the owner.
	Delete(ctx context.Context, id, ownerID string) error

	// Clear removes every document the owner has and returns the count.
	Clear(ctx context.Context, ownerID string) (int, error)
}

// FolderService manages an owner's folders.
type FolderService interface {
	// Create makes a new, possibly empty, folder.
	Create(ctx context.Context, ownerID, name string) (*domain.Folder, error)

	// List returns the owner's folders sorted by name.
	List(ctx context.Context, ownerID string) ([]domain.Folder, error)

	// Delete removes a folder; its documents move to the default folder.
	Delete(ctx context.Context, ownerID, name string) error
}
