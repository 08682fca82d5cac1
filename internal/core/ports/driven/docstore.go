package driven

import (
	"context"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// DocumentStore persists documents and their passages. Every read and
// delete is scoped by owner; an ID that exists under another owner
// behaves exactly like a missing ID (domain.ErrNotFound).
//
// Implementations must be safe for concurrent use and must write a
// document and its passages atomically.
type DocumentStore interface {
	// SaveDocument stores a document together with its passages in a
	// single atomic write.
	SaveDocument(ctx context.Context, doc *domain.Document, passages []domain.Passage) error

	// GetDocument retrieves a document by ID, scoped to the owner.
	GetDocument(ctx context.Context, id, ownerID string) (*domain.Document, error)

	// GetPassages retrieves a document's passages in ingestion order.
	GetPassages(ctx context.Context, documentID string) ([]domain.Passage, error)

	// ListDocuments returns the owner's documents, newest first,
	// optionally filtered by folder (empty folder means all).
	ListDocuments(ctx context.Context, ownerID, folder string) ([]domain.Document, error)

	// DeleteDocument removes a document and its passages, scoped to
	// the owner.
	DeleteDocument(ctx context.Context, id, ownerID string) error

	// DeleteAllDocuments removes every document the owner has and
	// returns how many were deleted.
	DeleteAllDocuments(ctx context.Context, ownerID string) (int, error)

	// MoveFolderDocuments reassigns every document in fromFolder to
	// toFolder and returns how many moved. Used when a folder is
	// deleted without deleting its contents.
	MoveFolderDocuments(ctx context.Context, ownerID, fromFolder, toFolder string) (int, error)
}

// FolderStore persists folders as their own entity. Folders are pure
// organisational metadata; an empty folder never needs a placeholder
// document.
type FolderStore interface {
	// SaveFolder creates a folder. Names are unique per owner;
	// duplicates return domain.ErrAlreadyExists.
	SaveFolder(ctx context.Context, folder *domain.Folder) error

	// ListFolders returns the owner's folders sorted by name.
	ListFolders(ctx context.Context, ownerID string) ([]domain.Folder, error)

	// DeleteFolder removes a folder by name, scoped to the owner.
	// Documents in the folder are not deleted; callers move them to
	// the default folder first.
	DeleteFolder(ctx context.Context, ownerID, name string) error
}
