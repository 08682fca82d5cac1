package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driving"
	"github.com/ferrule-labs/askdocs/internal/logger"
)

// Ensure FolderService implements the interface.
var _ driving.FolderService = (*FolderService)(nil)

// FolderService manages an owner's folders. Folders are pure metadata:
// creating one stores a folder row, never a placeholder document, and
// deleting one moves its documents to the default folder.
type FolderService struct {
	folderStore driven.FolderStore
	docStore    driven.DocumentStore
}

// NewFolderService creates a new folder service.
func NewFolderService(folderStore driven.FolderStore, docStore driven.DocumentStore) *FolderService {
	return &FolderService{
		folderStore: folderStore,
		docStore:    docStore,
	}
}

// Create makes a new, possibly empty, folder.
func (s *FolderService) Create(ctx context.Context, ownerID, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if ownerID == "" || name == "" {
		return nil, fmt.Errorf("%w: owner and folder name are required", domain.ErrInvalidInput)
	}
	if name == domain.DefaultFolder {
		return nil, fmt.Errorf("%w: folder %q always exists", domain.ErrAlreadyExists, name)
	}

	folder := &domain.Folder{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.folderStore.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}

	logger.Info("Created folder %q", name)
	return folder, nil
}

// List returns the owner's folders sorted by name.
func (s *FolderService) List(ctx context.Context, ownerID string) ([]domain.Folder, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	return s.folderStore.ListFolders(ctx, ownerID)
}

// Delete removes a folder. Its documents are moved to the default
// folder first so nothing is lost.
func (s *FolderService) Delete(ctx context.Context, ownerID, name string) error {
	if ownerID == "" || name == "" {
		return fmt.Errorf("%w: owner and folder name are required", domain.ErrInvalidInput)
	}
	if name == domain.DefaultFolder {
		return fmt.Errorf("%w: folder %q cannot be deleted", domain.ErrInvalidInput, name)
	}

	moved, err := s.docStore.MoveFolderDocuments(ctx, ownerID, name, domain.DefaultFolder)
	if err != nil {
		return fmt.Errorf("move documents: %w", err)
	}
	if moved > 0 {
		logger.Info("Moved %d documents from %q to %q", moved, name, domain.DefaultFolder)
	}

	return s.folderStore.DeleteFolder(ctx, ownerID, name)
}
