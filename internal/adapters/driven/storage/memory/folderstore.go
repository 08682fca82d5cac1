package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
)

// Ensure FolderStore implements the interface.
var _ driven.FolderStore = (*FolderStore)(nil)

// FolderStore is an in-memory implementation of driven.FolderStore.
type FolderStore struct {
	mu      sync.RWMutex
	folders map[string]domain.Folder // keyed by ownerID + "/" + name
}

// NewFolderStore creates a new in-memory folder store.
func NewFolderStore() *FolderStore {
	return &FolderStore{
		folders: make(map[string]domain.Folder),
	}
}

func folderKey(ownerID, name string) string {
	return ownerID + "/" + name
}

// SaveFolder creates a folder. Names are unique per owner.
func (s *FolderStore) SaveFolder(_ context.Context, folder *domain.Folder) error {
	if err := folder.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := folderKey(folder.OwnerID, folder.Name)
	if _, exists := s.folders[key]; exists {
		return domain.ErrAlreadyExists
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now().UTC()
	}
	s.folders[key] = *folder
	return nil
}

// ListFolders returns the owner's folders sorted by name.
func (s *FolderStore) ListFolders(_ context.Context, ownerID string) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Folder
	for _, folder := range s.folders {
		if folder.OwnerID == ownerID {
			result = append(result, folder)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// DeleteFolder removes a folder by name, scoped to the owner.
func (s *FolderStore) DeleteFolder(_ context.Context, ownerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := folderKey(ownerID, name)
	if _, exists := s.folders[key]; !exists {
		return domain.ErrNotFound
	}
	delete(s.folders, key)
	return nil
}
