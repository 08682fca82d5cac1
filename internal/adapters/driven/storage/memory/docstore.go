// Package memory provides in-memory implementations of the storage
// ports, used for tests and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	passages  map[string][]domain.Passage
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		passages:  make(map[string][]domain.Passage),
	}
}

// SaveDocument stores a document together with its passages atomically.
// A document without passages is never persisted.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document, passages []domain.Passage) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	s.passages[doc.ID] = append([]domain.Passage(nil), passages...)
	return nil
}

// GetDocument retrieves a document by ID, scoped to the owner.
func (s *DocumentStore) GetDocument(_ context.Context, id, ownerID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok || doc.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetPassages retrieves a document's passages in ingestion order.
func (s *DocumentStore) GetPassages(_ context.Context, documentID string) ([]domain.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	passages, ok := s.passages[documentID]
	if !ok {
		return nil, nil
	}
	out := append([]domain.Passage(nil), passages...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// ListDocuments returns the owner's documents, newest first, optionally
// filtered by folder.
func (s *DocumentStore) ListDocuments(_ context.Context, ownerID, folder string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Document
	for id := range s.documents {
		doc := s.documents[id]
		if doc.OwnerID != ownerID {
			continue
		}
		if folder != "" && doc.Folder != folder {
			continue
		}
		result = append(result, doc)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// DeleteDocument removes a document and its passages, scoped to the owner.
func (s *DocumentStore) DeleteDocument(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok || doc.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.passages, id)
	return nil
}

// DeleteAllDocuments removes every document the owner has.
func (s *DocumentStore) DeleteAllDocuments(_ context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, doc := range s.documents {
		if doc.OwnerID != ownerID {
			continue
		}
		delete(s.documents, id)
		delete(s.passages, id)
		count++
	}
	return count, nil
}

// MoveFolderDocuments reassigns every document in fromFolder to toFolder.
func (s *DocumentStore) MoveFolderDocuments(_ context.Context, ownerID, fromFolder, toFolder string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, doc := range s.documents {
		if doc.OwnerID != ownerID || doc.Folder != fromFolder {
			continue
		}
		doc.Folder = toFolder
		doc.UpdatedAt = time.Now().UTC()
		s.documents[id] = doc
		count++
	}
	return count, nil
}
