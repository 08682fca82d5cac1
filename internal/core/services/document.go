package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driving"
	"github.com/ferrule-labs/askdocs/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages an owner's documents.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// List returns the owner's documents, newest first, optionally filtered
// by folder.
func (s *DocumentService) List(ctx context.Context, ownerID, folder string) ([]driving.DocumentDetails, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}

	docs, err := s.docStore.ListDocuments(ctx, ownerID, folder)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	details := make([]driving.DocumentDetails, 0, len(docs))
	for _, doc := range docs {
		passages, err := s.docStore.GetPassages(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("get passages for %s: %w", doc.ID, err)
		}
		details = append(details, toDetails(&doc, len(passages)))
	}
	return details, nil
}

// Get retrieves details for a single document, scoped to the owner.
func (s *DocumentService) Get(ctx context.Context, id, ownerID string) (*driving.DocumentDetails, error) {
	doc, err := s.docStore.GetDocument(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	passages, err := s.docStore.GetPassages(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("get passages: %w", err)
	}

	details := toDetails(doc, len(passages))
	return &details, nil
}

// Content returns the concatenated passage text in ingestion order.
func (s *DocumentService) Content(ctx context.Context, id, ownerID string) (string, error) {
	// Ownership check first; passages are keyed by document only.
	if _, err := s.docStore.GetDocument(ctx, id, ownerID); err != nil {
		return "", err
	}

	passages, err := s.docStore.GetPassages(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get passages: %w", err)
	}

	texts := make([]string, 0, len(passages))
	for _, passage := range passages {
		texts = append(texts, passage.Text)
	}
	return strings.Join(texts, "\n\n"), nil
}

// Delete removes a document and its passages, scoped to the owner.
func (s *DocumentService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.docStore.DeleteDocument(ctx, id, ownerID); err != nil {
		return err
	}
	logger.Info("Deleted document %s", id)
	return nil
}

// Clear removes every document the owner has and returns the count.
func (s *DocumentService) Clear(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}

	count, err := s.docStore.DeleteAllDocuments(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("clear documents: %w", err)
	}
	logger.Info("Cleared %d documents", count)
	return count, nil
}

func toDetails(doc *domain.Document, passageCount int) driving.DocumentDetails {
	return driving.DocumentDetails{
		ID:           doc.ID,
		Title:        doc.Title,
		Type:         doc.Type,
		Folder:       doc.Folder,
		PassageCount: passageCount,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
