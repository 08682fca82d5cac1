package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driving"
	"github.com/ferrule-labs/askdocs/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// shortTextThreshold is the chunk length below which ingestion uses the
// cheap hash sketch instead of a provider round trip.
const shortTextThreshold = 500

// defaultTitle is used when an upload carries no title.
const defaultTitle = "untitled"

// embedConcurrency caps in-flight embedding calls during ingestion.
const embedConcurrency = 4

// IngestService turns uploaded files into persisted, embedded passages.
type IngestService struct {
	docStore   driven.DocumentStore
	extractors driven.ExtractorRegistry
	pipeline   driven.PostProcessorPipeline
	embedder   driven.Embedder
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	docStore driven.DocumentStore,
	extractors driven.ExtractorRegistry,
	pipeline driven.PostProcessorPipeline,
	embedder driven.Embedder,
) *IngestService {
	return &IngestService{
		docStore:   docStore,
		extractors: extractors,
		pipeline:   pipeline,
		embedder:   embedder,
	}
}

// Ingest extracts, chunks, embeds and persists one document. The write
// is all-or-nothing: a failure anywhere leaves no partial document
// behind.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	logger.Section("Ingestion")

	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidInput)
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, req.Type)
	}
	if req.Title == "" {
		req.Title = defaultTitle
	}
	if req.Folder == "" {
		req.Folder = domain.DefaultFolder
	}

	logger.Debug("Ingesting %q (type=%s, folder=%s, %d bytes)",
		req.Title, req.Type, req.Folder, len(req.Raw))

	extractor, err := s.extractors.Get(req.Type)
	if err != nil {
		return nil, err
	}

	text, err := extractor.Extract(ctx, req.Raw)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyDocument
	}
	logger.Debug("Extracted %d characters", len(text))

	doc := &domain.Document{
		ID:      uuid.New().String(),
		OwnerID: req.OwnerID,
		Title:   req.Title,
		Type:    req.Type,
		Folder:  req.Folder,
	}

	passages, err := s.pipeline.Process(ctx, doc, text)
	if err != nil {
		return nil, fmt.Errorf("process document: %w", err)
	}

	passages = dropEmptyPassages(passages)
	if len(passages) == 0 {
		return nil, domain.ErrNoChunks
	}
	logger.Debug("Produced %d passages", len(passages))

	degraded := s.embedPassages(ctx, passages)
	if degraded {
		logger.Warn("Embedding provider unavailable, stored lexical fallback vectors")
	}

	// Nothing is persisted for an abandoned request.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.docStore.SaveDocument(ctx, doc, passages); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Info("Ingested %q: %d passages", doc.Title, len(passages))
	return &driving.IngestResult{
		DocumentID:   doc.ID,
		Title:        doc.Title,
		PassageCount: len(passages),
		Degraded:     degraded,
	}, nil
}

// embedPassages fills in each passage's embedding through a bounded
// worker pool, preserving passage order. Short chunks take the sketch
// path; the rest go through the provider-first embedder. Returns true
// if any vector came from the degraded lexical fallback.
func (s *IngestService) embedPassages(ctx context.Context, passages []domain.Passage) bool {
	var wg sync.WaitGroup
	sem := make(chan struct{}, embedConcurrency)
	modes := make([]driven.EmbeddingMode, len(passages))

	for i := range passages {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			var embedding driven.Embedding
			if len(passages[i].Text) < shortTextThreshold {
				embedding = s.embedder.Sketch(passages[i].Text)
			} else {
				embedding = s.embedder.Embed(ctx, passages[i].Text)
			}

			passages[i].Embedding = embedding.Vector
			passages[i].Dimensions = len(embedding.Vector)
			modes[i] = embedding.Mode
		}()
	}
	wg.Wait()

	for _, mode := range modes {
		if mode.Degraded() {
			return true
		}
	}
	return false
}

// dropEmptyPassages filters out passages whose text is blank. The
// chunker should never emit them, but a defective passage must not
// reach the store.
func dropEmptyPassages(passages []domain.Passage) []domain.Passage {
	kept := passages[:0]
	for _, p := range passages {
		if strings.TrimSpace(p.Text) == "" {
			logger.Warn("Dropping empty passage at position %d", p.Position)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
