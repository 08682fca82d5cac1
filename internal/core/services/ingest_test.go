package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/memory"
	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driving"
)

func newTestIngest() (*IngestService, *memory.DocumentStore, *mockEmbedder, *mockPipeline) {
	store := memory.NewDocumentStore()
	embedder := newMockEmbedder()
	pipeline := &mockPipeline{}
	svc := NewIngestService(store, &mockRegistry{}, pipeline, embedder)
	return svc, store, embedder, pipeline
}

func TestIngestHappyPath(t *testing.T) {
	svc, store, _, _ := newTestIngest()
	ctx := context.Background()

	result, err := svc.Ingest(ctx, driving.IngestRequest{
		OwnerID: "alice",
		Title:   "notes",
		Type:    domain.TypeText,
		Raw:     []byte("first paragraph\n\nsecond paragraph"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.DocumentID)
	assert.Equal(t, "notes", result.Title)
	assert.Equal(t, 2, result.PassageCount)
	assert.False(t, result.Degraded)

	doc, err := store.GetDocument(ctx, result.DocumentID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "notes", doc.Title)
	assert.Equal(t, domain.DefaultFolder, doc.Folder)

	passages, err := store.GetPassages(ctx, result.DocumentID)
	require.NoError(t, err)
	require.Len(t, passages, 2)
	for i, p := range passages {
		assert.Equal(t, i, p.Position)
		assert.Len(t, p.Embedding, 3)
		assert.Equal(t, 3, p.Dimensions)
	}
}

func TestIngestDefaultsTitleAndFolder(t *testing.T) {
	svc, store, _, _ := newTestIngest()
	ctx := context.Background()

	result, err := svc.Ingest(ctx, driving.IngestRequest{
		OwnerID: "alice",
		Type:    domain.TypeText,
		Raw:     []byte("some content"),
	})
	require.NoError(t, err)
	assert.Equal(t, "untitled", result.Title)

	doc, err := store.GetDocument(ctx, result.DocumentID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFolder, doc.Folder)
}

func TestIngestShortChunksUseSketch(t *testing.T) {
	svc, _, embedder, _ := newTestIngest()

	_, err := svc.Ingest(context.Background(), driving.IngestRequest{
		OwnerID: "alice",
		Title:   "short",
		Type:    domain.TypeText,
		Raw:     []byte("tiny chunk\n\nanother tiny chunk"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, embedder.sketchCalls)
	assert.Equal(t, 0, embedder.embedCalls)
}

func TestIngestLongChunksUseProvider(t *testing.T) {
	svc, _, embedder, _ := newTestIngest()

	long := strings.Repeat("lengthy content about systems ", 20) // > 500 chars
	_, err := svc.Ingest(context.Background(), driving.IngestRequest{
		OwnerID: "alice",
		Title:   "long",
		Type:    domain.TypeText,
		Raw:     []byte(long),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, embedder.embedCalls)
	assert.Equal(t, 0, embedder.sketchCalls)
}

func TestIngestBoundsEmbeddingConcurrency(t *testing.T) {
	svc, _, embedder, _ := newTestIngest()

	// Many long chunks, each forcing a provider call.
	long := strings.Repeat("lengthy content about systems ", 20)
	parts := make([]string, 16)
	for i := range parts {
		parts[i] = fmt.Sprintf("%s section %d", long, i)
	}
	_, err := svc.Ingest(context.Background(), driving.IngestRequest{
		OwnerID: "alice",
		Title:   "bulk",
		Type:    domain.TypeText,
		Raw:     []byte(strings.Join(parts, "\n\n")),
	})
	require.NoError(t, err)

	assert.Equal(t, 16, embedder.embedCalls)
	assert.LessOrEqual(t, embedder.maxInFlight, embedConcurrency)
}

func TestIngestDegradedEmbedding(t *testing.T) {
	svc, _, embedder, _ := newTestIngest()
	embedder.mode = driven.ModeLexical

	long := strings.Repeat("lengthy content about systems ", 20)
	result, err := svc.Ingest(context.Background(), driving.IngestRequest{
		OwnerID: "alice",
		Title:   "degraded",
		Type:    domain.TypeText,
		Raw:     []byte(long),
	})
	require.NoError(t, err)
	assert.True(t, result.Degraded)
}

func TestIngestValidation(t *testing.T) {
	svc, _, _, _ := newTestIngest()
	ctx := context.Background()

	_, err := svc.Ingest(ctx, driving.IngestRequest{
		Type: domain.TypeText,
		Raw:  []byte("content"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Ingest(ctx, driving.IngestRequest{
		OwnerID: "alice",
		Type:    domain.DocumentType("docx"),
		Raw:     []byte("content"),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestIngestEmptyDocument(t *testing.T) {
	svc, store, _, _ := newTestIngest()
	ctx := context.Background()

	_, err := svc.Ingest(ctx, driving.IngestRequest{
		OwnerID: "alice",
		Title:   "blank",
		Type:    domain.TypeText,
		Raw:     []byte("   \n\t  "),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)

	docs, err := store.ListDocuments(ctx, "alice", "")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngestNoChunks(t *testing.T) {
	svc, store, _, pipeline := newTestIngest()
	pipeline.passages = []domain.Passage{{Text: "   "}, {Text: ""}}
	ctx := context.Background()

	_, err := svc.Ingest(ctx, driving.IngestRequest{
		OwnerID: "alice",
		Title:   "hollow",
		Type:    domain.TypeText,
		Raw:     []byte("real input text"),
	})
	assert.ErrorIs(t, err, domain.ErrNoChunks)

	// Nothing persisted for a failed ingestion.
	docs, err := store.ListDocuments(ctx, "alice", "")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestIngestPipelineError(t *testing.T) {
	svc, _, _, pipeline := newTestIngest()
	pipeline.err = errors.New("chunker exploded")

	_, err := svc.Ingest(context.Background(), driving.IngestRequest{
		OwnerID: "alice",
		Title:   "doomed",
		Type:    domain.TypeText,
		Raw:     []byte("content"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunker exploded")
}

func TestIngestExtractorError(t *testing.T) {
	store := memory.NewDocumentStore()
	registry := &mockRegistry{extractErr: domain.ErrExtractionFailed}
	svc := NewIngestService(store, registry, &mockPipeline{}, newMockEmbedder())

	_, err := svc.Ingest(context.Background(), driving.IngestRequest{
		OwnerID: "alice",
		Title:   "garbled",
		Type:    domain.TypePDF,
		Raw:     []byte{0xff, 0xfe},
	})
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestIngestReplacesExistingPassagesOnReingest(t *testing.T) {
	svc, store, _, _ := newTestIngest()
	ctx := context.Background()

	first, err := svc.Ingest(ctx, driving.IngestRequest{
		OwnerID: "alice",
		Title:   "v1",
		Type:    domain.TypeText,
		Raw:     []byte("one\n\ntwo\n\nthree"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, first.PassageCount)

	second, err := svc.Ingest(ctx, driving.IngestRequest{
		OwnerID: "alice",
		Title:   "v2",
		Type:    domain.TypeText,
		Raw:     []byte("just one"),
	})
	require.NoError(t, err)

	// Each ingestion is its own document.
	assert.NotEqual(t, first.DocumentID, second.DocumentID)
	passages, err := store.GetPassages(ctx, second.DocumentID)
	require.NoError(t, err)
	assert.Len(t, passages, 1)
}
