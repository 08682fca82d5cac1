package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/memory"
	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

func seedDocInFolder(t *testing.T, store *memory.DocumentStore, owner, id, title, folder string, texts ...string) {
	t.Helper()

	passages := make([]domain.Passage, len(texts))
	for i, text := range texts {
		passages[i] = domain.Passage{
			ID:         id + "-p" + string(rune('a'+i)),
			DocumentID: id,
			Text:       text,
			Position:   i,
		}
	}
	doc := &domain.Document{
		ID:      id,
		OwnerID: owner,
		Title:   title,
		Type:    domain.TypeText,
		Folder:  folder,
	}
	require.NoError(t, store.SaveDocument(context.Background(), doc, passages))
}

func TestDocumentList(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocInFolder(t, store, "alice", "doc-1", "first", domain.DefaultFolder, "a", "b")
	seedDocInFolder(t, store, "alice", "doc-2", "second", "work", "c")
	seedDocInFolder(t, store, "bob", "doc-3", "other", domain.DefaultFolder, "d")
	svc := NewDocumentService(store)
	ctx := context.Background()

	details, err := svc.List(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, details, 2)

	byID := map[string]int{}
	for _, d := range details {
		byID[d.ID] = d.PassageCount
	}
	assert.Equal(t, 2, byID["doc-1"])
	assert.Equal(t, 1, byID["doc-2"])

	// Folder filter.
	details, err = svc.List(ctx, "alice", "work")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "doc-2", details[0].ID)

	_, err = svc.List(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentGet(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocInFolder(t, store, "alice", "doc-1", "first", domain.DefaultFolder, "a", "b", "c")
	svc := NewDocumentService(store)
	ctx := context.Background()

	details, err := svc.Get(ctx, "doc-1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "first", details.Title)
	assert.Equal(t, 3, details.PassageCount)
	assert.False(t, details.CreatedAt.IsZero())

	// Another owner's view is indistinguishable from a missing doc.
	_, err = svc.Get(ctx, "doc-1", "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, "missing", "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentContent(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocInFolder(t, store, "alice", "doc-1", "first", domain.DefaultFolder, "one", "two", "three")
	svc := NewDocumentService(store)
	ctx := context.Background()

	content, err := svc.Content(ctx, "doc-1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "one\n\ntwo\n\nthree", content)

	_, err = svc.Content(ctx, "doc-1", "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentDelete(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocInFolder(t, store, "alice", "doc-1", "first", domain.DefaultFolder, "a")
	svc := NewDocumentService(store)
	ctx := context.Background()

	// Wrong owner cannot delete.
	err := svc.Delete(ctx, "doc-1", "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "doc-1", "alice"))
	_, err = svc.Get(ctx, "doc-1", "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentClear(t *testing.T) {
	store := memory.NewDocumentStore()
	seedDocInFolder(t, store, "alice", "doc-1", "first", domain.DefaultFolder, "a")
	seedDocInFolder(t, store, "alice", "doc-2", "second", "work", "b")
	seedDocInFolder(t, store, "bob", "doc-3", "other", domain.DefaultFolder, "c")
	svc := NewDocumentService(store)
	ctx := context.Background()

	count, err := svc.Clear(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Bob's document is untouched.
	details, err := svc.List(ctx, "bob", "")
	require.NoError(t, err)
	assert.Len(t, details, 1)

	_, err = svc.Clear(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
