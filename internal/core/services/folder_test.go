package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/memory"
	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

func newTestFolders(t *testing.T) (*FolderService, *memory.DocumentStore) {
	t.Helper()
	docStore := memory.NewDocumentStore()
	return NewFolderService(memory.NewFolderStore(), docStore), docStore
}

func TestFolderCreate(t *testing.T) {
	svc, _ := newTestFolders(t)
	ctx := context.Background()

	folder, err := svc.Create(ctx, "alice", "  projects  ")
	require.NoError(t, err)
	assert.NotEmpty(t, folder.ID)
	assert.Equal(t, "projects", folder.Name)
	assert.Equal(t, "alice", folder.OwnerID)

	// Duplicate name for the same owner.
	_, err = svc.Create(ctx, "alice", "projects")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Same name under a different owner is fine.
	_, err = svc.Create(ctx, "bob", "projects")
	assert.NoError(t, err)
}

func TestFolderCreateValidation(t *testing.T) {
	svc, _ := newTestFolders(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, "", "projects")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// The default folder always exists and cannot be recreated.
	_, err = svc.Create(ctx, "alice", domain.DefaultFolder)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestFolderList(t *testing.T) {
	svc, _ := newTestFolders(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := svc.Create(ctx, "alice", name)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "bob", "other")
	require.NoError(t, err)

	folders, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, folders, 3)
	assert.Equal(t, "alpha", folders[0].Name)
	assert.Equal(t, "mid", folders[1].Name)
	assert.Equal(t, "zeta", folders[2].Name)
}

func TestFolderDeleteMovesDocuments(t *testing.T) {
	svc, docStore := newTestFolders(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "alice", "work")
	require.NoError(t, err)
	seedDocInFolder(t, docStore, "alice", "doc-1", "report", "work", "text")
	seedDocInFolder(t, docStore, "alice", "doc-2", "memo", "work", "text")

	require.NoError(t, svc.Delete(ctx, "alice", "work"))

	// Documents survive in the default folder.
	docs, err := docStore.ListDocuments(ctx, "alice", domain.DefaultFolder)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	folders, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestFolderDeleteValidation(t *testing.T) {
	svc, _ := newTestFolders(t)
	ctx := context.Background()

	err := svc.Delete(ctx, "alice", domain.DefaultFolder)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.Delete(ctx, "alice", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
