package domain

import (
	"strings"
	"time"
)

// Folder is a lightweight organisational entity. Folders exist
// independently of documents: an empty folder is a folder row, never a
// placeholder document, so listings and retrieval need no sentinel
// filtering.
type Folder struct {
	// ID is the unique identifier for the folder.
	ID string

	// OwnerID identifies the user that owns this folder.
	OwnerID string

	// Name is the folder name, unique per owner.
	Name string

	// CreatedAt is when the folder was created.
	CreatedAt time.Time
}

// Validate checks folder construction invariants.
func (f *Folder) Validate() error {
	if strings.TrimSpace(f.OwnerID) == "" || strings.TrimSpace(f.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}
