package driving

import (
	"context"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// AskService answers questions grounded in the owner's documents.
type AskService interface {
	// Ask embeds the question, retrieves the most relevant passages
	// for the owner, and generates an answer from the assembled
	// context. Asking never hard-fails on missing grounding or
	// generation errors; the Answer carries the degradation flags.
	Ask(ctx context.Context, ownerID, question string, opts domain.RetrievalOptions) (*domain.Answer, error)

	// Retrieve exposes the raw ranked passages for an embedded query,
	// strictly scoped to the owner.
	Retrieve(ctx context.Context, ownerID, question string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error)
}
