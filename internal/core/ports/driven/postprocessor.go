package driven

import (
	"context"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// PostProcessor processes extracted text to produce passages.
// PostProcessors are chained in a pipeline (e.g., chunking, filtering).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes the full document text and the passages produced
	// so far. A creating processor (the chunker) receives nil passages
	// and returns new ones; a modifying processor receives and returns
	// passages.
	Process(ctx context.Context, doc *domain.Document, text string, passages []domain.Passage) ([]domain.Passage, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the document text through all processors in order.
	Process(ctx context.Context, doc *domain.Document, text string) ([]domain.Passage, error)
}
