package driven

import (
	"context"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// Extractor converts raw uploaded bytes of one document type into
// UTF-8 text, or fails with a wrapped domain.ErrExtractionFailed.
// The core treats extraction as opaque upstream input: it only needs
// text or a reason there is none.
type Extractor interface {
	// Type returns the document type this extractor handles.
	Type() domain.DocumentType

	// Extract returns the UTF-8 text content of the raw bytes.
	Extract(ctx context.Context, raw []byte) (string, error)
}

// ExtractorRegistry resolves an extractor for a document type, or
// fails with domain.ErrUnsupportedType.
type ExtractorRegistry interface {
	Get(t domain.DocumentType) (Extractor, error)
}
