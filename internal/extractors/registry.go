// Package extractors converts raw uploaded bytes into UTF-8 text for
// the supported document formats.
package extractors

import (
	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/extractors/jsondoc"
	"github.com/ferrule-labs/askdocs/internal/extractors/markdown"
	"github.com/ferrule-labs/askdocs/internal/extractors/pdf"
	"github.com/ferrule-labs/askdocs/internal/extractors/plaintext"
)

// Registry maps document types to their extractors.
type Registry struct {
	extractors map[domain.DocumentType]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.DocumentType]driven.Extractor),
	}
}

// Register adds an extractor, replacing any previous one for its type.
func (r *Registry) Register(e driven.Extractor) {
	r.extractors[e.Type()] = e
}

// Get returns the extractor for a document type.
func (r *Registry) Get(t domain.DocumentType) (driven.Extractor, error) {
	e, ok := r.extractors[t]
	if !ok {
		return nil, domain.ErrUnsupportedType
	}
	return e, nil
}

// RegisterDefaults registers extractors for the full supported type set.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(jsondoc.New())
	r.Register(pdf.New())
}
