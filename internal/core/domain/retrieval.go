package domain

// Granularity selects how top-K truncation is applied during retrieval.
type Granularity string

const (
	// GranularityPassage ranks individual passages and keeps the K
	// highest-scoring passages across all documents.
	GranularityPassage Granularity = "passage"

	// GranularityDocument ranks documents by their best passage score
	// and keeps all scored passages of the K highest-scoring documents.
	GranularityDocument Granularity = "document"
)

// Retrieval defaults applied when the caller gives none.
const (
	// DefaultRetrievalLimit is the top-K cutoff.
	DefaultRetrievalLimit = 5

	// DefaultMaxDocuments caps how many documents one query scans.
	DefaultMaxDocuments = 10

	// DefaultMaxPassages caps how many passages one query scores.
	DefaultMaxPassages = 100
)

// DefaultDimensions is the canonical embedding vector length. Every
// stored and queried vector is reconciled to this size.
const DefaultDimensions = 128

// RetrievalOptions configures a retrieval pass.
type RetrievalOptions struct {
	// Limit is the top-K cutoff (default DefaultRetrievalLimit).
	Limit int

	// Granularity selects passage- or document-level top-K.
	Granularity Granularity

	// MaxDocuments caps how many documents a single query scans.
	// Zero means the deployment default.
	MaxDocuments int

	// MaxPassages caps how many passages a single query scores.
	// Zero means the deployment default.
	MaxPassages int
}

// RetrievalResult is a single scored hit from a linear scan.
type RetrievalResult struct {
	// Passage is the scored passage.
	Passage Passage

	// Score is the cosine similarity against the query embedding.
	Score float64

	// DocumentID links to the source document.
	DocumentID string

	// DocumentTitle is the source document's title, used for grouping
	// and citation display.
	DocumentTitle string
}

// GroundingContext is the assembled support for answer generation.
type GroundingContext struct {
	// Text is the concatenated passage text under document headers,
	// in document order then ingestion order. Empty when nothing was
	// retrieved.
	Text string

	// Citations lists the sources backing the context.
	Citations []Citation

	// Grounded is false when retrieval found nothing; the generator
	// is then instructed to answer from general knowledge and say so.
	Grounded bool
}

// Citation points a generated answer back at its source material.
type Citation struct {
	// Source is the document title the excerpt came from.
	Source string

	// Excerpt is the first ~200 characters of the supporting text.
	Excerpt string

	// Page is the source page, when known.
	Page int
}

// Answer is the user-facing result of an ask request. Asking never
// hard-fails: grounding is best effort and generation failures are
// substituted with a fixed apology.
type Answer struct {
	// Text is the generated (or fallback) answer.
	Text string

	// Citations lists the grounding sources, possibly empty.
	Citations []Citation

	// Grounded reports whether any passages backed the answer.
	Grounded bool

	// GenerationFailed is set when the generation provider errored
	// and Text is the fixed fallback message.
	GenerationFailed bool
}
