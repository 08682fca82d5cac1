// Package chunker provides boundary-aware text chunking with overlap.
package chunker

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

// DefaultTargetChunks is the number of chunks a document is aimed at.
const DefaultTargetChunks = 10

// DefaultOverlap is the requested overlap between consecutive chunks
// in bytes, before the percentage cap is applied.
const DefaultOverlap = 400

// smallDocThreshold is the text length below which splitting is not
// worth it and the whole document becomes a single chunk.
const smallDocThreshold = 1000

// minChunkSize floors the chunk size so a large targetChunks on a
// small document cannot produce pathologically tiny chunks.
const minChunkSize = 500

// maxOverlapFraction caps overlap at a share of the chunk size so
// near-duplicate chunks cannot dominate a small document.
const maxOverlapFraction = 0.2

// breakpointFraction is how far into a chunk a sentence boundary must
// sit before the cut is allowed to snap back to it.
const breakpointFraction = 0.7

// Processor splits document text into overlapping passages, preferring
// sentence and line boundaries over mid-sentence cuts.
// It implements the PostProcessor interface.
type Processor struct {
	targetChunks int
	overlap      int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithTargetChunks sets how many chunks to aim for. Values are taken
// as given; Process rejects non-positive targets.
func WithTargetChunks(n int) Option {
	return func(p *Processor) {
		p.targetChunks = n
	}
}

// WithOverlap sets the requested overlap between chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		targetChunks: DefaultTargetChunks,
		overlap:      DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits text into passages with original-text byte offsets.
// Offsets always index the untrimmed input, so citations can point
// back into the source even though passage text is trimmed.
func (p *Processor) Process(
	_ context.Context, doc *domain.Document, text string, _ []domain.Passage,
) ([]domain.Passage, error) {
	if p.targetChunks <= 0 {
		return nil, domain.ErrInvalidInput
	}

	if len(text) < smallDocThreshold {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, nil
		}
		return []domain.Passage{p.passage(doc, trimmed, 0, 0, len(text))}, nil
	}

	baseChunkSize := (len(text) + p.targetChunks - 1) / p.targetChunks
	effectiveChunkSize := baseChunkSize
	if effectiveChunkSize < minChunkSize {
		effectiveChunkSize = minChunkSize
	}

	safeOverlap := p.overlap
	if maxOverlap := int(math.Floor(float64(effectiveChunkSize) * maxOverlapFraction)); safeOverlap > maxOverlap {
		safeOverlap = maxOverlap
	}

	var passages []domain.Passage
	start := 0
	position := 0

	// The iteration cap is a second progress guard on top of the
	// strict-advance check below.
	for iter := 0; iter < 2*p.targetChunks && start < len(text); iter++ {
		end := start + effectiveChunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) {
			end = snapToBreakpoint(text, start, end, effectiveChunkSize)
		}

		if trimmed := strings.TrimSpace(text[start:end]); trimmed != "" {
			passages = append(passages, p.passage(doc, trimmed, position, start, end))
			position++
		}

		next := end - safeOverlap
		if next <= start {
			break
		}
		start = next
	}

	return passages, nil
}

// snapToBreakpoint moves end back to just after the last sentence
// period or newline in [start, end), provided the breakpoint is far
// enough into the chunk that snapping does not create a tiny chunk.
func snapToBreakpoint(text string, start, end, chunkSize int) int {
	window := text[start:end]
	breakpoint := strings.LastIndexByte(window, '.')
	if nl := strings.LastIndexByte(window, '\n'); nl > breakpoint {
		breakpoint = nl
	}
	if breakpoint < 0 {
		return end
	}

	threshold := int(math.Floor(float64(chunkSize) * breakpointFraction))
	if breakpoint < threshold {
		return end
	}

	return start + breakpoint + 1
}

func (p *Processor) passage(doc *domain.Document, text string, position, start, end int) domain.Passage {
	return domain.Passage{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		Text:       text,
		Position:   position,
		Metadata: domain.PassageMetadata{
			Source:     doc.Title,
			StartIndex: start,
			EndIndex:   end,
		},
	}
}
