package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/logger"
	"github.com/ferrule-labs/askdocs/internal/similarity"
)

// retriever performs the owner-scoped linear scan that backs asking.
// There is no vector index: every stored passage of the owner is
// scored against the query embedding, subject to the scan caps.
type retriever struct {
	docStore driven.DocumentStore
	defaults domain.RetrievalSettings
}

// newRetriever creates a retriever with the given default caps.
// Zero-valued defaults fall back to the domain constants.
func newRetriever(docStore driven.DocumentStore, defaults domain.RetrievalSettings) *retriever {
	if defaults.Limit <= 0 {
		defaults.Limit = domain.DefaultRetrievalLimit
	}
	if defaults.MaxDocuments <= 0 {
		defaults.MaxDocuments = domain.DefaultMaxDocuments
	}
	if defaults.MaxPassages <= 0 {
		defaults.MaxPassages = domain.DefaultMaxPassages
	}
	if defaults.Granularity == "" {
		defaults.Granularity = domain.GranularityPassage
	}
	return &retriever{docStore: docStore, defaults: defaults}
}

// resolve fills unset options from the retriever defaults.
func (r *retriever) resolve(opts domain.RetrievalOptions) domain.RetrievalOptions {
	if opts.Limit <= 0 {
		opts.Limit = r.defaults.Limit
	}
	if opts.MaxDocuments <= 0 {
		opts.MaxDocuments = r.defaults.MaxDocuments
	}
	if opts.MaxPassages <= 0 {
		opts.MaxPassages = r.defaults.MaxPassages
	}
	if opts.Granularity == "" {
		opts.Granularity = r.defaults.Granularity
	}
	return opts
}

// retrieve scores the owner's passages against the query embedding and
// returns the top results per the requested granularity, highest score
// first.
func (r *retriever) retrieve(
	ctx context.Context, ownerID string, query []float32, opts domain.RetrievalOptions,
) ([]domain.RetrievalResult, error) {
	opts = r.resolve(opts)

	docs, err := r.docStore.ListDocuments(ctx, ownerID, "")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	if len(docs) > opts.MaxDocuments {
		logger.Warn("Scan cap: scoring %d of %d documents", opts.MaxDocuments, len(docs))
		docs = docs[:opts.MaxDocuments]
	}

	var scored []domain.RetrievalResult
	scanned := 0

scan:
	for _, doc := range docs {
		passages, err := r.docStore.GetPassages(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("get passages for %s: %w", doc.ID, err)
		}

		for _, passage := range passages {
			if scanned >= opts.MaxPassages {
				logger.Warn("Scan cap: stopped after %d passages", scanned)
				break scan
			}
			scanned++

			if len(passage.Embedding) == 0 {
				continue
			}

			// A non-positive score is no signal, not a weak match. Keeping
			// such passages would fabricate grounding for queries that
			// matched nothing, so they never enter the candidate pool.
			score := similarity.Cosine(query, passage.Embedding)
			if score <= 0 {
				continue
			}

			scored = append(scored, domain.RetrievalResult{
				Passage:       passage,
				Score:         score,
				DocumentID:    doc.ID,
				DocumentTitle: doc.Title,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if opts.Granularity == domain.GranularityDocument {
		return topDocuments(scored, opts.Limit), nil
	}
	if len(scored) > opts.Limit {
		scored = scored[:opts.Limit]
	}
	return scored, nil
}

// topDocuments keeps every scored passage of the K highest-ranking
// documents, where a document ranks by its best passage. Results stay
// ordered by score.
func topDocuments(scored []domain.RetrievalResult, limit int) []domain.RetrievalResult {
	// scored is sorted descending, so first sight of a document is its
	// best passage.
	rank := make(map[string]int)
	for _, result := range scored {
		if _, seen := rank[result.DocumentID]; !seen {
			rank[result.DocumentID] = len(rank)
		}
	}

	var kept []domain.RetrievalResult
	for _, result := range scored {
		if rank[result.DocumentID] < limit {
			kept = append(kept, result)
		}
	}
	return kept
}
