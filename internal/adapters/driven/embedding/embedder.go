// Package embedding provides the mode-aware embedder that fronts the
// external provider with a deterministic local fallback.
package embedding

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/embedding/lexical"
	"github.com/ferrule-labs/askdocs/internal/core/ports/driven"
	"github.com/ferrule-labs/askdocs/internal/logger"
)

// Ensure Resilient implements the interface.
var _ driven.Embedder = (*Resilient)(nil)

// DefaultProviderRPS caps provider calls per second. Linear-scan
// ingestion can issue one call per chunk; without a client-side cap a
// large upload can hammer a local inference server.
const DefaultProviderRPS = 10

// Resilient embeds text provider-first and degrades to the lexical
// fallback instead of failing. Every returned vector has exactly the
// canonical length, whatever path produced it; vectors from providers
// with a different native dimensionality are truncated or zero-padded.
type Resilient struct {
	primary driven.EmbeddingService // may be nil: permanent fallback mode
	local   *lexical.Embedder
	limiter *rate.Limiter
	dims    int
}

// Option configures the resilient embedder.
type Option func(*Resilient)

// WithRateLimit overrides the provider call rate limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(r *Resilient) {
		r.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates a resilient embedder with canonical dimensionality dims.
// primary may be nil, in which case every call uses the fallback.
func New(primary driven.EmbeddingService, dims int, opts ...Option) *Resilient {
	r := &Resilient{
		primary: primary,
		local:   lexical.New(dims),
		limiter: rate.NewLimiter(rate.Limit(DefaultProviderRPS), DefaultProviderRPS),
		dims:    canonicalDims(dims),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func canonicalDims(dims int) int {
	if dims <= 0 {
		return lexical.DefaultDimensions
	}
	return dims
}

// Dimensions returns the canonical vector length D.
func (r *Resilient) Dimensions() int {
	return r.dims
}

// Embed returns a canonical-length vector for any input. Provider
// errors are recovered locally and reported through the result mode,
// never as an error.
func (r *Resilient) Embed(ctx context.Context, text string) driven.Embedding {
	if r.primary == nil {
		return driven.Embedding{Vector: r.reconcile(r.local.Embed(text)), Mode: driven.ModeLexical}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		logger.Warn("embedding: rate limiter aborted (%v), using lexical fallback", err)
		return driven.Embedding{Vector: r.reconcile(r.local.Embed(text)), Mode: driven.ModeLexical}
	}

	vector, err := r.primary.Embed(ctx, text)
	if err != nil || len(vector) == 0 {
		if err != nil {
			logger.Warn("embedding: provider failed (%v), using lexical fallback", err)
		} else {
			logger.Warn("embedding: provider returned empty vector, using lexical fallback")
		}
		return driven.Embedding{Vector: r.reconcile(r.local.Embed(text)), Mode: driven.ModeLexical}
	}

	return driven.Embedding{Vector: r.reconcile(vector), Mode: driven.ModeProvider}
}

// EmbedBatch embeds each text independently, preserving input order.
func (r *Resilient) EmbedBatch(ctx context.Context, texts []string) []driven.Embedding {
	results := make([]driven.Embedding, len(texts))
	for i, text := range texts {
		results[i] = r.Embed(ctx, text)
	}
	return results
}

// Sketch produces the cheap hash-based pseudo-embedding with no
// provider call.
func (r *Resilient) Sketch(text string) driven.Embedding {
	return driven.Embedding{Vector: r.reconcile(r.local.Sketch(text)), Mode: driven.ModeSketch}
}

// reconcile forces a vector to the canonical length: longer vectors
// are truncated, shorter ones right-padded with zeros. Persisted data
// is therefore always canonical even when the provider model's native
// dimensionality differs.
func (r *Resilient) reconcile(vector []float32) []float32 {
	if len(vector) == r.dims {
		return vector
	}
	out := make([]float32, r.dims)
	copy(out, vector)
	return out
}
