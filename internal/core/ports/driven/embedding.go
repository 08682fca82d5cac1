package driven

import "context"

// EmbeddingService is the contract expected from an external embedding
// provider: request a vector for a text, over a network call. The
// provider may be down, erroring, or return nothing — callers must be
// prepared for every call to fail.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, bge models)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving
	// input order. Element i of the result corresponds to texts[i].
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size the model produces.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EmbeddingMode reports which path produced a vector.
type EmbeddingMode string

const (
	// ModeProvider means the external embedding provider answered.
	ModeProvider EmbeddingMode = "provider"

	// ModeLexical means the deterministic bag-of-words fallback was
	// used because the provider was unavailable. Retrieval quality is
	// degraded in this mode.
	ModeLexical EmbeddingMode = "lexical"

	// ModeSketch means the cheap hash sketch for short texts was used,
	// skipping the provider call entirely.
	ModeSketch EmbeddingMode = "sketch"
)

// Degraded reports whether the mode indicates fallback operation.
func (m EmbeddingMode) Degraded() bool {
	return m == ModeLexical
}

// Embedding is a vector together with the path that produced it.
type Embedding struct {
	// Vector always has exactly the canonical dimensionality.
	Vector []float32

	// Mode records which path produced the vector.
	Mode EmbeddingMode
}

// Embedder turns text into canonical-length vectors and never fails:
// when the provider contract is unmet it degrades to a local heuristic
// instead of returning an error. The mode on each result makes
// degraded operation observable to callers.
type Embedder interface {
	// Embed returns a vector of exactly Dimensions() floats for any
	// input, including the empty string.
	Embed(ctx context.Context, text string) Embedding

	// EmbedBatch embeds each text independently, preserving order.
	EmbedBatch(ctx context.Context, texts []string) []Embedding

	// Sketch produces a cheap local pseudo-embedding without any
	// provider call. Ingestion uses it for short chunks as a latency
	// optimisation; it is not a fidelity path.
	Sketch(text string) Embedding

	// Dimensions returns the canonical vector length D.
	Dimensions() int
}
