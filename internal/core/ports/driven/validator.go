package driven

import "github.com/ferrule-labs/askdocs/internal/core/domain"

// AIConfigValidator checks that configured AI providers are reachable
// before settings are committed.
type AIConfigValidator interface {
	// ValidateEmbedding verifies the embedding provider configuration
	// by constructing a client and pinging it.
	ValidateEmbedding(settings *domain.EmbeddingSettings) error

	// ValidateLLM verifies the LLM provider configuration by
	// constructing a client and pinging it.
	ValidateLLM(settings *domain.LLMSettings) error
}
