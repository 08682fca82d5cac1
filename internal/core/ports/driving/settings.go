package driving

import "github.com/ferrule-labs/askdocs/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults filled
	// in for anything unset.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that the configured providers are usable.
	Validate() error

	// GetPipelineConfig returns the ingestion pipeline configuration.
	GetPipelineConfig() domain.PipelineConfig

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
