package domain

// AIProvider identifies an AI service provider.
type AIProvider string

// Supported AI providers.
const (
	ProviderNone      AIProvider = "none"
	ProviderOllama    AIProvider = "ollama"
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
)

// String returns the provider name.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable provider description.
func (p AIProvider) Description() string {
	switch p {
	case ProviderNone:
		return "None (local fallback only)"
	case ProviderOllama:
		return "Ollama (local)"
	case ProviderOpenAI:
		return "OpenAI (cloud, requires API key)"
	case ProviderAnthropic:
		return "Anthropic (cloud, requires API key)"
	}
	return string(p)
}

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case ProviderNone, ProviderOllama, ProviderOpenAI, ProviderAnthropic:
		return true
	}
	return false
}

// IsLocal returns true for providers that run on the user's machine.
func (p AIProvider) IsLocal() bool {
	return p == ProviderOllama
}

// RequiresAPIKey returns true for providers that need credentials.
func (p AIProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI || p == ProviderAnthropic
}

// AllEmbeddingProviders lists providers that can generate embeddings.
// The lexical fallback is always available and is not a provider.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{ProviderNone, ProviderOllama, ProviderOpenAI}
}

// AllLLMProviders lists providers that can generate answers.
func AllLLMProviders() []AIProvider {
	return []AIProvider{ProviderNone, ProviderOllama, ProviderOpenAI, ProviderAnthropic}
}

// EmbeddingSettings configures the embedding provider. When no provider
// is configured the system runs on the deterministic lexical fallback.
type EmbeddingSettings struct {
	Provider   AIProvider
	Model      string
	BaseURL    string
	APIKey     string
	Dimensions int
}

// IsConfigured returns true if an external provider is set up.
func (s *EmbeddingSettings) IsConfigured() bool {
	return s.Provider != "" && s.Provider != ProviderNone
}

// LLMSettings configures the answer generation provider.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured returns true if an LLM provider is set up.
func (s *LLMSettings) IsConfigured() bool {
	return s.Provider != "" && s.Provider != ProviderNone
}

// RetrievalSettings holds default retrieval behaviour.
type RetrievalSettings struct {
	Granularity  Granularity
	Limit        int
	MaxDocuments int
	MaxPassages  int
}

// StorageSettings selects and locates the persistence backend.
type StorageSettings struct {
	// Backend is "sqlite" or "memory".
	Backend string

	// DataDir is where the sqlite backend keeps its database.
	DataDir string
}

// AppSettings is the full application configuration.
type AppSettings struct {
	Embedding EmbeddingSettings
	LLM       LLMSettings
	Retrieval RetrievalSettings
	Storage   StorageSettings
}

// DefaultAppSettings returns the configuration used when nothing has
// been set up: no external providers, sqlite storage, passage-level
// retrieval.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:   ProviderNone,
			Dimensions: DefaultDimensions,
		},
		LLM: LLMSettings{
			Provider: ProviderNone,
		},
		Retrieval: RetrievalSettings{
			Granularity:  GranularityPassage,
			Limit:        DefaultRetrievalLimit,
			MaxDocuments: DefaultMaxDocuments,
			MaxPassages:  DefaultMaxPassages,
		},
		Storage: StorageSettings{
			Backend: "sqlite",
		},
	}
}

// DefaultEmbeddingModels maps providers to their default embedding model.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		ProviderOllama: "hf.co/CompendiumLabs/bge-base-en-v1.5-gguf",
		ProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels maps providers to their default generation model.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		ProviderOllama:    "llama3.2",
		ProviderOpenAI:    "gpt-4o-mini",
		ProviderAnthropic: "claude-3-5-haiku-latest",
	}
}

// PipelineConfig describes the ingestion post-processing pipeline.
type PipelineConfig struct {
	// Processors lists processor names in execution order.
	Processors []string

	// ProcessorConfigs holds per-processor settings keyed by name.
	ProcessorConfigs map[string]map[string]any
}

// DefaultPipelineConfig returns the standard pipeline: just the chunker
// with its built-in defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
	}
}
