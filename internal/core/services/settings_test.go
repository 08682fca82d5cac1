package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/adapters/driven/storage/memory"
	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

func TestSettingsDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderNone, settings.Embedding.Provider)
	assert.Equal(t, domain.DefaultDimensions, settings.Embedding.Dimensions)
	assert.Equal(t, domain.ProviderNone, settings.LLM.Provider)
	assert.Equal(t, domain.GranularityPassage, settings.Retrieval.Granularity)
	assert.Equal(t, domain.DefaultRetrievalLimit, settings.Retrieval.Limit)
	assert.Equal(t, domain.DefaultMaxDocuments, settings.Retrieval.MaxDocuments)
	assert.Equal(t, domain.DefaultMaxPassages, settings.Retrieval.MaxPassages)
	assert.Equal(t, "sqlite", settings.Storage.Backend)
}

func TestSettingsSaveAndGet(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := svc.Get()
	require.NoError(t, err)
	settings.Retrieval.Limit = 8
	settings.Retrieval.Granularity = domain.GranularityDocument
	settings.Storage.Backend = "memory"
	require.NoError(t, svc.Save(settings))

	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.Retrieval.Limit)
	assert.Equal(t, domain.GranularityDocument, loaded.Retrieval.Granularity)
	assert.Equal(t, "memory", loaded.Storage.Backend)
}

func TestSetEmbeddingProviderOllama(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, svc.SetEmbeddingProvider(domain.ProviderOllama, "", ""))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, domain.DefaultEmbeddingModels()[domain.ProviderOllama], settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
}

func TestSetEmbeddingProviderOpenAI(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	// Cloud providers demand a key up front.
	err := svc.SetEmbeddingProvider(domain.ProviderOpenAI, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")

	require.NoError(t, svc.SetEmbeddingProvider(domain.ProviderOpenAI, "", "sk-test"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
}

func TestSetEmbeddingProviderRejectsAnthropic(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	err := svc.SetEmbeddingProvider(domain.ProviderAnthropic, "", "sk-ant")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support embeddings")
}

func TestSetLLMProvider(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, svc.SetLLMProvider(domain.ProviderAnthropic, "", "sk-ant"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, domain.DefaultLLMModels()[domain.ProviderAnthropic], settings.LLM.Model)
	assert.Empty(t, settings.LLM.BaseURL)

	// Explicit model wins over the default.
	require.NoError(t, svc.SetLLMProvider(domain.ProviderOllama, "mistral", ""))
	settings, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "mistral", settings.LLM.Model)
	assert.Equal(t, "http://localhost:11434", settings.LLM.BaseURL)
}

func TestSetLLMProviderInvalid(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	err := svc.SetLLMProvider(domain.AIProvider("bard"), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LLM provider")
}

func TestSetProviderValidationFailureIsNotSaved(t *testing.T) {
	store := memory.NewConfigStore()
	validator := &mockValidator{llmErr: errors.New("connection refused")}
	svc := NewSettingsService(store, validator)

	err := svc.SetLLMProvider(domain.ProviderOllama, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	// The failed provider change must not stick.
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderNone, settings.LLM.Provider)
}

func TestSettingsValidate(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store, nil)

	require.NoError(t, svc.Validate())

	require.NoError(t, store.Set("storage.backend", "bolt"))
	err := svc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestSettingsGranularityParsing(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store, nil)

	require.NoError(t, store.Set("retrieval.granularity", "document"))
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityDocument, settings.Retrieval.Granularity)

	// Unknown values fall back to the default.
	require.NoError(t, store.Set("retrieval.granularity", "chapter"))
	settings, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityPassage, settings.Retrieval.Granularity)
}

func TestGetPipelineConfig(t *testing.T) {
	store := memory.NewConfigStore()
	svc := NewSettingsService(store, nil)

	cfg := svc.GetPipelineConfig()
	assert.Equal(t, []string{"chunker"}, cfg.Processors)
	assert.Empty(t, cfg.ProcessorConfigs)

	require.NoError(t, store.Set("pipeline.chunker.target_chunks", 8))
	require.NoError(t, store.Set("pipeline.chunker.overlap", 200))

	cfg = svc.GetPipelineConfig()
	require.Contains(t, cfg.ProcessorConfigs, "chunker")
	assert.Equal(t, 8, cfg.ProcessorConfigs["chunker"]["target_chunks"])
	assert.Equal(t, 200, cfg.ProcessorConfigs["chunker"]["overlap"])
}

func TestGetDefaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(), nil)

	defaults := svc.GetDefaults()
	assert.Equal(t, domain.DefaultAppSettings(), defaults)
}
