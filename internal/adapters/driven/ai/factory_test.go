package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrule-labs/askdocs/internal/core/domain"
)

func TestCreateEmbeddingService_Unconfigured(t *testing.T) {
	svc, err := CreateEmbeddingService(nil)
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.ProviderNone})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.ProviderOllama,
		Model:    "hf.co/CompendiumLabs/bge-base-en-v1.5-gguf",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "hf.co/CompendiumLabs/bge-base-en-v1.5-gguf", svc.ModelName())
}

func TestCreateEmbeddingService_OpenAIRequiresKey(t *testing.T) {
	_, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.ProviderOpenAI,
	})
	assert.Error(t, err)
}

func TestCreateEmbeddingService_AnthropicUnsupported(t *testing.T) {
	_, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.ProviderAnthropic,
		APIKey:   "key",
	})
	assert.Error(t, err)
}

func TestCreateLLMService_Unconfigured(t *testing.T) {
	svc, err := CreateLLMService(nil)
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateLLMService_AllProviders(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.LLMSettings
		wantErr  bool
	}{
		{
			name:     "ollama needs no key",
			settings: domain.LLMSettings{Provider: domain.ProviderOllama, Model: "llama3.2"},
		},
		{
			name:     "openai with key",
			settings: domain.LLMSettings{Provider: domain.ProviderOpenAI, APIKey: "sk-test"},
		},
		{
			name:     "openai without key",
			settings: domain.LLMSettings{Provider: domain.ProviderOpenAI},
			wantErr:  true,
		},
		{
			name:     "anthropic with key",
			settings: domain.LLMSettings{Provider: domain.ProviderAnthropic, APIKey: "sk-ant"},
		},
		{
			name:     "anthropic without key",
			settings: domain.LLMSettings{Provider: domain.ProviderAnthropic},
			wantErr:  true,
		},
		{
			name:     "unknown provider",
			settings: domain.LLMSettings{Provider: "mystery"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(&tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestValidateConfigs_UnconfiguredIsValid(t *testing.T) {
	validator := NewConfigValidator()

	assert.NoError(t, validator.ValidateEmbedding(nil))
	assert.NoError(t, validator.ValidateEmbedding(&domain.EmbeddingSettings{Provider: domain.ProviderNone}))
	assert.NoError(t, validator.ValidateLLM(nil))
	assert.NoError(t, validator.ValidateLLM(&domain.LLMSettings{Provider: domain.ProviderNone}))
}
