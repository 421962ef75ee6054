package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarity-labs/coursemate-cli/internal/adapters/driven/storage/memory"
	"github.com/clarity-labs/coursemate-cli/internal/core/domain"
)

// failingConfigStore wraps the in-memory store and fails Set for one key.
type failingConfigStore struct {
	*memory.ConfigStore
	failKey string
}

func (f *failingConfigStore) Set(key string, value any) error {
	if key == f.failKey {
		return fmt.Errorf("write %s: disk full", key)
	}
	return f.ConfigStore.Set(key, value)
}

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embeddingErr  error
	llmErr        error
	lastEmbedding *domain.EmbeddingSettings
	lastLLM       *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(config *domain.EmbeddingSettings) error {
	m.lastEmbedding = config
	return m.embeddingErr
}

func (m *mockAIValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.lastLLM = config
	return m.llmErr
}

func newSettingsHarness(t *testing.T) (*SettingsService, *memory.ConfigStore) {
	t.Helper()

	store := memory.NewConfigStore()
	return NewSettingsService(store, nil), store
}

func TestSettingsService_Get_Defaults(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.False(t, settings.Embedding.IsConfigured(), "providers start unconfigured")
	assert.False(t, settings.LLM.IsConfigured())
	assert.Equal(t, domain.DefaultTopK, settings.Ask.TopK)
	assert.InDelta(t, domain.DefaultMinScore, settings.Ask.MinScore, 0.0001)
}

func TestSettingsService_Get_StoredValues(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("embedding.provider", "ollama"))
	require.NoError(t, store.Set("embedding.model", "all-minilm"))
	require.NoError(t, store.Set("embedding.base_url", "http://gpu-box:11434"))
	require.NoError(t, store.Set("llm.provider", "anthropic"))
	require.NoError(t, store.Set("llm.model", "claude-3-5-sonnet-latest"))
	require.NoError(t, store.Set("llm.api_key", "sk-ant-123"))
	require.NoError(t, store.Set("ask.top_k", 8))
	require.NoError(t, store.Set("ask.min_score", 0.25))

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "all-minilm", settings.Embedding.Model)
	assert.Equal(t, "http://gpu-box:11434", settings.Embedding.BaseURL)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", settings.LLM.Model)
	assert.Equal(t, "sk-ant-123", settings.LLM.APIKey)
	assert.Equal(t, 8, settings.Ask.TopK)
	assert.InDelta(t, 0.25, settings.Ask.MinScore, 0.0001)
}

func TestSettingsService_Get_InvalidStoredProvider(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("embedding.provider", "cohere"))

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.False(t, settings.Embedding.Provider.IsValid(), "unknown providers fall back to the default")
}

func TestSettingsService_Get_ZeroMinScoreIsRespected(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("ask.min_score", 0.0))

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Zero(t, settings.Ask.MinScore, "a stored zero is a choice, not an absence")
}

func TestSettingsService_Get_ZeroTopKFallsBack(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("ask.top_k", 0))

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopK, settings.Ask.TopK)
}

func TestSettingsService_Save(t *testing.T) {
	svc, store := newSettingsHarness(t)

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o",
			APIKey:   "sk-123",
		},
		Ask: domain.AskSettings{TopK: 7, MinScore: 0.4},
	}
	require.NoError(t, svc.Save(settings))

	assert.Equal(t, "ollama", store.GetString("embedding.provider"))
	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
	assert.Equal(t, "http://localhost:11434", store.GetString("embedding.base_url"))
	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, "gpt-4o", store.GetString("llm.model"))
	assert.Equal(t, "sk-123", store.GetString("llm.api_key"))
	assert.Equal(t, 7, store.GetInt("ask.top_k"))
	assert.InDelta(t, 0.4, store.GetFloat("ask.min_score"), 0.0001)

	// And the round trip comes back intact.
	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.Embedding, loaded.Embedding)
	assert.Equal(t, settings.LLM, loaded.LLM)
	assert.Equal(t, settings.Ask, loaded.Ask)
}

func TestSettingsService_Save_KeepsExistingAPIKey(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("llm.api_key", "sk-existing"))

	settings, err := svc.Get()
	require.NoError(t, err)
	settings.LLM.APIKey = ""
	require.NoError(t, svc.Save(settings))

	assert.Equal(t, "sk-existing", store.GetString("llm.api_key"),
		"an empty key on save never erases a stored key")
}

func TestSettingsService_Save_StoreErrors(t *testing.T) {
	// Any single failing write aborts the save with a key-specific error.
	tests := []struct {
		failKey string
		wantMsg string
	}{
		{"embedding.provider", "save embedding provider"},
		{"embedding.model", "save embedding model"},
		{"embedding.base_url", "save embedding base_url"},
		{"embedding.api_key", "save embedding api_key"},
		{"llm.provider", "save llm provider"},
		{"llm.model", "save llm model"},
		{"llm.base_url", "save llm base_url"},
		{"llm.api_key", "save llm api_key"},
		{"ask.top_k", "save ask top_k"},
		{"ask.min_score", "save ask min_score"},
	}

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-embed",
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o",
			APIKey:   "sk-llm",
		},
		Ask: domain.AskSettings{TopK: 5, MinScore: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.failKey, func(t *testing.T) {
			store := &failingConfigStore{ConfigStore: memory.NewConfigStore(), failKey: tt.failKey}
			svc := NewSettingsService(store, nil)

			err := svc.Save(settings)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSettingsService_SetEmbeddingProvider_Ollama(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model, "the provider default model fills in")
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
	assert.Empty(t, settings.Embedding.APIKey)
	assert.True(t, settings.Embedding.IsConfigured())
}

func TestSettingsService_SetEmbeddingProvider_CustomModel(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "all-minilm", ""))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "all-minilm", settings.Embedding.Model)
}

func TestSettingsService_SetEmbeddingProvider_OpenAI(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "sk-123"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL, "cloud providers use their fixed endpoint")
	assert.Equal(t, "sk-123", settings.Embedding.APIKey)
}

func TestSettingsService_SetEmbeddingProvider_RequiresAPIKey(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	err := svc.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key required")
}

func TestSettingsService_SetEmbeddingProvider_Invalid(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	err := svc.SetEmbeddingProvider(domain.AIProvider("cohere"), "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid embedding provider")
}

func TestSettingsService_SetEmbeddingProvider_NoEmbeddingSupport(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	err := svc.SetEmbeddingProvider(domain.AIProviderAnthropic, "", "sk-ant-123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support embeddings")
}

func TestSettingsService_SetEmbeddingProvider_KeepsCustomBaseURL(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("embedding.base_url", "http://gpu-box:11434"))

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "http://gpu-box:11434", settings.Embedding.BaseURL)
}

func TestSettingsService_SetEmbeddingProvider_CloudClearsBaseURL(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("embedding.base_url", "http://gpu-box:11434"))

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "sk-123"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Empty(t, settings.Embedding.BaseURL)
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	tests := []struct {
		provider    domain.AIProvider
		apiKey      string
		wantModel   string
		wantBaseURL string
	}{
		{domain.AIProviderOllama, "", "llama3.2", "http://localhost:11434"},
		{domain.AIProviderOpenAI, "sk-123", "gpt-4o", ""},
		{domain.AIProviderAnthropic, "sk-ant-123", "claude-3-5-sonnet-latest", ""},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			svc, _ := newSettingsHarness(t)

			require.NoError(t, svc.SetLLMProvider(tt.provider, "", tt.apiKey))

			settings, err := svc.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.LLM.Provider)
			assert.Equal(t, tt.wantModel, settings.LLM.Model)
			assert.Equal(t, tt.wantBaseURL, settings.LLM.BaseURL)
			assert.Equal(t, tt.apiKey, settings.LLM.APIKey)
			assert.True(t, settings.LLM.IsConfigured())
		})
	}
}

func TestSettingsService_SetLLMProvider_RequiresAPIKey(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	for _, provider := range []domain.AIProvider{domain.AIProviderOpenAI, domain.AIProviderAnthropic} {
		err := svc.SetLLMProvider(provider, "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key required")
	}
}

func TestSettingsService_SetLLMProvider_Invalid(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	err := svc.SetLLMProvider(domain.AIProvider("gemini"), "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LLM provider")
}

func TestSettingsService_SetAskDefaults(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	require.NoError(t, svc.SetAskDefaults(10, 0.7))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 10, settings.Ask.TopK)
	assert.InDelta(t, 0.7, settings.Ask.MinScore, 0.0001)
}

func TestSettingsService_SetAskDefaults_ZeroMinScore(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	require.NoError(t, svc.SetAskDefaults(3, 0))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Zero(t, settings.Ask.MinScore, "an explicit zero threshold survives the round trip")
}

func TestSettingsService_SetAskDefaults_Bounds(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	tests := []struct {
		name     string
		topK     int
		minScore float64
	}{
		{"zero top_k", 0, 0.5},
		{"negative top_k", -1, 0.5},
		{"negative min_score", 5, -0.1},
		{"min_score above one", 5, 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.SetAskDefaults(tt.topK, tt.minScore)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Validate(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	// Nothing configured yet.
	err := svc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding provider is not configured")

	// Embeddings alone are not enough to answer questions.
	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))
	err = svc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM provider is not configured")

	require.NoError(t, svc.SetLLMProvider(domain.AIProviderOllama, "", ""))
	assert.NoError(t, svc.Validate())
}

func TestSettingsService_Validate_BadAskValues(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))
	require.NoError(t, svc.SetLLMProvider(domain.AIProviderOllama, "", ""))

	require.NoError(t, store.Set("ask.top_k", -2))
	err := svc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_k")

	require.NoError(t, store.Set("ask.top_k", 5))
	require.NoError(t, store.Set("ask.min_score", 1.5))
	err = svc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_score")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	defaults := svc.GetDefaults()

	assert.Equal(t, domain.DefaultAppSettings(), defaults)
	assert.Equal(t, domain.DefaultTopK, defaults.Ask.TopK)
	assert.False(t, defaults.Embedding.IsConfigured())
}

func TestSettingsService_ValidateEmbeddingConfig(t *testing.T) {
	t.Run("nil validator", func(t *testing.T) {
		svc, _ := newSettingsHarness(t)

		assert.NoError(t, svc.ValidateEmbeddingConfig())
	})

	t.Run("passes current settings to the validator", func(t *testing.T) {
		store := memory.NewConfigStore()
		validator := &mockAIValidator{}
		svc := NewSettingsService(store, validator)
		require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))

		require.NoError(t, svc.ValidateEmbeddingConfig())

		require.NotNil(t, validator.lastEmbedding)
		assert.Equal(t, domain.AIProviderOllama, validator.lastEmbedding.Provider)
	})

	t.Run("propagates validator errors", func(t *testing.T) {
		validator := &mockAIValidator{embeddingErr: fmt.Errorf("ping failed")}
		svc := NewSettingsService(memory.NewConfigStore(), validator)

		assert.ErrorContains(t, svc.ValidateEmbeddingConfig(), "ping failed")
	})
}

func TestSettingsService_ValidateLLMConfig(t *testing.T) {
	t.Run("nil validator", func(t *testing.T) {
		svc, _ := newSettingsHarness(t)

		assert.NoError(t, svc.ValidateLLMConfig())
	})

	t.Run("propagates validator errors", func(t *testing.T) {
		validator := &mockAIValidator{llmErr: fmt.Errorf("model not found")}
		svc := NewSettingsService(memory.NewConfigStore(), validator)

		assert.ErrorContains(t, svc.ValidateLLMConfig(), "model not found")
	})
}

func TestSettingsService_GetPipelineConfig_Defaults(t *testing.T) {
	svc, _ := newSettingsHarness(t)

	cfg := svc.GetPipelineConfig()

	assert.Equal(t, []string{"chunker"}, cfg.Processors)
	chunker := cfg.GetProcessorConfig("chunker")
	require.NotNil(t, chunker)
	assert.Equal(t, 1000, chunker["chunk_size"])
	assert.Equal(t, 200, chunker["overlap"])
}

func TestSettingsService_GetPipelineConfig_Configured(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("pipeline.chunker.chunk_size", 500))
	require.NoError(t, store.Set("pipeline.chunker.overlap", 50))

	cfg := svc.GetPipelineConfig()

	chunker := cfg.GetProcessorConfig("chunker")
	require.NotNil(t, chunker)
	assert.Equal(t, 500, chunker["chunk_size"])
	assert.Equal(t, 50, chunker["overlap"])
}

func TestSettingsService_GetPipelineConfig_CustomProcessors(t *testing.T) {
	svc, store := newSettingsHarness(t)
	require.NoError(t, store.Set("pipeline.processors", []string{"chunker", "normalizer"}))
	require.NoError(t, store.Set("pipeline.normalizer.max_length", 120))

	cfg := svc.GetPipelineConfig()

	assert.Equal(t, []string{"chunker", "normalizer"}, cfg.Processors)
	normalizer := cfg.GetProcessorConfig("normalizer")
	require.NotNil(t, normalizer)
	assert.Equal(t, 120, normalizer["max_length"])
}
