package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/adapters/driven/llm/fallback"
	"github.com/custodia-labs/lexqa/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})
}

func TestInitialise_Unconfigured(t *testing.T) {
	result := Initialise(&domain.LLMSettings{Provider: domain.AIProviderOpenAI})

	assert.Nil(t, result.LLMService)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "OPENROUTER_API_KEY")
}

func TestInitialise_Configured(t *testing.T) {
	settings := domain.DefaultAppSettings().LLM
	settings.APIKey = "sk-test"

	result := Initialise(&settings)
	defer result.Close()

	require.NotNil(t, result.LLMService)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, domain.DefaultModel, result.LLMService.ModelName())
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.LLMSettings
		wantNil     bool
		wantErr     bool
		errContains string
		wantModels  []string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
			wantNil:  true,
		},
		{
			name: "openai provider builds the fallback chain",
			settings: &domain.LLMSettings{
				Provider:       domain.AIProviderOpenAI,
				APIKey:         "test-key",
				Model:          "openai/gpt-4o-mini",
				FallbackModels: []string{"google/gemini-flash-1.5", "openai/gpt-4o-mini"},
			},
			wantModels: []string{"openai/gpt-4o-mini", "google/gemini-flash-1.5"},
		},
		{
			name: "anthropic provider ignores fallback models",
			settings: &domain.LLMSettings{
				Provider:       domain.AIProviderAnthropic,
				APIKey:         "test-key",
				Model:          "claude-3-5-sonnet-latest",
				FallbackModels: []string{"google/gemini-flash-1.5"},
			},
			wantModels: []string{"claude-3-5-sonnet-latest"},
		},
		{
			name: "ollama provider needs no key",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
			wantModels: []string{"llama3.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}

			chain, ok := svc.(*fallback.Service)
			require.True(t, ok)
			assert.Equal(t, tt.wantModels, chain.Models())
		})
	}
}

func TestCreateAndValidateLLMService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	settings := &domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "bad",
		BaseURL:  server.URL,
		Model:    "m",
	}

	svc, err := CreateAndValidateLLMService(settings)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	svc, err = CreateAndValidateLLMService(nil)
	assert.Nil(t, svc)
	assert.NoError(t, err)
}
