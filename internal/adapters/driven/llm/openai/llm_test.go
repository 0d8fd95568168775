package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL, Model: "openai/gpt-4o-mini"})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)
}

func TestNewLLMService_Defaults(t *testing.T) {
	svc, err := NewLLMService(LLMConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultLLMTimeout, svc.client.Timeout)
	assert.NoError(t, svc.Close())
}

func TestGenerate_Success(t *testing.T) {
	var got chatCompletionRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultAppTitle, r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"The rent is $1,200."}}]}`))
	})

	out, err := svc.Generate(context.Background(), "What is the rent?", driven.GenerateOptions{MaxTokens: 4000, Temperature: 0.7})

	require.NoError(t, err)
	assert.Equal(t, "The rent is $1,200.", out)
	assert.Equal(t, "openai/gpt-4o-mini", got.Model)
	assert.Equal(t, 4000, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		kind domain.UpstreamKind
	}{
		{"bad status", http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, domain.UpstreamStatus},
		{"embedded error", http.StatusOK, `{"error":{"message":"overloaded"}}`, domain.UpstreamStatus},
		{"malformed json", http.StatusOK, `{"choices":`, domain.UpstreamParse},
		{"no choices", http.StatusOK, `{"choices":[]}`, domain.UpstreamParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := svc.Generate(context.Background(), "q", driven.GenerateOptions{})

			var ue *domain.UpstreamError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, tt.kind, ue.Kind)
			assert.Equal(t, "openai/gpt-4o-mini", ue.Model)
		})
	}
}

func TestListModels(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":"z/model"},{"id":"a/model"},{"id":""}]}`))
	})

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a/model", "z/model"}, models)
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	assert.NoError(t, svc.Ping(context.Background()))

	failing := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	assert.ErrorIs(t, failing.Ping(context.Background()), domain.ErrUpstream)
}
