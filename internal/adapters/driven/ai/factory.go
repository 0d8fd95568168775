// Package ai provides factory functions for creating completion service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/lexqa/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/lexqa/internal/adapters/driven/llm/fallback"
	ollamallm "github.com/custodia-labs/lexqa/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/lexqa/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// rateBurst is the token bucket size for outbound completion calls.
const rateBurst = 4

// InitResult contains the result of completion service initialisation.
type InitResult struct {
	LLMService driven.LLMService
	Warnings   []string // Non-fatal issues that left the service unconfigured.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Initialise builds the completion service for the given settings.
// An unconfigured provider is not an error: the result carries a nil
// service and a warning, and questions will fail with ErrLLMUnavailable.
func Initialise(settings *domain.LLMSettings) *InitResult {
	result := &InitResult{}
	if settings == nil || !settings.IsConfigured() {
		result.Warnings = append(result.Warnings,
			"no completion API key configured: set OPENROUTER_API_KEY or run 'lexqa settings llm'")
		return result
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("completion service unavailable: %v", err))
		return result
	}
	result.LLMService = svc
	return result
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'lexqa settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'lexqa settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use by the settings command to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the completion service for the settings: one
// adapter per model in the chain, wrapped in a rate-limited fallback.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	models := []string{settings.Model}
	// Fallback model identifiers are OpenRouter routes, so only the
	// OpenAI-compatible provider gets the full chain.
	if settings.Provider == domain.AIProviderOpenAI {
		models = settings.ModelChain()
	}

	services := make([]driven.LLMService, 0, len(models))
	for _, model := range models {
		svc, err := createSingle(settings, model)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	return fallback.New(services,
		fallback.WithMaxAttempts(len(services)),
		fallback.WithRateLimit(settings.RequestsPerSecond, rateBurst),
	)
}

func createSingle(settings *domain.LLMSettings, model string) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings, model), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings, model)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings, model)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings, model string) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   model,
		Timeout: settings.Timeout,
	})
}

// createOpenAILLM creates an OpenAI-compatible LLM service.
func createOpenAILLM(settings *domain.LLMSettings, model string) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   model,
		Timeout: settings.Timeout,
	})
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings, model string) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   model,
		Timeout: settings.Timeout,
	})
}
