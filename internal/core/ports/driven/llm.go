package driven

import "context"

// LLMService is a remote text completion endpoint.
// This is an optional service - when nil, questions cannot be answered
// and chunk refinement is skipped.
//
// Implementations may include:
//   - OpenAI-compatible APIs (OpenRouter, OpenAI)
//   - Anthropic (Claude)
//   - Ollama (local models)
//
// Failures are returned as *domain.UpstreamError.
type LLMService interface {
	// Generate produces a text completion for a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ModelLister is implemented by completion services that can enumerate
// the models their endpoint serves.
type ModelLister interface {
	// ListModels returns model identifiers available at the endpoint.
	ListModels(ctx context.Context) ([]string, error)
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}
