package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a completion service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is any OpenAI-compatible API, OpenRouter included.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI-compatible (OpenRouter, OpenAI)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// Default completion settings.
const (
	DefaultOpenAIBaseURL      = "https://openrouter.ai/api/v1"
	DefaultModel              = "google/gemini-flash-1.5"
	DefaultLLMTimeout         = 60 * time.Second
	DefaultRequestsPerSecond  = 2.0
	DefaultChunkSize          = 3000
	DefaultChunkOverlap       = 300
	DefaultMaxChunks          = 20
	DefaultCacheRetention     = 24 * time.Hour
	DefaultCacheSweepInterval = 30 * time.Minute
	DefaultTopK               = 12
	DefaultRefineMaxChunks    = 5
)

// DefaultFallbackModels is the ordered model chain tried after the primary
// model fails.
func DefaultFallbackModels() []string {
	return []string{
		"google/gemini-flash-1.5",
		"google/gemini-pro-1.5",
		"openai/gpt-4o-mini",
		"openai/gpt-3.5-turbo",
	}
}

// LLMSettings holds completion provider configuration.
type LLMSettings struct {
	// Provider is the completion service provider.
	Provider AIProvider

	// Model is the primary model identifier.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenAI-compatible and Anthropic).
	APIKey string

	// FallbackModels are tried in order after Model fails.
	FallbackModels []string

	// Timeout bounds each completion call.
	Timeout time.Duration

	// RequestsPerSecond limits outbound completion calls. Zero disables.
	RequestsPerSecond float64
}

// IsConfigured returns true if the completion provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ModelChain returns the primary model followed by the fallback models,
// without duplicates and without empty entries.
func (l LLMSettings) ModelChain() []string {
	seen := make(map[string]bool)
	var chain []string
	for _, m := range append([]string{l.Model}, l.FallbackModels...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		chain = append(chain, m)
	}
	return chain
}

// ChunkerSettings holds chunking configuration.
type ChunkerSettings struct {
	// ChunkSize is the target chunk length in characters.
	ChunkSize int

	// Overlap is the number of characters shared between neighbouring chunks.
	Overlap int

	// MaxChunks caps how many chunks one document produces.
	MaxChunks int

	// Parallel selects the concurrent chunker.
	Parallel bool
}

// CacheSettings holds document cache configuration.
type CacheSettings struct {
	// Retention is how long an entry stays live after insertion.
	Retention time.Duration

	// SweepInterval is how often the background sweeper runs. Zero disables.
	SweepInterval time.Duration
}

// QuerySettings holds question answering configuration.
type QuerySettings struct {
	// TopK is how many ranked chunks are sent with a question.
	TopK int
}

// RefineSettings holds chunk refinement configuration.
type RefineSettings struct {
	// MaxChunks is the largest document, in chunks, that gets refined.
	// Zero disables refinement.
	MaxChunks int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds completion provider settings.
	LLM LLMSettings

	// Chunker holds chunking settings.
	Chunker ChunkerSettings

	// Cache holds document cache settings.
	Cache CacheSettings

	// Query holds question answering settings.
	Query QuerySettings

	// Refine holds chunk refinement settings.
	Refine RefineSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The completion provider has no API key by default; it must come from
// the config file or the environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Provider:          AIProviderOpenAI,
			Model:             DefaultModel,
			BaseURL:           DefaultOpenAIBaseURL,
			FallbackModels:    DefaultFallbackModels(),
			Timeout:           DefaultLLMTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Chunker: ChunkerSettings{
			ChunkSize: DefaultChunkSize,
			Overlap:   DefaultChunkOverlap,
			MaxChunks: DefaultMaxChunks,
		},
		Cache: CacheSettings{
			Retention:     DefaultCacheRetention,
			SweepInterval: DefaultCacheSweepInterval,
		},
		Query: QuerySettings{
			TopK: DefaultTopK,
		},
		Refine: RefineSettings{
			MaxChunks: DefaultRefineMaxChunks,
		},
	}
}

// AllLLMProviders returns providers that support completion.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderOllama,
	}
}

// DefaultLLMModels returns default models for each provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    DefaultModel,
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// DefaultBaseURLs returns default endpoints for each provider.
func DefaultBaseURLs() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "http://localhost:11434",
		AIProviderOpenAI:    DefaultOpenAIBaseURL,
		AIProviderAnthropic: "https://api.anthropic.com",
	}
}
