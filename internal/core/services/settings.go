package services

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMFallback       = "llm.fallback_models"
	keyLLMTimeout        = "llm.timeout_seconds"
	keyLLMRate           = "llm.requests_per_second"
	keyChunkSize         = "chunker.chunk_size"
	keyChunkOverlap      = "chunker.overlap"
	keyChunkMax          = "chunker.max_chunks"
	keyChunkParallel     = "chunker.parallel"
	keyCacheRetention    = "cache.retention_hours"
	keyCacheSweep        = "cache.sweep_interval_minutes"
	keyQueryTopK         = "query.top_k"
	keyRefineMaxChunks   = "refine.max_chunks"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAPIKey   = "OPENROUTER_API_KEY"
	EnvBaseURL  = "OPENROUTER_BASE_URL"
	EnvModel    = "CURRENT_MODEL"
	EnvProvider = "LEXQA_LLM_PROVIDER"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindList
	kindProvider
)

// settableKeys maps each config key to the type SetValue parses it as.
var settableKeys = map[string]valueKind{
	keyLLMProvider:     kindProvider,
	keyLLMModel:        kindString,
	keyLLMBaseURL:      kindString,
	keyLLMAPIKey:       kindString,
	keyLLMFallback:     kindList,
	keyLLMTimeout:      kindInt,
	keyLLMRate:         kindFloat,
	keyChunkSize:       kindInt,
	keyChunkOverlap:    kindInt,
	keyChunkMax:        kindInt,
	keyChunkParallel:   kindBool,
	keyCacheRetention:  kindInt,
	keyCacheSweep:      kindInt,
	keyQueryTopK:       kindInt,
	keyRefineMaxChunks: kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithEnvLookup replaces os.Getenv for environment overrides.
func WithEnvLookup(getenv func(string) string) SettingsOption {
	return func(s *SettingsService) {
		s.getenv = getenv
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(
	configStore driven.ConfigStore,
	aiValidator driven.AIConfigValidator,
	opts ...SettingsOption,
) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
// Environment variables take precedence over the config file.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.fromStore()
	s.applyEnv(&settings.LLM)
	return settings, nil
}

// fromStore reads settings from the config store only.
func (s *SettingsService) fromStore() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	provider := s.getProvider(keyLLMProvider, defaults.LLM.Provider)
	fallback := defaults.LLM.FallbackModels
	if _, exists := s.configStore.Get(keyLLMFallback); exists {
		fallback = s.configStore.GetStringSlice(keyLLMFallback)
	}

	return &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          provider,
			Model:             s.getString(keyLLMModel, defaultModelFor(provider)),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL),
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			FallbackModels:    fallback,
			Timeout:           s.getDuration(keyLLMTimeout, time.Second, defaults.LLM.Timeout),
			RequestsPerSecond: s.getFloat(keyLLMRate, defaults.LLM.RequestsPerSecond),
		},
		Chunker: domain.ChunkerSettings{
			ChunkSize: s.getInt(keyChunkSize, defaults.Chunker.ChunkSize),
			Overlap:   s.getInt(keyChunkOverlap, defaults.Chunker.Overlap),
			MaxChunks: s.getInt(keyChunkMax, defaults.Chunker.MaxChunks),
			Parallel:  s.getBool(keyChunkParallel, defaults.Chunker.Parallel),
		},
		Cache: domain.CacheSettings{
			Retention:     s.getDuration(keyCacheRetention, time.Hour, defaults.Cache.Retention),
			SweepInterval: s.getDuration(keyCacheSweep, time.Minute, defaults.Cache.SweepInterval),
		},
		Query: domain.QuerySettings{
			TopK: s.getInt(keyQueryTopK, defaults.Query.TopK),
		},
		Refine: domain.RefineSettings{
			MaxChunks: s.getInt(keyRefineMaxChunks, defaults.Refine.MaxChunks),
		},
	}
}

// applyEnv overlays environment variables on LLM settings.
func (s *SettingsService) applyEnv(llm *domain.LLMSettings) {
	if v := s.getenv(EnvProvider); v != "" {
		if p := domain.AIProvider(strings.ToLower(v)); p.IsValid() {
			llm.Provider = p
		}
	}
	if v := s.getenv(EnvModel); v != "" {
		llm.Model = v
	}
	if v := s.getenv(EnvBaseURL); v != "" {
		llm.BaseURL = v
	}
	if v := s.getenv(EnvAPIKey); v != "" {
		llm.APIKey = v
	}
}

// Save persists application settings.
// Values that only come from the environment are not written to disk.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	stored := s.fromStore()

	llm := settings.LLM
	provider := unlessEnv(llm.Provider.String(), stored.LLM.Provider.String(), s.getenv(EnvProvider))
	llm.Provider = domain.AIProvider(provider)
	llm.Model = unlessEnv(llm.Model, stored.LLM.Model, s.getenv(EnvModel))
	llm.BaseURL = unlessEnv(llm.BaseURL, stored.LLM.BaseURL, s.getenv(EnvBaseURL))
	llm.APIKey = unlessEnv(llm.APIKey, stored.LLM.APIKey, s.getenv(EnvAPIKey))

	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, llm.Provider.String()},
		{keyLLMModel, llm.Model},
		{keyLLMBaseURL, llm.BaseURL},
		{keyLLMFallback, llm.FallbackModels},
		{keyLLMTimeout, int(llm.Timeout / time.Second)},
		{keyLLMRate, llm.RequestsPerSecond},
		{keyChunkSize, settings.Chunker.ChunkSize},
		{keyChunkOverlap, settings.Chunker.Overlap},
		{keyChunkMax, settings.Chunker.MaxChunks},
		{keyChunkParallel, settings.Chunker.Parallel},
		{keyCacheRetention, int(settings.Cache.Retention / time.Hour)},
		{keyCacheSweep, int(settings.Cache.SweepInterval / time.Minute)},
		{keyQueryTopK, settings.Query.TopK},
		{keyRefineMaxChunks, settings.Refine.MaxChunks},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if llm.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, llm.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	} else if err := s.configStore.Delete(keyLLMAPIKey); err != nil {
		return fmt.Errorf("clear %s: %w", keyLLMAPIKey, err)
	}

	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// SetLLMProvider configures the completion provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if apiKey == "" && provider == domain.AIProviderOpenAI {
		apiKey = s.getenv(EnvAPIKey)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = defaultModelFor(provider)
	}

	// Base URL follows the provider; an empty value selects the adapter default.
	if provider.IsLocal() {
		settings.LLM.BaseURL = defaultOllamaBaseURL
	} else {
		settings.LLM.BaseURL = ""
	}

	// Fallback models are OpenRouter identifiers.
	if provider != domain.AIProviderOpenAI {
		settings.LLM.FallbackModels = nil
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Keys returns every settable config key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetValue parses value according to key's type, checks the resulting
// settings and persists them.
func (s *SettingsService) SetValue(key, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseValue(kind, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	previous, existed := s.configStore.Get(key)
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	if err := validateSettings(s.fromStore()); err != nil {
		s.restore(key, previous, existed)
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s *SettingsService) restore(key string, previous any, existed bool) {
	if existed {
		_ = s.configStore.Set(key, previous)
		return
	}
	_ = s.configStore.Delete(key)
}

// Validate checks if current settings are usable for answering questions.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := validateSettings(settings); err != nil {
		return err
	}

	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: %s requires an API key (set %s or run 'lexqa settings llm')",
			domain.ErrLLMUnavailable, settings.LLM.Provider.Description(), EnvAPIKey)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// validateSettings checks value ranges independent of the provider.
func validateSettings(settings *domain.AppSettings) error {
	var errs []error

	if !settings.LLM.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider))
	}
	if settings.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("llm timeout must be positive"))
	}
	if settings.LLM.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("requests per second must not be negative"))
	}
	if settings.Chunker.ChunkSize <= 0 {
		errs = append(errs, errors.New("chunk size must be positive"))
	}
	if settings.Chunker.Overlap < 0 || settings.Chunker.Overlap >= settings.Chunker.ChunkSize {
		errs = append(errs, fmt.Errorf("overlap must be between 0 and chunk size (%d)", settings.Chunker.ChunkSize))
	}
	if settings.Chunker.MaxChunks <= 0 {
		errs = append(errs, errors.New("max chunks must be positive"))
	}
	if settings.Cache.Retention <= 0 {
		errs = append(errs, errors.New("cache retention must be positive"))
	}
	if settings.Cache.SweepInterval < 0 {
		errs = append(errs, errors.New("cache sweep interval must not be negative"))
	}
	if settings.Query.TopK <= 0 {
		errs = append(errs, errors.New("top k must be positive"))
	}
	if settings.Refine.MaxChunks < 0 {
		errs = append(errs, errors.New("refine max chunks must not be negative"))
	}

	return errors.Join(errs...)
}

func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	case kindList:
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	case kindProvider:
		p := domain.AIProvider(strings.ToLower(value))
		if !p.IsValid() {
			return nil, fmt.Errorf("unknown provider %q", value)
		}
		return p.String(), nil
	default:
		return value, nil
	}
}

// unlessEnv returns stored when value was supplied by the environment.
func unlessEnv(value, stored, env string) string {
	if env != "" && strings.EqualFold(value, env) {
		return stored
	}
	return value
}

func defaultModelFor(provider domain.AIProvider) string {
	if m, ok := domain.DefaultLLMModels()[provider]; ok {
		return m
	}
	return domain.DefaultModel
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * unit
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
