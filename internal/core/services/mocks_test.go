package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

// mockLLMService records prompts and returns a canned reply.
type mockLLMService struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	opts    []driven.GenerateOptions
	hasDL   bool
}

func (m *mockLLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	_, m.hasDL = ctx.Deadline()
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockLLMService) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// mockAIValidator records the settings it was asked to validate.
type mockAIValidator struct {
	err error
	got *domain.LLMSettings
}

func (m *mockAIValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.got = config
	return m.err
}

// mockNormaliserRegistry returns the text registered for a file name.
type mockNormaliserRegistry struct {
	texts map[string]string
	errs  map[string]error
	calls int
}

func newMockRegistry() *mockNormaliserRegistry {
	return &mockNormaliserRegistry{
		texts: make(map[string]string),
		errs:  make(map[string]error),
	}
}

func (m *mockNormaliserRegistry) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	m.calls++
	if err, ok := m.errs[raw.Name]; ok {
		return nil, err
	}
	text, ok := m.texts[raw.Name]
	if !ok {
		text = string(raw.Content)
	}
	return &driven.NormaliseResult{Document: domain.Document{
		Name:     raw.Name,
		FileType: raw.FileType,
		Content:  text,
	}}, nil
}

func (m *mockNormaliserRegistry) Extract(ctx context.Context, ft domain.FileType, content []byte) (string, error) {
	res, err := m.Normalise(ctx, &domain.RawDocument{FileType: ft, Content: content})
	if err != nil {
		return "", err
	}
	return res.Document.Content, nil
}

func (m *mockNormaliserRegistry) Register(_ driven.Normaliser) {}

func (m *mockNormaliserRegistry) SupportedFileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeText, domain.FileTypePDF}
}

// mockClassifier returns a verdict chosen by a marker in the sampled chunks.
type mockClassifier struct {
	verdicts map[string]domain.Classification
	fallback domain.Classification
	calls    int
}

func (m *mockClassifier) Classify(_ context.Context, chunks []string) domain.Classification {
	m.calls++
	joined := strings.Join(chunks, " ")
	for marker, v := range m.verdicts {
		if strings.Contains(joined, marker) {
			return v
		}
	}
	return m.fallback
}

// mockRefiner upper-cases chunks, or fails.
type mockRefiner struct {
	err   error
	calls int
}

func (m *mockRefiner) Name() string { return "mock-refiner" }

func (m *mockRefiner) Process(_ context.Context, _ *domain.Document, chunks []string) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = strings.ToUpper(c)
	}
	return out, nil
}

// mockPromptStore serves fixed templates.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if p, ok := m.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (m *mockPromptStore) Reload() {}
