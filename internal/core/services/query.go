package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
	"github.com/custodia-labs/lexqa/internal/logger"
	"github.com/custodia-labs/lexqa/internal/ranking"
)

// Ensure QueryService implements the interfaces.
var (
	_ driving.QueryService    = (*QueryService)(nil)
	_ driven.PromptStoreAware = (*QueryService)(nil)
)

// User-facing answers returned instead of a completion.
const (
	AnswerNoQuestion  = "Please ask a question about the document."
	AnswerNoContent   = "The document has no readable content to answer questions from."
	AnswerNotFound    = "The specific information requested was not found in the most relevant sections of the document."
	AnswerUnavailable = "The completion service is not configured. Set OPENROUTER_API_KEY or run 'lexqa settings llm'."
)

// Completion parameters for answers.
const (
	answerMaxTokens   = 4000
	answerTemperature = 0.7
)

// notFoundPhrases mark a completion that admits the excerpts lack the answer.
var notFoundPhrases = []string{
	"not available",
	"not specified",
	"does not specify",
	"not mentioned",
	"not found",
	"no information",
	"cannot determine",
}

// disclaimerPhrases are stripped from answers, case-insensitively.
var disclaimerPhrases = []string{
	"This explanation provides a general overview. Always consult the actual legal document for precise details and requirements.",
	"Always consult the actual legal document for precise details and requirements.",
	"Please consult the actual legal document for precise details.",
	"For precise details and requirements, always refer to the actual legal document.",
	"This is a general overview. Always consult the actual document for specific requirements.",
	"Please consult with a qualified legal professional",
	"Please consult a qualified legal professional",
	"Consult with a qualified legal professional",
	"Consult a qualified legal professional",
	"This is a general overview.",
	"This provides a general overview.",
	"For specific legal advice, please consult",
	"I am not a lawyer",
	"This is not legal advice",
	"No additional information is needed from external sources to answer the question based solely on the provided text",
	"This information is based solely on the provided document sections",
	"A complete understanding would require access to the referenced documents",
}

var disclaimerPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(disclaimerPhrases))
	for i, phrase := range disclaimerPhrases {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase) + `\.?\s*`)
	}
	return patterns
}()

// markdownRewrites turn markdown into the plain-text house style.
// Order matters: bold before italic, underline before underscore italic.
var markdownRewrites = []struct {
	re      *regexp.Regexp
	replace func(match []string) string
}{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), func(m []string) string { return strings.ToUpper(m[1]) }},
	{regexp.MustCompile(`\*(.*?)\*`), func(m []string) string { return m[1] }},
	{regexp.MustCompile(`__(.*?)__`), func(m []string) string { return strings.ToUpper(m[1]) }},
	{regexp.MustCompile(`\b_(.*?)_\b`), func(m []string) string { return m[1] }},
	{regexp.MustCompile("`(.*?)`"), func(m []string) string { return m[1] }},
	{regexp.MustCompile(`\[(.*?)\]\(.*?\)`), func(m []string) string { return m[1] }},
	{regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*`), func([]string) string { return "" }},
}

var excessNewlines = regexp.MustCompile(`\n\s*\n\s*\n+`)

// QueryService answers questions about cached documents.
type QueryService struct {
	cache   driven.DocumentCache
	llm     driven.LLMService
	ranker  *ranking.Ranker
	prompts driven.PromptStore
	topK    int
	timeout time.Duration
}

// QueryOption configures a QueryService.
type QueryOption func(*QueryService)

// WithTopK sets how many ranked chunks are sent with a question.
func WithTopK(k int) QueryOption {
	return func(s *QueryService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithAnswerTimeout bounds each completion call.
func WithAnswerTimeout(d time.Duration) QueryOption {
	return func(s *QueryService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRanker replaces the default ranker.
func WithRanker(r *ranking.Ranker) QueryOption {
	return func(s *QueryService) {
		if r != nil {
			s.ranker = r
		}
	}
}

// NewQueryService creates a query service.
// llm may be nil, in which case Ask returns domain.ErrLLMUnavailable.
func NewQueryService(cache driven.DocumentCache, llm driven.LLMService, opts ...QueryOption) *QueryService {
	s := &QueryService{
		cache:   cache,
		llm:     llm,
		ranker:  ranking.NewDefault(),
		topK:    domain.DefaultTopK,
		timeout: domain.DefaultLLMTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPromptStore sets the store the answer template is loaded from.
func (s *QueryService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Ask answers a question about a cached document.
func (s *QueryService) Ask(ctx context.Context, fp domain.Fingerprint, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}

	entry, ok := s.cache.Get(fp)
	if !ok {
		return "", fmt.Errorf("%w: %s (upload the document again)", domain.ErrCacheMiss, fp.Short())
	}

	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	requestID := uuid.NewString()
	logger.Section("Ask")
	logger.Debug("[%s] document=%s refined=%t chunks=%d", requestID, fp.Short(), entry.Refined(), len(entry.Chunks))
	logger.Debug("[%s] question=%q", requestID, question)

	answer := s.Answer(ctx, question, entry.QueryChunks())
	logger.Debug("[%s] answer length=%d", requestID, len(answer))
	return answer, nil
}

// Answer ranks chunks against the question and asks the completion service.
// Every outcome is user-facing text.
func (s *QueryService) Answer(ctx context.Context, question string, chunks []string) string {
	if strings.TrimSpace(question) == "" {
		return AnswerNoQuestion
	}
	if len(chunks) == 0 {
		return AnswerNoContent
	}
	if s.llm == nil {
		return AnswerUnavailable
	}

	ranked := s.ranker.Rank(question, chunks)
	if len(ranked) > s.topK {
		ranked = ranked[:s.topK]
	}
	logger.Debug("Using top %d of %d chunks", len(ranked), len(chunks))

	prompt := fmt.Sprintf(s.template(), strings.Join(ranked, "\n\n"), question)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := logger.Timed("completion")
	reply, err := s.llm.Generate(callCtx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	done()
	if err != nil {
		logger.Warn("Completion failed: %v", err)
		return errorAnswer(err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" || admitsNotFound(reply) {
		return AnswerNotFound
	}
	return CleanAnswer(reply)
}

func (s *QueryService) template() string {
	if s.prompts == nil {
		return domain.AnswerPromptTemplate
	}
	tmpl, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil || strings.Count(tmpl, "%s") != 2 {
		logger.Debug("Using built-in answer prompt: %v", err)
		return domain.AnswerPromptTemplate
	}
	return tmpl
}

func errorAnswer(err error) string {
	msg := err.Error()
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) && upstream.Kind == domain.UpstreamTimeout {
		msg = "the completion service timed out"
	}
	return fmt.Sprintf("Error processing question: %s. Please try again or check your API configuration.", msg)
}

func admitsNotFound(reply string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range notFoundPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// CleanAnswer strips disclaimers and markdown from a completion.
func CleanAnswer(text string) string {
	for _, re := range disclaimerPatterns {
		text = re.ReplaceAllString(text, "")
	}
	for _, rw := range markdownRewrites {
		text = rw.re.ReplaceAllStringFunc(text, func(match string) string {
			return rw.replace(rw.re.FindStringSubmatch(match))
		})
	}
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
