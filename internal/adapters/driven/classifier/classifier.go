// Package classifier decides whether extracted text looks like a legal
// document. The completion-backed Classifier asks the model for a JSON
// verdict and falls back to the Lexical indicator count when the model is
// absent or fails.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure Classifier implements the interfaces.
var (
	_ driven.DocumentClassifier = (*Classifier)(nil)
	_ driven.PromptStoreAware   = (*Classifier)(nil)
)

// Sampling and completion parameters.
const (
	sampleChunks    = 3
	maxSampleLength = 4000
	maxTokens       = 300
	temperature     = 0.0
)

// Terms that mark an unparseable reply as legal.
var replyLegalTerms = []string{"contract", "agreement", "legal", "terms", "clause"}

// Classifier classifies through the completion service.
type Classifier struct {
	llm      driven.LLMService
	prompts  driven.PromptStore
	fallback *Lexical
}

// New creates a classifier. A nil llm classifies lexically.
func New(llm driven.LLMService) *Classifier {
	return &Classifier{llm: llm, fallback: NewLexical()}
}

// SetPromptStore sets the store the classify template is loaded from.
func (c *Classifier) SetPromptStore(store driven.PromptStore) {
	c.prompts = store
}

// Classify judges the first chunks of a document. It never fails.
func (c *Classifier) Classify(ctx context.Context, chunks []string) domain.Classification {
	text := sample(chunks)
	if len(strings.TrimSpace(text)) < minSampleLength {
		return domain.UnknownClassification("Insufficient content for analysis")
	}
	if c.llm == nil {
		return c.fallback.ClassifyText(text)
	}

	reply, err := c.llm.Generate(ctx, fmt.Sprintf(c.template(), text), driven.GenerateOptions{
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		logger.Warn("Completion classification failed, using lexical analysis: %v", err)
		return c.fallback.ClassifyText(text)
	}
	return parseVerdict(reply)
}

func (c *Classifier) template() string {
	if c.prompts == nil {
		return domain.ClassifyPromptTemplate
	}
	tmpl, err := c.prompts.Load(driven.PromptClassify)
	if err != nil || strings.Count(tmpl, "%s") != 1 {
		return domain.ClassifyPromptTemplate
	}
	return tmpl
}

// verdict is the JSON shape requested from the model.
type verdict struct {
	IsLegal      bool    `json:"is_legal_document"`
	Confidence   float64 `json:"confidence"`
	DocumentType string  `json:"document_type"`
	Explanation  string  `json:"explanation"`
}

// parseVerdict decodes the model reply. Replies that are not JSON are
// judged by the presence of a few legal terms.
func parseVerdict(reply string) domain.Classification {
	body := stripFences(reply)

	var v verdict
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		logger.Debug("Classifier reply is not JSON: %v", err)
		return keywordVerdict(reply)
	}

	if v.DocumentType == "" {
		v.DocumentType = "Unknown"
	}
	if v.Explanation == "" {
		v.Explanation = "No explanation provided"
	}
	return domain.Classification{
		IsLegal:      v.IsLegal,
		Confidence:   domain.ClampConfidence(v.Confidence),
		DocumentType: v.DocumentType,
		Explanation:  v.Explanation,
	}
}

func keywordVerdict(reply string) domain.Classification {
	lower := strings.ToLower(reply)
	for _, term := range replyLegalTerms {
		if strings.Contains(lower, term) {
			return domain.Classification{
				IsLegal:      true,
				Confidence:   0.6,
				DocumentType: "Legal Document",
				Explanation:  "Reply was not JSON but mentions legal terms",
			}
		}
	}
	return domain.Classification{
		IsLegal:      false,
		Confidence:   0.8,
		DocumentType: "Non-legal Document",
		Explanation:  "Reply was not JSON and mentions no legal terms",
	}
}

// stripFences removes a surrounding ``` or ```json code fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// sample joins the first chunks and caps the result.
func sample(chunks []string) string {
	text := strings.Join(head(chunks, sampleChunks), " ")
	if runes := []rune(text); len(runes) > maxSampleLength {
		return string(runes[:maxSampleLength]) + "..."
	}
	return text
}
