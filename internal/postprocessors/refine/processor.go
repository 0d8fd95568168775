// Package refine provides a post-processor that rewrites chunks in plainer
// language through the completion service.
package refine

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure Processor implements the interfaces.
var (
	_ driven.PostProcessor    = (*Processor)(nil)
	_ driven.PromptStoreAware = (*Processor)(nil)
)

// Completion parameters for simplification.
const (
	maxTokens   = 2000
	temperature = 0.3
)

// Processor simplifies each chunk independently. A chunk whose rewrite
// fails or comes back empty keeps its original text, so the output always
// has the same length and order as the input.
type Processor struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// New creates a refining processor.
func New(llm driven.LLMService) *Processor {
	return &Processor{llm: llm}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "refine"
}

// SetPromptStore sets the store the simplify template is loaded from.
func (p *Processor) SetPromptStore(store driven.PromptStore) {
	p.prompts = store
}

// Process rewrites chunks. It only fails when ctx is done.
func (p *Processor) Process(ctx context.Context, _ *domain.Document, chunks []string) ([]string, error) {
	out := make([]string, len(chunks))
	copy(out, chunks)
	if p.llm == nil {
		return out, nil
	}

	tmpl := p.template()
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		reply, err := p.llm.Generate(ctx, fmt.Sprintf(tmpl, chunk), driven.GenerateOptions{
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			logger.Warn("Simplifying chunk %d/%d failed: %v", i+1, len(chunks), err)
			continue
		}
		if reply = strings.TrimSpace(reply); reply != "" {
			out[i] = reply
		}
		logger.Debug("Simplified chunk %d/%d", i+1, len(chunks))
	}
	return out, nil
}

func (p *Processor) template() string {
	if p.prompts == nil {
		return domain.SimplifyPromptTemplate
	}
	tmpl, err := p.prompts.Load(driven.PromptSimplify)
	if err != nil || strings.Count(tmpl, "%s") != 1 {
		return domain.SimplifyPromptTemplate
	}
	return tmpl
}
