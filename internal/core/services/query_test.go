package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

var contractChunks = []string{
	"The parties to this agreement are Acme Corp and Beta LLC.",
	"Payment of the fee shall be made within 30 days. The payment amount is $5,000.",
	"This agreement is governed by the laws of Delaware.",
}

func TestQueryService_Ask_EmptyQuestion(t *testing.T) {
	cache := memory.NewDocumentCache()
	llm := &mockLLMService{reply: "answer"}
	service := NewQueryService(cache, llm)

	fp := domain.FingerprintOf([]byte("doc"))
	cache.Put(fp, "doc", contractChunks, nil, false)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := service.Ask(context.Background(), fp, q)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Equal(t, 0, llm.calls())
}

func TestQueryService_Ask_UnknownFingerprint(t *testing.T) {
	llm := &mockLLMService{reply: "answer"}
	service := NewQueryService(memory.NewDocumentCache(), llm)

	_, err := service.Ask(context.Background(), domain.FingerprintOf([]byte("missing")), "Who are the parties?")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, llm.calls())
}

func TestQueryService_Ask_NoLLM(t *testing.T) {
	cache := memory.NewDocumentCache()
	fp := domain.FingerprintOf([]byte("doc"))
	cache.Put(fp, "doc", contractChunks, nil, false)

	_, err := NewQueryService(cache, nil).Ask(context.Background(), fp, "Who are the parties?")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestQueryService_Ask_UsesRefinedChunks(t *testing.T) {
	cache := memory.NewDocumentCache()
	fp := domain.FingerprintOf([]byte("doc"))
	cache.Put(fp, "doc", []string{"original payment text"}, []string{"SIMPLIFIED payment text"}, false)
	llm := &mockLLMService{reply: "Payment is due monthly."}

	answer, err := NewQueryService(cache, llm).Ask(context.Background(), fp, "When is payment due?")

	require.NoError(t, err)
	assert.Equal(t, "Payment is due monthly.", answer)
	assert.Contains(t, llm.lastPrompt(), "SIMPLIFIED payment text")
	assert.NotContains(t, llm.lastPrompt(), "original payment text")
}

func TestQueryService_Answer_RanksPaymentChunkFirst(t *testing.T) {
	llm := &mockLLMService{reply: "Within 30 days."}
	service := NewQueryService(memory.NewDocumentCache(), llm)

	answer := service.Answer(context.Background(), "What are the payment terms?", contractChunks)

	assert.Equal(t, "Within 30 days.", answer)
	prompt := llm.lastPrompt()
	payment := strings.Index(prompt, contractChunks[1])
	parties := strings.Index(prompt, contractChunks[0])
	require.GreaterOrEqual(t, payment, 0)
	require.GreaterOrEqual(t, parties, 0)
	assert.Less(t, payment, parties)
	assert.Contains(t, prompt, "Question: What are the payment terms?")
}

func TestQueryService_Answer_CompletionParameters(t *testing.T) {
	llm := &mockLLMService{reply: "ok"}
	service := NewQueryService(memory.NewDocumentCache(), llm)

	service.Answer(context.Background(), "Who are the parties?", contractChunks)

	require.Len(t, llm.opts, 1)
	assert.Equal(t, 4000, llm.opts[0].MaxTokens)
	assert.InDelta(t, 0.7, llm.opts[0].Temperature, 0.0001)
	assert.True(t, llm.hasDL, "completion call must carry a deadline")
}

func TestQueryService_Answer_TopK(t *testing.T) {
	chunks := make([]string, 20)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("chunk-%02d about nothing", i)
	}
	llm := &mockLLMService{reply: "ok"}
	service := NewQueryService(memory.NewDocumentCache(), llm, WithTopK(3))

	service.Answer(context.Background(), "unrelated question", chunks)

	prompt := llm.lastPrompt()
	for i, c := range chunks {
		if i < 3 {
			assert.Contains(t, prompt, c)
		} else {
			assert.NotContains(t, prompt, c)
		}
	}
}

func TestQueryService_Answer_DefaultTopKIsTwelve(t *testing.T) {
	chunks := make([]string, 15)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("segment-%02d", i)
	}
	llm := &mockLLMService{reply: "ok"}

	NewQueryService(memory.NewDocumentCache(), llm).Answer(context.Background(), "anything here", chunks)

	assert.Equal(t, 12, strings.Count(llm.lastPrompt(), "segment-"))
}

func TestQueryService_Answer_Sentinels(t *testing.T) {
	tests := []struct {
		name     string
		question string
		chunks   []string
		reply    string
		err      error
		want     string
		wantCall bool
	}{
		{name: "empty question", question: " ", chunks: contractChunks, want: AnswerNoQuestion},
		{name: "no chunks", question: "Who?", chunks: nil, want: AnswerNoContent},
		{name: "empty reply", question: "Who?", chunks: contractChunks, reply: "  ", want: AnswerNotFound, wantCall: true},
		{
			name: "not found phrase", question: "Who?", chunks: contractChunks,
			reply: "The renewal term is NOT SPECIFIED in the excerpts.", want: AnswerNotFound, wantCall: true,
		},
		{
			name: "completion error", question: "Who?", chunks: contractChunks, err: errors.New("boom"),
			want:     "Error processing question: boom. Please try again or check your API configuration.",
			wantCall: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &mockLLMService{reply: tt.reply, err: tt.err}
			service := NewQueryService(memory.NewDocumentCache(), llm)

			got := service.Answer(context.Background(), tt.question, tt.chunks)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCall, llm.calls() > 0)
		})
	}
}

func TestQueryService_Answer_TimeoutMessage(t *testing.T) {
	llm := &mockLLMService{err: &domain.UpstreamError{
		Kind:  domain.UpstreamTimeout,
		Model: "m",
		Err:   context.DeadlineExceeded,
	}}

	got := NewQueryService(memory.NewDocumentCache(), llm).Answer(context.Background(), "Who?", contractChunks)

	assert.True(t, strings.HasPrefix(got, "Error processing question: the completion service timed out."))
}

func TestQueryService_Answer_NoLLM(t *testing.T) {
	got := NewQueryService(memory.NewDocumentCache(), nil).Answer(context.Background(), "Who?", contractChunks)

	assert.Equal(t, AnswerUnavailable, got)
}

func TestQueryService_Answer_CleansReply(t *testing.T) {
	llm := &mockLLMService{reply: "## Parties\n\n\n\nThe **parties** are Acme and Beta. I am not a lawyer."}

	got := NewQueryService(memory.NewDocumentCache(), llm).Answer(context.Background(), "Who?", contractChunks)

	assert.Equal(t, "Parties\n\nThe PARTIES are Acme and Beta.", got)
}

func TestQueryService_PromptStore(t *testing.T) {
	t.Run("custom template", func(t *testing.T) {
		llm := &mockLLMService{reply: "ok"}
		service := NewQueryService(memory.NewDocumentCache(), llm)
		service.SetPromptStore(&mockPromptStore{prompts: map[string]string{
			driven.PromptAnswer: "CONTEXT<%s> QUESTION<%s>",
		}})

		service.Answer(context.Background(), "Who?", []string{"only chunk"})

		assert.Equal(t, "CONTEXT<only chunk> QUESTION<Who?>", llm.lastPrompt())
	})

	t.Run("broken template falls back", func(t *testing.T) {
		llm := &mockLLMService{reply: "ok"}
		service := NewQueryService(memory.NewDocumentCache(), llm)
		service.SetPromptStore(&mockPromptStore{prompts: map[string]string{
			driven.PromptAnswer: "no placeholders",
		}})

		service.Answer(context.Background(), "Who?", []string{"only chunk"})

		assert.Contains(t, llm.lastPrompt(), "legal expert")
	})

	t.Run("load error falls back", func(t *testing.T) {
		llm := &mockLLMService{reply: "ok"}
		service := NewQueryService(memory.NewDocumentCache(), llm)
		service.SetPromptStore(&mockPromptStore{})

		service.Answer(context.Background(), "Who?", []string{"only chunk"})

		assert.Contains(t, llm.lastPrompt(), "legal expert")
	})
}

func TestCleanAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold to upper", "The **payment terms** apply.", "The PAYMENT TERMS apply."},
		{"italic to plain", "This is *important* here.", "This is important here."},
		{"underline to upper", "See __notice__ below.", "See NOTICE below."},
		{"underscore italic", "An _implied_ term.", "An implied term."},
		{"snake case kept", "The per_case_fee applies.", "The per_case_fee applies."},
		{"code to plain", "Use `Section 5`.", "Use Section 5."},
		{"link to text", "See [the statute](https://example.com/s).", "See the statute."},
		{"heading hashes", "### TERM\nThe term is one year.", "TERM\nThe term is one year."},
		{"hash inside line kept", "Invoice #42 is due.", "Invoice #42 is due."},
		{"disclaimer removed", "Rent is $900. This is not legal advice.", "Rent is $900."},
		{"disclaimer any case", "Rent is $900. PLEASE CONSULT A QUALIFIED LEGAL PROFESSIONAL.", "Rent is $900."},
		{"collapse newlines", "One.\n\n\n\nTwo.", "One.\n\nTwo."},
		{"collapse whitespace lines", "One.\n  \n \n\nTwo.", "One.\n\nTwo."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAnswer(tt.in))
		})
	}
}
