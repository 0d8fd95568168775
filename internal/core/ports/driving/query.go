package driving

import (
	"context"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// QueryService answers questions about cached documents.
type QueryService interface {
	// Ask answers a question about the document with the given fingerprint.
	// Returns domain.ErrInvalidInput for an empty question,
	// domain.ErrCacheMiss for an unknown or expired fingerprint and
	// domain.ErrLLMUnavailable when no completion service is configured.
	Ask(ctx context.Context, fp domain.Fingerprint, question string) (string, error)

	// Answer answers a question from the given chunks. It always returns
	// user-facing text; failures are folded into the answer.
	Answer(ctx context.Context, question string, chunks []string) string
}
