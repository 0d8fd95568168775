package driven

import (
	"context"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// DocumentClassifier decides whether chunked text looks like a legal document.
// Classify never fails: every failure resolves to a conservative default.
type DocumentClassifier interface {
	Classify(ctx context.Context, chunks []string) domain.Classification
}
