package driving

import (
	"context"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// ValidationService classifies cached documents.
type ValidationService interface {
	// Validate classifies the cached document with the given fingerprint.
	// Returns domain.ErrCacheMiss for an unknown or expired fingerprint.
	Validate(ctx context.Context, fp domain.Fingerprint) (*domain.Classification, error)
}
