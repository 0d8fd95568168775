package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// ValidationService classifies cached documents as legal or not.
type ValidationService struct {
	cache      driven.DocumentCache
	classifier driven.DocumentClassifier
}

// NewValidationService creates a validation service.
func NewValidationService(cache driven.DocumentCache, classifier driven.DocumentClassifier) *ValidationService {
	return &ValidationService{
		cache:      cache,
		classifier: classifier,
	}
}

// Validate classifies the original (unrefined) chunks of a cached document.
// Callers decide acceptance with Classification.Accepted.
func (s *ValidationService) Validate(ctx context.Context, fp domain.Fingerprint) (*domain.Classification, error) {
	entry, ok := s.cache.Get(fp)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCacheMiss, fp.Short())
	}
	if len(entry.Chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks stored for %s", domain.ErrEmptyDocument, fp.Short())
	}

	done := logger.Timed("classification")
	verdict := s.classifier.Classify(ctx, entry.Chunks)
	done()

	if verdict.Accepted() {
		logger.Info("Legal document validated: %s", verdict.DocumentType)
	} else {
		logger.Info("Document not accepted as legal: %s (%.1f%%)", verdict.DocumentType, verdict.ConfidencePercent())
	}
	return &verdict, nil
}
