package driven

import (
	"context"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a document.
// It maintains a priority-ordered list of normalisers and dispatches
// on file type.
type NormaliserRegistry interface {
	Extractor

	// Normalise transforms a raw document using the best matching normaliser.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedFileTypes returns all file types that can be normalised.
	SupportedFileTypes() []domain.FileType
}
