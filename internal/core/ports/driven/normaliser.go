package driven

import (
	"context"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// Normaliser extracts text from one family of file formats.
type Normaliser interface {
	// SupportedFileTypes returns the file types this normaliser handles.
	SupportedFileTypes() []domain.FileType

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text of a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Normalisation only produces a Document with Content.
// Chunking is handled by the Chunker.
type NormaliseResult struct {
	// Document is the normalised document with Content field populated.
	Document domain.Document
}

// Extractor turns uploaded bytes into plain text.
// Returns domain.ErrUnsupportedType for unknown file types and
// domain.ErrUndecodable when the bytes cannot be read.
type Extractor interface {
	Extract(ctx context.Context, fileType domain.FileType, content []byte) (string, error)
}
