package driven

import (
	"context"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// PostProcessor processes document content to produce chunks.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns chunks.
	// If the processor modifies chunks (e.g., refinement), it receives and
	// returns chunks of the same length.
	// If the processor creates chunks (e.g., chunker), it receives nil and
	// returns new chunks.
	Process(ctx context.Context, doc *domain.Document, chunks []string) ([]string, error)
}

// Chunker splits document text into ordered, overlapping chunks.
type Chunker interface {
	PostProcessor

	// Chunk splits text and reports whether the chunk cap cut it short.
	Chunk(ctx context.Context, text string) (domain.ChunkResult, error)
}
