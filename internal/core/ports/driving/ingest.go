package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// IngestRequest is one uploaded file.
type IngestRequest struct {
	// Name is the uploaded file name; its extension selects the extractor.
	Name string

	// Content is the raw file bytes.
	Content []byte
}

// IngestResult describes the cache entry an upload resolved to.
type IngestResult struct {
	// Fingerprint is the cache key for the document.
	Fingerprint domain.Fingerprint

	// ChunkCount is the number of chunks stored.
	ChunkCount int

	// AlreadyCached reports that a live entry existed and no work was done.
	AlreadyCached bool

	// TextLength is the extracted text length in characters.
	TextLength int

	// Truncated reports that the chunk cap left the tail of the text unchunked.
	Truncated bool

	// Refined reports that chunks were rewritten by the completion service.
	Refined bool

	// CreatedAt is when the entry was stored.
	CreatedAt time.Time
}

// BatchIngestResult describes a multi-file upload.
type BatchIngestResult struct {
	IngestResult

	// Documents lists the file names that were combined, in order.
	Documents []string

	// Skipped lists file names that produced no readable text.
	Skipped []string

	// Classifications holds the verdict per accepted file name.
	Classifications map[string]domain.Classification
}

// IngestService turns uploads into cached, chunked documents.
type IngestService interface {
	// Ingest extracts, chunks and caches one file. Identical bytes resolve
	// to the existing entry without re-processing.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)

	// IngestMany combines several files into one cached document.
	// A file classified as confidently non-legal rejects the whole batch
	// with a *domain.NotLegalDocumentError.
	IngestMany(ctx context.Context, reqs []IngestRequest) (*BatchIngestResult, error)
}
