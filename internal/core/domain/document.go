package domain

import "time"

// Document is an uploaded document after text extraction.
type Document struct {
	// Fingerprint identifies the raw bytes the text was extracted from.
	Fingerprint Fingerprint

	// Name is the uploaded file name.
	Name string

	// FileType is the detected file type.
	FileType FileType

	// Content is the full decoded text before chunking.
	Content string
}

// CacheEntry is a processed document held by the document cache.
// Entries are never mutated after they are stored; a re-ingest replaces
// the whole entry.
type CacheEntry struct {
	// Fingerprint is the cache key.
	Fingerprint Fingerprint

	// RawText is the full decoded document text.
	RawText string

	// Chunks are the document segments in document order.
	Chunks []string

	// RefinedChunks has the same length and index correspondence as Chunks.
	// It equals Chunks when no refinement was performed.
	RefinedChunks []string

	// Truncated is set when the chunk limit stopped splitting early.
	Truncated bool

	// CreatedAt is the insertion time used for expiry.
	CreatedAt time.Time
}

// Refined reports whether any chunk differs from its refined counterpart.
func (e *CacheEntry) Refined() bool {
	for i := range e.Chunks {
		if i >= len(e.RefinedChunks) || e.Chunks[i] != e.RefinedChunks[i] {
			return true
		}
	}
	return false
}

// QueryChunks returns the chunk sequence questions should be answered from.
func (e *CacheEntry) QueryChunks() []string {
	if len(e.RefinedChunks) > 0 {
		return e.RefinedChunks
	}
	return e.Chunks
}

// ChunkResult is the output of chunking one document.
type ChunkResult struct {
	// Chunks are the segments in document order.
	Chunks []string

	// Truncated reports that the chunk cap stopped chunking before the
	// end of the text.
	Truncated bool
}
