package driven

import "github.com/custodia-labs/lexqa/internal/core/domain"

// DocumentCache is the memory-resident store of processed documents,
// keyed by content fingerprint. Entries expire after a retention period.
// Implementations must be safe for concurrent use and must never expose a
// half-written or half-deleted entry.
type DocumentCache interface {
	// Fingerprint returns the cache key for raw bytes.
	Fingerprint(data []byte) domain.Fingerprint

	// Has reports whether a live entry exists. Expired entries are evicted.
	Has(fp domain.Fingerprint) bool

	// Get returns a snapshot of a live entry. Expired entries are evicted
	// and reported as absent.
	Get(fp domain.Fingerprint) (*domain.CacheEntry, bool)

	// Put inserts or wholesale replaces an entry and resets its timestamp.
	// A nil refined slice, or one whose length differs from chunks, is
	// stored as a copy of chunks.
	// truncated records that chunks cover only a prefix of rawText.
	Put(fp domain.Fingerprint, rawText string, chunks, refined []string, truncated bool)

	// SweepExpired removes every expired entry and returns how many were removed.
	SweepExpired() int

	// Len returns the number of stored entries, live or not yet swept.
	Len() int
}
