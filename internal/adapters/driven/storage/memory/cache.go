package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure DocumentCache implements the interface.
var _ driven.DocumentCache = (*DocumentCache)(nil)

// DocumentCache is an in-memory, expiring implementation of
// driven.DocumentCache. A single mutex guards every entry together with
// its timestamp, so readers never observe one without the other.
type DocumentCache struct {
	mu        sync.Mutex
	entries   map[domain.Fingerprint]*domain.CacheEntry
	retention time.Duration
	now       func() time.Time

	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// CacheOption configures a DocumentCache.
type CacheOption func(*DocumentCache)

// WithRetention sets how long entries stay live after insertion.
func WithRetention(d time.Duration) CacheOption {
	return func(c *DocumentCache) {
		if d > 0 {
			c.retention = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *DocumentCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewDocumentCache creates an empty cache with 24-hour retention.
func NewDocumentCache(opts ...CacheOption) *DocumentCache {
	c := &DocumentCache{
		entries:   make(map[domain.Fingerprint]*domain.CacheEntry),
		retention: domain.DefaultCacheRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fingerprint returns the content digest used as cache key.
func (c *DocumentCache) Fingerprint(data []byte) domain.Fingerprint {
	return domain.FingerprintOf(data)
}

// Has reports whether a live entry exists, evicting it if expired.
func (c *DocumentCache) Has(fp domain.Fingerprint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.liveLocked(fp)
	return ok
}

// Get returns a copy of a live entry, evicting it if expired.
func (c *DocumentCache) Get(fp domain.Fingerprint) (*domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.liveLocked(fp)
	if !ok {
		return nil, false
	}
	snapshot := *entry
	snapshot.Chunks = append([]string(nil), entry.Chunks...)
	snapshot.RefinedChunks = append([]string(nil), entry.RefinedChunks...)
	return &snapshot, true
}

// Put stores a new entry, replacing any previous one for fp.
func (c *DocumentCache) Put(fp domain.Fingerprint, rawText string, chunks, refined []string, truncated bool) {
	stored := append([]string(nil), chunks...)
	if len(refined) != len(chunks) {
		refined = chunks
	}
	storedRefined := append([]string(nil), refined...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fp] = &domain.CacheEntry{
		Fingerprint:   fp,
		RawText:       rawText,
		Chunks:        stored,
		RefinedChunks: storedRefined,
		Truncated:     truncated,
		CreatedAt:     c.now(),
	}
}

// SweepExpired removes every expired entry.
func (c *DocumentCache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for fp, entry := range c.entries {
		if c.expired(entry, now) {
			delete(c.entries, fp)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries.
func (c *DocumentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Start runs a background sweeper every interval until ctx is done or
// Close is called. A non-positive interval is a no-op.
func (c *DocumentCache) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stopCh = make(chan struct{})
	stopCh := c.stopCh
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
				if n := c.SweepExpired(); n > 0 {
					logger.Debug("cache: swept %d expired entries", n)
				}
			}
		}
	}()
}

// Close stops the background sweeper and waits for it to exit.
func (c *DocumentCache) Close() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()

	c.wg.Wait()
	return nil
}

// liveLocked returns the entry for fp if it has not expired.
// Expired entries are deleted. Callers must hold c.mu.
func (c *DocumentCache) liveLocked(fp domain.Fingerprint) (*domain.CacheEntry, bool) {
	entry, ok := c.entries[fp]
	if !ok {
		return nil, false
	}
	if c.expired(entry, c.now()) {
		delete(c.entries, fp)
		return nil, false
	}
	return entry, true
}

// An entry created at t expires at exactly t + retention.
func (c *DocumentCache) expired(entry *domain.CacheEntry, now time.Time) bool {
	return now.Sub(entry.CreatedAt) >= c.retention
}
