// Package filesystem watches an inbox directory and ingests documents
// dropped into it.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// DefaultSettleDelay is how long a file must stop changing before it is
// ingested.
const DefaultSettleDelay = 300 * time.Millisecond

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Ingester is the part of the ingest service the watcher needs.
type Ingester interface {
	Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error)
}

// Event reports the outcome of ingesting one file.
type Event struct {
	// Path is the absolute file path.
	Path string

	// Result is set when ingestion succeeded.
	Result *driving.IngestResult

	// Err is set when reading or ingesting the file failed.
	Err error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettleDelay sets how long writes must pause before ingestion.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// Watcher ingests supported files created or rewritten in a directory.
// Removals are ignored: cache entries are keyed by content and expire on
// their own.
type Watcher struct {
	root     string
	ingester Ingester
	settle   time.Duration

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// New creates a watcher for root.
func New(root string, ingester Ingester, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		ingester: ingester,
		settle:   DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Watch starts watching. The returned channel receives one Event per
// ingested file and is closed when ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if err := w.validateRoot(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.root, err)
	}
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.watcher = fsw

	events := make(chan Event)
	go w.run(ctx, fsw, events)

	logger.Info("Watching %s for new documents", w.root)
	return events, nil
}

// Close stops watching. It is idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher) validateRoot() error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", w.root)
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, events chan<- Event) {
	defer close(events)

	ready := make(chan string)
	stop := make(chan struct{})
	defer close(stop)
	var timersMu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		timersMu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		timersMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			path, ok := w.handleFsEvent(event)
			if !ok {
				continue
			}
			timersMu.Lock()
			if t, exists := timers[path]; exists {
				t.Reset(w.settle)
			} else {
				timers[path] = time.AfterFunc(w.settle, func() {
					timersMu.Lock()
					delete(timers, path)
					timersMu.Unlock()
					select {
					case ready <- path:
					case <-stop:
					}
				})
			}
			timersMu.Unlock()

		case path := <-ready:
			select {
			case events <- w.ingest(ctx, path):
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleFsEvent returns the path to ingest for a create or write event on
// a visible regular file of a supported type.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if w.hidden(event.Name) {
		return "", false
	}
	if !domain.FileTypeFromName(event.Name).IsValid() {
		logger.Debug("Ignoring unsupported file %s", event.Name)
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

func (w *Watcher) ingest(ctx context.Context, path string) Event {
	req, err := ReadRequest(path)
	if err != nil {
		return Event{Path: path, Err: err}
	}

	result, err := w.ingester.Ingest(ctx, req)
	if err != nil {
		logger.Warn("Ingesting %s failed: %v", path, err)
		return Event{Path: path, Err: err}
	}
	logger.Info("Ingested %s as %s", filepath.Base(path), result.Fingerprint)
	return Event{Path: path, Result: result}
}

// hidden checks only the components below root, so a root that itself
// lives under a dot directory still sees its files.
func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return isHidden(rel)
}

// isHidden reports whether any path component starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
