package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches raw documents to the highest priority normaliser
// that handles their file type.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser. Normalisers are kept ordered by descending
// priority; equal priorities keep registration order.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Normalise extracts raw with the best matching normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	n := r.lookup(raw.FileType)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.FileType)
	}
	return n.Normalise(ctx, raw)
}

// Extract returns the text of content interpreted as fileType.
func (r *Registry) Extract(ctx context.Context, fileType domain.FileType, content []byte) (string, error) {
	result, err := r.Normalise(ctx, &domain.RawDocument{FileType: fileType, Content: content})
	if err != nil {
		return "", err
	}
	return result.Document.Content, nil
}

// SupportedFileTypes returns every handled file type, sorted.
func (r *Registry) SupportedFileTypes() []domain.FileType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.FileType]bool)
	var types []domain.FileType
	for _, n := range r.normalisers {
		for _, ft := range n.SupportedFileTypes() {
			if !seen[ft] {
				seen[ft] = true
				types = append(types, ft)
			}
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (r *Registry) lookup(ft domain.FileType) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.normalisers {
		for _, supported := range n.SupportedFileTypes() {
			if supported == ft {
				return n
			}
		}
	}
	return nil
}
