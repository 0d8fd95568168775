// Package chunker provides a sentence-aware, overlapping text chunker.
package chunker

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// DefaultMaxChunks is the default cap on chunks per document.
const DefaultMaxChunks = domain.DefaultMaxChunks

// boundaryRatio is the earliest point in a window, as a fraction of the
// chunk size, at which a period may end the chunk.
const boundaryRatio = 0.7

// parallelWorkers bounds the concurrent chunker.
const parallelWorkers = 4

// Processor splits document content into overlapping chunks that prefer
// to end on a sentence boundary. Lengths are counted in characters.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
	maxChunks int
	parallel  bool
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithMaxChunks caps the number of chunks produced for one document.
func WithMaxChunks(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxChunks = n
		}
	}
}

// WithParallel selects the concurrent fixed-stride chunker.
func WithParallel(parallel bool) Option {
	return func(p *Processor) {
		p.parallel = parallel
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
		maxChunks: DefaultMaxChunks,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(ctx context.Context, doc *domain.Document, _ []string) ([]string, error) {
	res, err := p.Chunk(ctx, doc.Content)
	if err != nil {
		return nil, err
	}
	return res.Chunks, nil
}

// Chunk splits text using the configured strategy.
func (p *Processor) Chunk(ctx context.Context, text string) (domain.ChunkResult, error) {
	if p.parallel {
		return p.SplitParallel(ctx, text)
	}
	return p.Split(text), nil
}

// Split walks the text once from left to right. Each window is
// [start, start+chunkSize); when the window ends before the text does,
// it is cut after the last period at or beyond 70% of the window.
// The next window starts overlap characters before the cut.
func (p *Processor) Split(text string) domain.ChunkResult {
	if text == "" {
		return domain.ChunkResult{}
	}

	runes := []rune(text)
	n := len(runes)
	if n <= p.chunkSize {
		return domain.ChunkResult{Chunks: []string{text}}
	}

	var chunks []string
	start := 0
	for start < n {
		if len(chunks) >= p.maxChunks {
			return domain.ChunkResult{Chunks: chunks, Truncated: true}
		}

		end := start + p.chunkSize
		if end < n {
			end = p.sentenceEnd(runes, start, end)
		}

		if chunk := strings.TrimSpace(string(runes[start:min(end, n)])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		// The window end is not clamped to n. A window ending in
		// [n, n+overlap) leaves start below n, so one more chunk holding
		// only the overlap tail follows it.
		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return domain.ChunkResult{Chunks: chunks}
}

// SplitParallel precomputes fixed-stride window starts and trims each
// window concurrently. Windows are reassembled in offset order, so the
// output is deterministic.
func (p *Processor) SplitParallel(ctx context.Context, text string) (domain.ChunkResult, error) {
	if text == "" {
		return domain.ChunkResult{}, nil
	}

	runes := []rune(text)
	n := len(runes)
	if n <= p.chunkSize {
		return domain.ChunkResult{Chunks: []string{text}}, nil
	}

	stride := p.chunkSize - p.overlap
	var starts []int
	for start := 0; start < n; start += stride {
		starts = append(starts, start)
	}

	truncated := false
	if len(starts) > p.maxChunks {
		starts = starts[:p.maxChunks]
		truncated = true
	}

	windows := make([]string, len(starts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelWorkers)

	for i, start := range starts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			end := min(start+p.chunkSize, n)
			if end < n {
				end = p.sentenceEnd(runes, start, end)
			}
			windows[i] = strings.TrimSpace(string(runes[start:end]))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.ChunkResult{}, err
	}

	chunks := make([]string, 0, len(windows))
	for _, w := range windows {
		if w != "" {
			chunks = append(chunks, w)
		}
	}

	return domain.ChunkResult{Chunks: chunks, Truncated: truncated}, nil
}

// sentenceEnd returns the cut point for the window [start, end): one past
// the last period if it lies at or beyond the boundary ratio, else end.
func (p *Processor) sentenceEnd(runes []rune, start, end int) int {
	minOffset := int(float64(p.chunkSize) * boundaryRatio)
	for i := end - 1; i >= start+minOffset; i-- {
		if runes[i] == '.' {
			return i + 1
		}
	}
	return end
}
