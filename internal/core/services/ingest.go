package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService extracts, chunks, optionally refines and caches uploads.
type IngestService struct {
	normalisers driven.NormaliserRegistry
	chunker     driven.Chunker
	cache       driven.DocumentCache
	classifier  driven.DocumentClassifier
	refiner     driven.PostProcessor
	refineMax   int
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithRefiner enables chunk refinement for documents of at most maxChunks
// chunks. A nil refiner or maxChunks of zero disables refinement.
func WithRefiner(refiner driven.PostProcessor, maxChunks int) IngestOption {
	return func(s *IngestService) {
		s.refiner = refiner
		s.refineMax = maxChunks
	}
}

// WithClassifier sets the classifier IngestMany screens files with.
// Without one, every readable file is accepted.
func WithClassifier(classifier driven.DocumentClassifier) IngestOption {
	return func(s *IngestService) {
		s.classifier = classifier
	}
}

// NewIngestService creates an ingest service.
func NewIngestService(
	normalisers driven.NormaliserRegistry,
	chunker driven.Chunker,
	cache driven.DocumentCache,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		normalisers: normalisers,
		chunker:     chunker,
		cache:       cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest processes one upload. Identical bytes resolve to the live cache
// entry without re-processing.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	logger.Section("Ingest")
	logger.Debug("[%s] file=%q bytes=%d", requestID, req.Name, len(req.Content))

	fp := s.cache.Fingerprint(req.Content)
	if entry, ok := s.cache.Get(fp); ok {
		logger.Info("[%s] %s already cached (%d chunks)", requestID, fp.Short(), len(entry.Chunks))
		return cachedResult(entry), nil
	}

	doc, err := s.extract(ctx, req)
	if err != nil {
		return nil, err
	}
	doc.Fingerprint = fp

	return s.store(ctx, requestID, doc)
}

// IngestMany combines several uploads into one cached document.
// Unreadable or empty files are skipped. A file the classifier rejects
// aborts the batch with a *domain.NotLegalDocumentError.
func (s *IngestService) IngestMany(
	ctx context.Context,
	reqs []driving.IngestRequest,
) (*driving.BatchIngestResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no files uploaded", domain.ErrInvalidInput)
	}

	requestID := uuid.NewString()
	logger.Section("Ingest batch")
	logger.Debug("[%s] %d files", requestID, len(reqs))

	batch := &driving.BatchIngestResult{
		Classifications: make(map[string]domain.Classification),
	}
	var combined strings.Builder

	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if req.Name == "" {
			continue
		}

		doc, err := s.extract(ctx, req)
		if err != nil {
			if !isInputError(err) {
				return nil, err
			}
			logger.Warn("Skipping %s: %v", req.Name, err)
			batch.Skipped = append(batch.Skipped, req.Name)
			continue
		}

		if s.classifier != nil {
			verdict, err := s.screen(ctx, doc)
			if err != nil {
				return nil, err
			}
			batch.Classifications[req.Name] = verdict
		}

		combined.WriteString("\n\n=== DOCUMENT: ")
		combined.WriteString(req.Name)
		combined.WriteString(" ===\n\n")
		combined.WriteString(doc.Content)
		batch.Documents = append(batch.Documents, req.Name)
	}

	text := combined.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no readable content found in uploaded files", domain.ErrEmptyDocument)
	}

	fp := s.cache.Fingerprint([]byte(text))
	if entry, ok := s.cache.Get(fp); ok {
		logger.Info("[%s] %s already cached (%d chunks)", requestID, fp.Short(), len(entry.Chunks))
		batch.IngestResult = *cachedResult(entry)
		return batch, nil
	}

	result, err := s.store(ctx, requestID, &domain.Document{
		Fingerprint: fp,
		Name:        strings.Join(batch.Documents, ", "),
		FileType:    domain.FileTypeText,
		Content:     text,
	})
	if err != nil {
		return nil, err
	}
	batch.IngestResult = *result
	return batch, nil
}

// extract turns one upload into a document with non-blank content.
func (s *IngestService) extract(ctx context.Context, req driving.IngestRequest) (*domain.Document, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	raw := domain.NewRawDocument(req.Name, req.Content)
	if raw.FileType == domain.FileTypeUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, req.Name)
	}

	done := logger.Timed("extraction of " + req.Name)
	result, err := s.normalisers.Normalise(ctx, raw)
	done()
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", req.Name, err)
	}

	doc := result.Document
	if strings.TrimSpace(doc.Content) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, req.Name)
	}
	return &doc, nil
}

// screen classifies one file of a batch.
func (s *IngestService) screen(ctx context.Context, doc *domain.Document) (domain.Classification, error) {
	res, err := s.chunker.Chunk(ctx, doc.Content)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("chunk %s: %w", doc.Name, err)
	}

	verdict := s.classifier.Classify(ctx, res.Chunks)
	switch {
	case verdict.Rejected():
		return verdict, &domain.NotLegalDocumentError{FileName: doc.Name, Classification: verdict}
	case !verdict.IsLegal && verdict.Confidence >= domain.WarnConfidence:
		logger.Warn("Possible non-legal document: %s (%s, %.1f%%)",
			doc.Name, verdict.DocumentType, verdict.ConfidencePercent())
	case verdict.IsLegal:
		logger.Info("%s validated as legal document: %s", doc.Name, verdict.DocumentType)
	default:
		logger.Info("Uncertain document type for %s: %s, proceeding", doc.Name, verdict.DocumentType)
	}
	return verdict, nil
}

// store chunks, refines and caches a document.
func (s *IngestService) store(ctx context.Context, requestID string, doc *domain.Document) (*driving.IngestResult, error) {
	done := logger.Timed("chunking")
	res, err := s.chunker.Chunk(ctx, doc.Content)
	done()
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	if len(res.Chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, doc.Name)
	}
	if res.Truncated {
		logger.Warn("%s: chunk limit reached, %d chunks cover only part of %d characters",
			doc.Name, len(res.Chunks), utf8.RuneCountInString(doc.Content))
	}

	refined := s.refine(ctx, doc, res.Chunks)

	s.cache.Put(doc.Fingerprint, doc.Content, res.Chunks, refined, res.Truncated)
	logger.Info("[%s] cached %s: %d chunks", requestID, doc.Fingerprint.Short(), len(res.Chunks))

	result := &driving.IngestResult{
		Fingerprint: doc.Fingerprint,
		ChunkCount:  len(res.Chunks),
		TextLength:  utf8.RuneCountInString(doc.Content),
		Truncated:   res.Truncated,
	}
	if entry, ok := s.cache.Get(doc.Fingerprint); ok {
		result.Refined = entry.Refined()
		result.CreatedAt = entry.CreatedAt
	}
	return result, nil
}

// refine returns rewritten chunks, or nil when refinement is off, the
// document is too large, or the refiner fails.
func (s *IngestService) refine(ctx context.Context, doc *domain.Document, chunks []string) []string {
	if s.refiner == nil || s.refineMax <= 0 {
		return nil
	}
	if len(chunks) > s.refineMax {
		logger.Debug("Skipping refinement: %d chunks exceeds limit of %d", len(chunks), s.refineMax)
		return nil
	}

	done := logger.Timed("refinement")
	defer done()

	refined, err := s.refiner.Process(ctx, doc, chunks)
	if err != nil {
		logger.Warn("Refinement failed, using original chunks: %v", err)
		return nil
	}
	if len(refined) != len(chunks) {
		logger.Warn("Refiner returned %d chunks for %d, using original chunks", len(refined), len(chunks))
		return nil
	}
	return refined
}

func checkRequest(req driving.IngestRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if len(req.Content) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEmptyDocument, req.Name)
	}
	return nil
}

func cachedResult(entry *domain.CacheEntry) *driving.IngestResult {
	return &driving.IngestResult{
		Fingerprint:   entry.Fingerprint,
		ChunkCount:    len(entry.Chunks),
		AlreadyCached: true,
		TextLength:    utf8.RuneCountInString(entry.RawText),
		Refined:       entry.Refined(),
		Truncated:     entry.Truncated,
		CreatedAt:     entry.CreatedAt,
	}
}

// isInputError reports errors that concern one file rather than the batch.
func isInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrUnsupportedType) ||
		errors.Is(err, domain.ErrEmptyDocument) ||
		errors.Is(err, domain.ErrUndecodable)
}
