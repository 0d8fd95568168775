package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

const testFingerprint = "0cc175b9c0f1b6a831c399e269772661"

var testCreatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result *driving.IngestResult
	batch  *driving.BatchIngestResult
	err    error

	requests []driving.IngestRequest
}

func (m *mockIngestService) Ingest(_ context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &driving.IngestResult{
		Fingerprint: domain.FingerprintOf(req.Content),
		ChunkCount:  1,
		TextLength:  len(req.Content),
		CreatedAt:   testCreatedAt,
	}, nil
}

func (m *mockIngestService) IngestMany(
	_ context.Context,
	reqs []driving.IngestRequest,
) (*driving.BatchIngestResult, error) {
	m.requests = append(m.requests, reqs...)
	return m.batch, m.err
}

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer string
	err    error

	fingerprint domain.Fingerprint
	question    string
}

func (m *mockQueryService) Ask(_ context.Context, fp domain.Fingerprint, question string) (string, error) {
	m.fingerprint = fp
	m.question = question
	return m.answer, m.err
}

func (m *mockQueryService) Answer(_ context.Context, _ string, _ []string) string {
	return m.answer
}

// mockValidationService is a mock implementation of driving.ValidationService.
type mockValidationService struct {
	result *domain.Classification
	err    error
}

func (m *mockValidationService) Validate(_ context.Context, _ domain.Fingerprint) (*domain.Classification, error) {
	return m.result, m.err
}

func newTestPorts() *Ports {
	return &Ports{
		Ingest: &mockIngestService{},
		Query:  &mockQueryService{answer: "The contract renews annually."},
	}
}
