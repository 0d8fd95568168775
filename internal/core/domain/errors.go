package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input, such as an
	// empty question or an empty upload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no extractor can handle.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptyDocument indicates extraction produced no readable text.
	ErrEmptyDocument = errors.New("document appears to be empty")

	// ErrUndecodable indicates the bytes could not be decoded into text.
	ErrUndecodable = errors.New("document could not be decoded")

	// ErrCacheMiss indicates the fingerprint is unknown or its entry expired.
	// Callers should re-ingest the document.
	ErrCacheMiss = errors.New("document not found in cache, please upload the file again")

	// ErrLLMUnavailable indicates the completion service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUpstream is matched by every *UpstreamError via errors.Is.
	ErrUpstream = errors.New("upstream completion failure")

	// ErrNotLegalDocument is matched by every *NotLegalDocumentError.
	ErrNotLegalDocument = errors.New("not a legal document")
)

// UpstreamKind distinguishes completion API failure modes.
type UpstreamKind string

// Upstream failure kinds.
const (
	UpstreamTimeout   UpstreamKind = "timeout"
	UpstreamStatus    UpstreamKind = "status"
	UpstreamParse     UpstreamKind = "parse"
	UpstreamTransport UpstreamKind = "transport"
)

// UpstreamError describes a failed call to the completion API.
type UpstreamError struct {
	// Kind is the failure mode.
	Kind UpstreamKind

	// Model is the model identifier the request was sent to.
	Model string

	// StatusCode is the HTTP status for UpstreamStatus failures.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *UpstreamError) Error() string {
	switch e.Kind {
	case UpstreamTimeout:
		return fmt.Sprintf("request to model %s timed out", e.Model)
	case UpstreamStatus:
		return fmt.Sprintf("model %s returned status %d: %v", e.Model, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("model %s %s error: %v", e.Model, e.Kind, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// NotLegalDocumentError is returned when a batch upload contains a file
// classified as non-legal with high confidence.
type NotLegalDocumentError struct {
	// FileName is the rejected file.
	FileName string

	// Classification is the classifier verdict for the file.
	Classification Classification
}

// Error implements error.
func (e *NotLegalDocumentError) Error() string {
	return fmt.Sprintf("the file '%s' does not appear to be a legal document (%s, %.1f%% confidence)",
		e.FileName, e.Classification.DocumentType, e.Classification.ConfidencePercent())
}

// Is reports whether target is ErrNotLegalDocument.
func (e *NotLegalDocumentError) Is(target error) bool {
	return target == ErrNotLegalDocument
}
