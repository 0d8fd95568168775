package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrEmptyDocument", ErrEmptyDocument},
		{"ErrUndecodable", ErrUndecodable},
		{"ErrCacheMiss", ErrCacheMiss},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrUpstream", ErrUpstream},
		{"ErrNotLegalDocument", ErrNotLegalDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrCacheMiss_DistinctFromInput(t *testing.T) {
	wrapped := fmt.Errorf("ask: %w", ErrCacheMiss)
	assert.True(t, errors.Is(wrapped, ErrCacheMiss))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
}

func TestUpstreamError_Is(t *testing.T) {
	err := &UpstreamError{Kind: UpstreamStatus, Model: "m", StatusCode: 429, Err: errors.New("rate limited")}
	wrapped := fmt.Errorf("generate: %w", err)

	assert.True(t, errors.Is(wrapped, ErrUpstream))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))

	var ue *UpstreamError
	assert.True(t, errors.As(wrapped, &ue))
	assert.Equal(t, 429, ue.StatusCode)
	assert.Contains(t, ue.Error(), "429")
}

func TestUpstreamError_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      *UpstreamError
		contains string
	}{
		{"timeout", &UpstreamError{Kind: UpstreamTimeout, Model: "a", Err: context.DeadlineExceeded}, "timed out"},
		{"status", &UpstreamError{Kind: UpstreamStatus, Model: "a", StatusCode: 500, Err: errors.New("boom")}, "status 500"},
		{"parse", &UpstreamError{Kind: UpstreamParse, Model: "a", Err: errors.New("bad json")}, "parse error"},
		{"transport", &UpstreamError{Kind: UpstreamTransport, Model: "a", Err: errors.New("refused")}, "transport error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.contains)
		})
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	err := &UpstreamError{Kind: UpstreamTimeout, Model: "a", Err: context.DeadlineExceeded}
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNotLegalDocumentError(t *testing.T) {
	err := &NotLegalDocumentError{
		FileName: "recipe.txt",
		Classification: Classification{
			IsLegal:      false,
			Confidence:   0.85,
			DocumentType: "Recipe",
		},
	}

	assert.True(t, errors.Is(err, ErrNotLegalDocument))
	assert.Contains(t, err.Error(), "recipe.txt")
	assert.Contains(t, err.Error(), "85.0%")
	assert.Contains(t, err.Error(), "Recipe")
}
