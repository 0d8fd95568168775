// Package llm holds the HTTP plumbing shared by the completion adapters.
// Every failure is reported as a *domain.UpstreamError so callers can tell
// timeouts, bad statuses and undecodable replies apart.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// Do sends req and returns the response body. Non-2xx statuses, transport
// failures and timeouts become *domain.UpstreamError values for model.
func Do(client *http.Client, model string, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, TransportError(req.Context(), model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, TransportError(req.Context(), model, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Kind:       domain.UpstreamStatus,
			Model:      model,
			StatusCode: resp.StatusCode,
			Err:        errors.New(truncate(strings.TrimSpace(string(body)), maxErrorBody)),
		}
	}

	return body, nil
}

// TransportError classifies a failed round trip as a timeout or a
// transport failure.
func TransportError(ctx context.Context, model string, err error) *domain.UpstreamError {
	kind := domain.UpstreamTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		kind = domain.UpstreamTimeout
	}
	return &domain.UpstreamError{Kind: kind, Model: model, Err: err}
}

// ParseError reports a reply that could not be decoded.
func ParseError(model string, err error) *domain.UpstreamError {
	return &domain.UpstreamError{Kind: domain.UpstreamParse, Model: model, Err: err}
}

// APIError reports an error object embedded in an otherwise successful reply.
func APIError(model string, statusCode int, message string) *domain.UpstreamError {
	return &domain.UpstreamError{
		Kind:       domain.UpstreamStatus,
		Model:      model,
		StatusCode: statusCode,
		Err:        errors.New(message),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
