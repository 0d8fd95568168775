// Package fallback chains completion services, one per model, and tries
// them in order until one answers.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure Service implements the interfaces.
var (
	_ driven.LLMService  = (*Service)(nil)
	_ driven.ModelLister = (*Service)(nil)
)

// DefaultMaxAttempts caps how many models one request may try.
const DefaultMaxAttempts = 4

// Service tries each wrapped service in order. It moves to the next model
// only when the previous one answered with a bad status or an undecodable
// reply; timeouts, transport failures and caller cancellation end the chain.
type Service struct {
	services    []driven.LLMService
	maxAttempts int
	limiter     *rate.Limiter
}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts caps the number of models tried per request.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRateLimit limits outbound requests across all models.
// A non-positive rate disables limiting.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(s *Service) {
		if requestsPerSecond <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// New creates a fallback chain. The first service is the primary model.
func New(services []driven.LLMService, opts ...Option) (*Service, error) {
	if len(services) == 0 {
		return nil, fmt.Errorf("fallback: at least one service is required")
	}
	s := &Service{
		services:    services,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate asks each model in turn until one succeeds.
func (s *Service) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	attempts := min(s.maxAttempts, len(s.services))
	var firstErr error

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", s.finalError(firstErr, err)
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return "", s.finalError(firstErr, err)
			}
		}

		svc := s.services[i]
		out, err := svc.Generate(ctx, prompt, opts)
		if err == nil {
			if i > 0 {
				logger.Info("used fallback model: %s", svc.ModelName())
			}
			return out, nil
		}

		logger.Debug("model %s failed: %v", svc.ModelName(), err)
		if firstErr == nil {
			firstErr = err
		}
		if !retryable(err) {
			break
		}
	}

	return "", firstErr
}

// ModelName returns the primary model.
func (s *Service) ModelName() string {
	return s.services[0].ModelName()
}

// Models returns every model in the chain, in order.
func (s *Service) Models() []string {
	names := make([]string, len(s.services))
	for i, svc := range s.services {
		names[i] = svc.ModelName()
	}
	return names
}

// ListModels asks the primary service for the endpoint's models, falling
// back to the configured chain when it cannot list them.
func (s *Service) ListModels(ctx context.Context) ([]string, error) {
	if lister, ok := s.services[0].(driven.ModelLister); ok {
		models, err := lister.ListModels(ctx)
		if err == nil && len(models) > 0 {
			return models, nil
		}
		if err != nil {
			logger.Debug("list models failed, using configured chain: %v", err)
		}
	}
	return s.Models(), nil
}

// Ping checks the primary service.
func (s *Service) Ping(ctx context.Context) error {
	return s.services[0].Ping(ctx)
}

// Close closes every wrapped service.
func (s *Service) Close() error {
	var errs []error
	for _, svc := range s.services {
		if err := svc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) finalError(firstErr, ctxErr error) error {
	if firstErr != nil {
		return firstErr
	}
	kind := domain.UpstreamTransport
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		kind = domain.UpstreamTimeout
	}
	return &domain.UpstreamError{Kind: kind, Model: s.ModelName(), Err: ctxErr}
}

// retryable reports whether another model might succeed where this one failed.
func retryable(err error) bool {
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	return ue.Kind == domain.UpstreamStatus || ue.Kind == domain.UpstreamParse
}
