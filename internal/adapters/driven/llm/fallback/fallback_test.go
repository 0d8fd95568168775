package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

type stubLLM struct {
	model  string
	out    string
	err    error
	calls  int
	models []string
	closed bool
}

func (s *stubLLM) Generate(context.Context, string, driven.GenerateOptions) (string, error) {
	s.calls++
	return s.out, s.err
}
func (s *stubLLM) ModelName() string          { return s.model }
func (s *stubLLM) Ping(context.Context) error { return s.err }
func (s *stubLLM) Close() error               { s.closed = true; return nil }
func (s *stubLLM) ListModels(context.Context) ([]string, error) {
	return s.models, s.err
}

func statusErr(model string) error {
	return &domain.UpstreamError{Kind: domain.UpstreamStatus, Model: model, StatusCode: 503, Err: errors.New("unavailable")}
}

func TestNew_RequiresService(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestGenerate_PrimarySucceeds(t *testing.T) {
	primary := &stubLLM{model: "a", out: "answer"}
	backup := &stubLLM{model: "b", out: "backup"}
	svc, err := New([]driven.LLMService{primary, backup})
	require.NoError(t, err)

	out, err := svc.Generate(context.Background(), "q", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "answer", out)
	assert.Equal(t, 0, backup.calls)
}

func TestGenerate_FallsBackOnStatus(t *testing.T) {
	primary := &stubLLM{model: "a", err: statusErr("a")}
	backup := &stubLLM{model: "b", out: "from b"}
	svc, err := New([]driven.LLMService{primary, backup})
	require.NoError(t, err)

	out, err := svc.Generate(context.Background(), "q", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "from b", out)
	assert.Equal(t, 1, primary.calls)
}

func TestGenerate_StopsOnTimeout(t *testing.T) {
	primary := &stubLLM{model: "a", err: &domain.UpstreamError{Kind: domain.UpstreamTimeout, Model: "a", Err: context.DeadlineExceeded}}
	backup := &stubLLM{model: "b", out: "from b"}
	svc, err := New([]driven.LLMService{primary, backup})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "q", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, 0, backup.calls)
}

func TestGenerate_AllFailReturnsPrimaryError(t *testing.T) {
	a := &stubLLM{model: "a", err: statusErr("a")}
	b := &stubLLM{model: "b", err: statusErr("b")}
	svc, err := New([]driven.LLMService{a, b})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "q", driven.GenerateOptions{})

	var ue *domain.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "a", ue.Model)
	assert.Equal(t, 1, b.calls)
}

func TestGenerate_RespectsMaxAttempts(t *testing.T) {
	stubs := []*stubLLM{
		{model: "a", err: statusErr("a")},
		{model: "b", err: statusErr("b")},
		{model: "c", out: "c"},
	}
	svc, err := New([]driven.LLMService{stubs[0], stubs[1], stubs[2]}, WithMaxAttempts(2))
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "q", driven.GenerateOptions{})
	assert.Error(t, err)
	assert.Equal(t, 0, stubs[2].calls)
}

func TestGenerate_CancelledContext(t *testing.T) {
	a := &stubLLM{model: "a", out: "x"}
	svc, err := New([]driven.LLMService{a}, WithRateLimit(1, 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Generate(ctx, "q", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, a.calls)
}

func TestListModels(t *testing.T) {
	a := &stubLLM{model: "a", models: []string{"x", "y"}}
	svc, err := New([]driven.LLMService{a, &stubLLM{model: "b"}})
	require.NoError(t, err)

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, models)

	failing := &stubLLM{model: "a", err: statusErr("a")}
	svc, err = New([]driven.LLMService{failing, &stubLLM{model: "b"}})
	require.NoError(t, err)
	models, err = svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, models)
}

func TestModelNameAndClose(t *testing.T) {
	a := &stubLLM{model: "a"}
	b := &stubLLM{model: "b"}
	svc, err := New([]driven.LLMService{a, b})
	require.NoError(t, err)

	assert.Equal(t, "a", svc.ModelName())
	require.NoError(t, svc.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
