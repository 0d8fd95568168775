package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedFileTypes(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypeText}, New().SupportedFileTypes())
}

func TestPriority(t *testing.T) {
	normaliser := New()
	assert.Equal(t, 5, normaliser.Priority())
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	raw := domain.NewRawDocument("lease.txt", []byte("This is plain text content."))

	result, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	doc := result.Document
	assert.Equal(t, "lease.txt", doc.Name)
	assert.Equal(t, domain.FileTypeText, doc.FileType)
	assert.Equal(t, "This is plain text content.", doc.Content)
}

func TestNormalise_NilDocument(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	result, err := normaliser.Normalise(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_EmptyContent(t *testing.T) {
	result, err := New().Normalise(context.Background(), domain.NewRawDocument("empty.txt", nil))

	require.NoError(t, err)
	assert.Empty(t, result.Document.Content)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"utf-8", []byte("Café clause §4"), "Café clause §4"},
		{"utf-8 with bom", []byte("\xEF\xBB\xBFTerms"), "Terms"},
		{"latin-1", []byte("Caf\xE9 \xA74"), "Café §4"},
		{"windows-1252 quotes", []byte("\x93Tenant\x94 \x96 lessee"), "“Tenant” – lessee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoC1Controls(t *testing.T) {
	assert.True(t, noC1Controls("plain é"))
	assert.False(t, noC1Controls("bad \u0093"))
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}
