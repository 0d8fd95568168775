package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
)

const docHeader = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
`

const docFooter = `
</w:body>
</w:document>`

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(body string) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	// Add [Content_Types].xml (required for valid DOCX)
	contentTypes, _ := w.Create("[Content_Types].xml")
	contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))

	doc, _ := w.Create("word/document.xml")
	doc.Write([]byte(docHeader + body + docFooter))

	w.Close()
	return buf.Bytes()
}

func normalise(t *testing.T, content []byte) string {
	t.Helper()
	result, err := New().Normalise(context.Background(), domain.NewRawDocument("contract.docx", content))
	require.NoError(t, err)
	require.NotNil(t, result)
	return result.Document.Content
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedFileTypes(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypeWord}, New().SupportedFileTypes())
}

func TestPriority(t *testing.T) {
	normaliser := New()
	assert.Equal(t, 50, normaliser.Priority())
}

func TestNormalise_Success(t *testing.T) {
	content := createTestDOCX(`<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`)

	result, err := New().Normalise(context.Background(), domain.NewRawDocument("contract.docx", content))
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "contract.docx", doc.Name)
	assert.Equal(t, domain.FileTypeWord, doc.FileType)
	assert.Equal(t, "Hello World", doc.Content)
}

func TestNormalise_NilDocument(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	result, err := normaliser.Normalise(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_InvalidZip(t *testing.T) {
	raw := domain.NewRawDocument("legacy.doc", []byte("not a zip file"))

	result, err := New().Normalise(context.Background(), raw)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUndecodable)
	assert.Nil(t, result)
}

func TestNormalise_InvalidXML(t *testing.T) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	doc, _ := w.Create("word/document.xml")
	doc.Write([]byte("<w:document><w:body>"))
	w.Close()

	_, err := New().Normalise(context.Background(), domain.NewRawDocument("broken.docx", buf.Bytes()))
	assert.ErrorIs(t, err, domain.ErrUndecodable)
}

func TestNormalise_MultipleParagraphs(t *testing.T) {
	got := normalise(t, createTestDOCX(`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Third paragraph</w:t></w:r></w:p>`))

	assert.Equal(t, "First paragraph\nSecond paragraph\nThird paragraph", got)
}

func TestNormalise_MultipleRuns(t *testing.T) {
	// Multiple runs in a single paragraph (e.g., different formatting)
	got := normalise(t, createTestDOCX(`<w:p>
<w:r><w:t xml:space="preserve">Hello </w:t></w:r>
<w:r><w:t>World</w:t></w:r>
</w:p>`))

	assert.Equal(t, "Hello World", got)
}

func TestNormalise_Tables(t *testing.T) {
	got := normalise(t, createTestDOCX(`<w:p><w:r><w:t>Schedule of payments</w:t></w:r></w:p>
<w:tbl>
<w:tr>
<w:tc><w:p><w:r><w:t>Month</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>Amount</w:t></w:r></w:p></w:tc>
</w:tr>
<w:tr>
<w:tc><w:p><w:r><w:t>January</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>$1,200</w:t></w:r></w:p></w:tc>
</w:tr>
</w:tbl>`))

	assert.Equal(t, "Schedule of payments\nMonth Amount\nJanuary $1,200", got)
}

func TestNormalise_EmptyDocument(t *testing.T) {
	assert.Empty(t, normalise(t, createTestDOCX("")))
}

func TestNormalise_MissingDocumentXML(t *testing.T) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	w.Create("docProps/core.xml")
	w.Close()

	assert.Empty(t, normalise(t, buf.Bytes()))
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func BenchmarkNormalise(b *testing.B) {
	normaliser := New()
	ctx := context.Background()
	raw := domain.NewRawDocument("contract.docx", createTestDOCX(`<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = normaliser.Normalise(ctx, raw)
	}
}
