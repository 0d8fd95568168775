// Package pdf extracts the text layer of PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// PageReader returns the text of each page in order.
type PageReader func(content []byte) ([]string, error)

// Normaliser handles PDF documents. Scanned PDFs without a text layer
// produce empty content.
type Normaliser struct {
	pages PageReader
}

// New creates a PDF normaliser backed by the pure Go PDF reader.
func New() *Normaliser {
	return &Normaliser{pages: readPages}
}

// NewWithPageReader creates a normaliser using a custom page reader.
func NewWithPageReader(pages PageReader) *Normaliser {
	return &Normaliser{pages: pages}
}

// SupportedFileTypes returns the file types this normaliser handles.
func (n *Normaliser) SupportedFileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific normaliser
}

// Normalise extracts every page and ends each with a newline.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pages, err := n.pages(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUndecodable, err)
	}
	logger.Debug("PDF %s has %d pages", raw.Name, len(pages))

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:     raw.Name,
			FileType: raw.FileType,
			Content:  joinPages(pages),
		},
	}, nil
}

func joinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}

// readPages reads the text layer with github.com/ledongthuc/pdf. The
// reader panics on some malformed inputs, so panics become errors.
func readPages(content []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
