package normalisers

import (
	"github.com/custodia-labs/lexqa/internal/normalisers/docx"
	"github.com/custodia-labs/lexqa/internal/normalisers/image"
	"github.com/custodia-labs/lexqa/internal/normalisers/pdf"
	"github.com/custodia-labs/lexqa/internal/normalisers/plaintext"
)

// NewDefaultRegistry returns a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		plaintext.New(),
		pdf.New(),
		docx.New(),
		image.New(),
	)
}
