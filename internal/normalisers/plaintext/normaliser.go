package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// fallback is a single-byte encoding tried when the content is not UTF-8.
type fallback struct {
	name     string
	encoding encoding.Encoding
	// accept rejects decodings that are implausible for this encoding.
	accept func(string) bool
}

// Fallback encodings in the order they are tried.
var fallbacks = []fallback{
	{"latin-1", charmap.ISO8859_1, noC1Controls},
	{"windows-1252", charmap.Windows1252, func(string) bool { return true }},
}

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedFileTypes returns the file types this normaliser handles.
func (n *Normaliser) SupportedFileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeText}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise decodes the raw bytes as UTF-8, then Latin-1, then Windows-1252.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, err := Decode(raw.Content)
	if err != nil {
		return nil, err
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:     raw.Name,
			FileType: raw.FileType,
			Content:  content,
		},
	}, nil
}

// Decode converts bytes to a string using the first encoding that fits.
func Decode(b []byte) (string, error) {
	if utf8.Valid(b) {
		return strings.TrimPrefix(string(b), "\uFEFF"), nil
	}

	for _, fb := range fallbacks {
		out, err := fb.encoding.NewDecoder().Bytes(b)
		if err != nil {
			logger.Debug("%s decode failed: %v", fb.name, err)
			continue
		}
		if s := string(out); fb.accept(s) {
			logger.Debug("Decoded text as %s", fb.name)
			return s, nil
		}
	}
	return "", domain.ErrUndecodable
}

// noC1Controls reports whether s has no C1 control characters. Latin-1
// maps every byte, so text containing them is almost certainly
// Windows-1252 punctuation.
func noC1Controls(s string) bool {
	for _, r := range s {
		if r >= 0x80 && r <= 0x9F {
			return false
		}
	}
	return true
}
