// Package image extracts text from images by running the tesseract OCR
// binary.
package image

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driven"
	"github.com/custodia-labs/lexqa/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// ToolName is the OCR binary looked up on PATH.
const ToolName = "tesseract"

// ErrOCRToolNotFound is returned when tesseract is not installed.
var ErrOCRToolNotFound = errors.New("tesseract not found in PATH")

// CommandRunner runs an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser handles image documents.
type Normaliser struct {
	runner CommandRunner
	check  func() error
}

// New creates an OCR normaliser that runs tesseract from PATH.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}, check: CheckAvailable}
}

// NewWithRunner creates a normaliser that runs OCR through runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner, check: func() error { return nil }}
}

// SupportedFileTypes returns the file types this normaliser handles.
func (n *Normaliser) SupportedFileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeImage}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific normaliser
}

// Normalise writes the image to a temporary file and reads the OCR text
// from tesseract's stdout.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := n.check(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUndecodable, err)
	}

	tmp, err := os.CreateTemp("", "lexqa-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw.Content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	out, err := n.runner.Run(ctx, ToolName, tmp.Name(), "stdout")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Debug("tesseract failed on %s: %v", raw.Name, err)
		return nil, fmt.Errorf("%w: tesseract failed: %v", domain.ErrUndecodable, err)
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Name:     raw.Name,
			FileType: raw.FileType,
			Content:  string(out),
		},
	}, nil
}

// CheckAvailable reports whether tesseract is on PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(ToolName); err != nil {
		return ErrOCRToolNotFound
	}
	return nil
}

// InstallInstructions returns how to install tesseract.
func InstallInstructions() string {
	return `Image text extraction requires tesseract.

  macOS:          brew install tesseract
  Debian/Ubuntu:  sudo apt install tesseract-ocr
  Fedora:         sudo dnf install tesseract`
}
