// Package tui provides an interactive terminal interface for asking
// questions about one ingested document.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

// Ports aggregates the driving ports and the document the TUI works on.
type Ports struct {
	// Query answers questions about cached documents.
	Query driving.QueryService

	// Validation classifies cached documents. Optional.
	Validation driving.ValidationService

	// Fingerprint is the cache key of the open document.
	Fingerprint domain.Fingerprint

	// DocumentName is shown in the header and status bar.
	DocumentName string
}

// NewPorts creates a Ports aggregate for one document.
func NewPorts(query driving.QueryService, fp domain.Fingerprint, name string) *Ports {
	return &Ports{
		Query:        query,
		Fingerprint:  fp,
		DocumentName: name,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Fingerprint == "" {
		return ErrMissingDocument
	}
	return nil
}
