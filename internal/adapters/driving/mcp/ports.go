package mcp

import (
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest turns uploads into cached documents.
	Ingest driving.IngestService

	// Query answers questions about cached documents.
	Query driving.QueryService

	// Validation classifies cached documents. Optional; the
	// validate_document tool is only registered when it is set.
	Validation driving.ValidationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
