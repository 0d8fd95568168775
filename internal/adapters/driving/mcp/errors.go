// Package mcp provides an MCP (Model Context Protocol) server adapter for lexqa.
// It lets AI assistants ingest legal documents and ask questions about them.
package mcp

import "errors"

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")

// ErrNoDocumentSource is returned when an ingest call names neither a path
// nor inline content.
var ErrNoDocumentSource = errors.New("mcp: one of path or content is required")
