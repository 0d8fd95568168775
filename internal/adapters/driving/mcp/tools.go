package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexqa/internal/connectors/filesystem"
	"github.com/custodia-labs/lexqa/internal/core/domain"
	"github.com/custodia-labs/lexqa/internal/core/ports/driving"
)

// IngestInput is the input schema for the ingest_document tool.
type IngestInput struct {
	Path    string `json:"path,omitempty" jsonschema:"local path or file:// URI of the document"`
	Name    string `json:"name,omitempty" jsonschema:"file name for inline content; its extension selects the extractor"`
	Content string `json:"content,omitempty" jsonschema:"inline plain text content, used when path is empty"`
}

// IngestOutput is the output schema for the ingest tools.
type IngestOutput struct {
	Fingerprint   string    `json:"fingerprint"`
	ChunkCount    int       `json:"chunk_count"`
	AlreadyCached bool      `json:"already_cached"`
	TextLength    int       `json:"text_length"`
	Truncated     bool      `json:"truncated"`
	Refined       bool      `json:"refined"`
	CreatedAt     time.Time `json:"created_at"`
	Documents     []string  `json:"documents,omitempty"`
	Skipped       []string  `json:"skipped,omitempty"`
}

// IngestManyInput is the input schema for the ingest_documents tool.
type IngestManyInput struct {
	Paths []string `json:"paths" jsonschema:"local paths or file:// URIs combined into one document"`
}

// AskInput is the input schema for the ask_question tool.
type AskInput struct {
	Fingerprint string `json:"fingerprint" jsonschema:"fingerprint returned by ingest_document"`
	Question    string `json:"question" jsonschema:"the question to answer from the document"`
}

// AskOutput is the output schema for the ask_question tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// ValidateInput is the input schema for the validate_document tool.
type ValidateInput struct {
	Fingerprint string `json:"fingerprint" jsonschema:"fingerprint returned by ingest_document"`
}

// ValidateOutput is the output schema for the validate_document tool.
type ValidateOutput struct {
	IsLegal      bool     `json:"is_legal"`
	Confidence   float64  `json:"confidence"`
	DocumentType string   `json:"document_type"`
	Explanation  string   `json:"explanation"`
	Indicators   []string `json:"indicators,omitempty"`
	Accepted     bool     `json:"accepted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_document",
		Description: "Extract, chunk and cache a legal document; returns its fingerprint",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_documents",
		Description: "Combine several documents into one cached document; non-legal files reject the batch",
	}, s.handleIngestMany)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using only the cached document with the given fingerprint",
	}, s.handleAsk)

	if s.ports.Validation != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "validate_document",
			Description: "Classify whether the cached document is a legal document",
		}, s.handleValidate)
	}
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	var req driving.IngestRequest
	switch {
	case input.Path != "":
		r, err := filesystem.ReadRequest(input.Path)
		if err != nil {
			return nil, IngestOutput{}, err
		}
		req = r
	case input.Content != "":
		name := input.Name
		if name == "" {
			name = "document.txt"
		}
		req = driving.IngestRequest{Name: name, Content: []byte(input.Content)}
	default:
		return nil, IngestOutput{}, ErrNoDocumentSource
	}

	result, err := s.ports.Ingest.Ingest(ctx, req)
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("ingesting %s: %w", req.Name, err)
	}
	return nil, toIngestOutput(result), nil
}

func (s *Server) handleIngestMany(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestManyInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if len(input.Paths) == 0 {
		return nil, IngestOutput{}, ErrNoDocumentSource
	}

	reqs := make([]driving.IngestRequest, 0, len(input.Paths))
	for _, p := range input.Paths {
		r, err := filesystem.ReadRequest(p)
		if err != nil {
			return nil, IngestOutput{}, err
		}
		reqs = append(reqs, r)
	}

	result, err := s.ports.Ingest.IngestMany(ctx, reqs)
	if err != nil {
		var notLegal *domain.NotLegalDocumentError
		if errors.As(err, &notLegal) {
			return nil, IngestOutput{}, fmt.Errorf("ingesting documents: %w (%s)",
				err, notLegal.Classification.Explanation)
		}
		return nil, IngestOutput{}, fmt.Errorf("ingesting documents: %w", err)
	}

	out := toIngestOutput(&result.IngestResult)
	out.Documents = result.Documents
	out.Skipped = result.Skipped
	return nil, out, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	fp, err := domain.ParseFingerprint(input.Fingerprint)
	if err != nil {
		return nil, AskOutput{}, err
	}

	answer, err := s.ports.Query.Ask(ctx, fp, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}
	return nil, AskOutput{Answer: answer}, nil
}

func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateInput,
) (*mcp.CallToolResult, ValidateOutput, error) {
	fp, err := domain.ParseFingerprint(input.Fingerprint)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	c, err := s.ports.Validation.Validate(ctx, fp)
	if err != nil {
		return nil, ValidateOutput{}, err
	}

	return nil, ValidateOutput{
		IsLegal:      c.IsLegal,
		Confidence:   c.Confidence,
		DocumentType: c.DocumentType,
		Explanation:  c.Explanation,
		Indicators:   c.Indicators,
		Accepted:     c.Accepted(),
	}, nil
}

func toIngestOutput(r *driving.IngestResult) IngestOutput {
	return IngestOutput{
		Fingerprint:   r.Fingerprint.String(),
		ChunkCount:    r.ChunkCount,
		AlreadyCached: r.AlreadyCached,
		TextLength:    r.TextLength,
		Truncated:     r.Truncated,
		Refined:       r.Refined,
		CreatedAt:     r.CreatedAt,
	}
}
