package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for lexqa resources.
	uriScheme = "lexqa://"

	questionsURI = uriScheme + "questions"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         questionsURI,
		Name:        "questions",
		Description: "Suggested questions to ask about a contract",
		MIMEType:    "application/json",
	}, s.handleQuestionsResource)
}

// handleQuestionsResource returns the suggested questions as a JSON array.
func (s *Server) handleQuestionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(domain.SuggestedQuestions(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling questions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
