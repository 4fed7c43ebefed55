package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// uriScheme is the custom URI scheme for recall resources.
const uriScheme = "recall://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for full document content, keyed by the same path that
	// memory_search and memory_timeline return.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{+path}",
		Name:        "document-content",
		Description: "Full content of a memory document",
		MIMEType:    "text/markdown",
	}, s.handleDocumentResource)
}

// handleDocumentResource returns the full content of one memory document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	path := extractDocumentPath(req.Params.URI)
	if path == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Search.Get(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("reading document %q: %w", path, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Body,
		}},
	}, nil
}

// extractDocumentPath extracts the document path from a URI like
// recall://documents/{path}. Paths may contain slashes.
func extractDocumentPath(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
