package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for kgraph resources.
	uriScheme = "kgraph://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "graphs",
		Name:        "graphs",
		Description: "Stored graphs, most recent first",
		MIMEType:    "application/json",
	}, s.handleGraphsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "graphs/{id}",
		Name:        "graph",
		Description: "A stored graph with its extraction and original input",
		MIMEType:    "application/json",
	}, s.handleGraphResource)
}

// handleGraphsResource lists stored graph summaries.
func (s *Server) handleGraphsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, listOutput(s.ports.Store.GetAll(ctx)).Graphs)
}

// handleGraphResource returns one stored item.
func (s *Server) handleGraphResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractGraphID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Store.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting graph: %w", err)
	}
	return jsonResource(req.Params.URI, item)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractGraphID extracts the id from a URI like kgraph://graphs/{id}.
func extractGraphID(uri string) string {
	const prefix = uriScheme + "graphs/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
