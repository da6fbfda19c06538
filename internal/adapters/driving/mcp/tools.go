package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/graphops"
)

// ExtractionInput carries raw extractor output.
type ExtractionInput struct {
	Extraction string `json:"extraction" jsonschema:"extractor output as JSON text with entities and relations"`
}

// SaveInput is the input schema for the save_extraction tool.
type SaveInput struct {
	Extraction string `json:"extraction" jsonschema:"extractor output as JSON text with entities and relations"`
	Name       string `json:"name,omitempty" jsonschema:"name of the stored graph (default: a timestamp)"`
}

// IDInput addresses a stored graph.
type IDInput struct {
	ID string `json:"id" jsonschema:"id of the stored graph"`
}

// QueryInput is the input schema for the search_graphs tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"text to look for in names, inputs, entity texts and relation types"`
}

// EmptyInput is used by tools without arguments.
type EmptyInput struct{}

// MergedInput is the input schema for the merged_graph tool.
type MergedInput struct {
	Limit         int      `json:"limit,omitempty" jsonschema:"number of most recent graphs to merge (default from settings)"`
	NodeTypes     []string `json:"node_types,omitempty" jsonschema:"keep only nodes of these types"`
	EdgeTypes     []string `json:"edge_types,omitempty" jsonschema:"keep only edges of these types"`
	MinConfidence float64  `json:"min_confidence,omitempty" jsonschema:"drop nodes and edges weighted below this"`
	Query         string   `json:"query,omitempty" jsonschema:"keep nodes whose label, type or properties contain this"`
}

// GraphOutput wraps a graph.
type GraphOutput struct {
	Graph domain.KnowledgeGraph `json:"graph"`
}

// GraphSummary describes a stored graph without its content.
type GraphSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	NodeCount int       `json:"node_count"`
	EdgeCount int       `json:"edge_count"`
	CreatedAt time.Time `json:"created_at"`
}

// GraphListOutput is the output schema for list_graphs and search_graphs.
type GraphListOutput struct {
	Graphs []GraphSummary `json:"graphs"`
	Count  int            `json:"count"`
}

// StoredGraphOutput is the output schema for get_graph.
type StoredGraphOutput struct {
	Summary GraphSummary          `json:"summary"`
	Graph   domain.KnowledgeGraph `json:"graph"`
}

// DeleteOutput is the output schema for delete_graph.
type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "convert_extraction",
		Description: "Convert entity/relation extractor output to a knowledge graph without storing it",
	}, s.handleConvert)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_extraction",
		Description: "Convert extractor output and store the graph as the most recent item",
	}, s.handleSave)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_graphs",
		Description: "List stored graphs, most recent first",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_graph",
		Description: "Get a stored graph by id",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_graphs",
		Description: "Search stored graphs by name, original input, entity text and relation type",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "merged_graph",
		Description: "Merge the most recent stored graphs, optionally filtered",
	}, s.handleMerged)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "graph_stats",
		Description: "Statistics over the stored graphs",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_graph",
		Description: "Delete a stored graph by id",
	}, s.handleDelete)
}

func (s *Server) handleConvert(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractionInput,
) (*mcp.CallToolResult, GraphOutput, error) {
	_, g, err := s.ports.Extraction.Convert(ctx, []byte(input.Extraction))
	if err != nil {
		return nil, GraphOutput{}, err
	}
	return nil, GraphOutput{Graph: *g}, nil
}

func (s *Server) handleSave(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveInput,
) (*mcp.CallToolResult, GraphSummary, error) {
	result, err := s.ports.Extraction.Decode(ctx, []byte(input.Extraction))
	if err != nil {
		return nil, GraphSummary{}, err
	}

	id, err := s.ports.Store.Save(ctx, *result, input.Name, domain.ItemSourceText, input.Extraction)
	if err != nil {
		return nil, GraphSummary{}, err
	}
	item, err := s.ports.Store.GetByID(ctx, id)
	if err != nil {
		return nil, GraphSummary{}, err
	}
	return nil, summarise(item), nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, GraphListOutput, error) {
	return nil, listOutput(s.ports.Store.GetAll(ctx)), nil
}

func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, StoredGraphOutput, error) {
	item, err := s.ports.Store.GetByID(ctx, input.ID)
	if err != nil {
		return nil, StoredGraphOutput{}, fmt.Errorf("graph %s: %w", input.ID, err)
	}
	return nil, StoredGraphOutput{Summary: summarise(item), Graph: item.Graph}, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, GraphListOutput, error) {
	return nil, listOutput(s.ports.Store.Search(ctx, input.Query)), nil
}

func (s *Server) handleMerged(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergedInput,
) (*mcp.CallToolResult, GraphOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.mergeLimit()
	}

	merged := s.ports.Store.MergedGraph(ctx, limit)
	if merged == nil {
		return nil, GraphOutput{}, fmt.Errorf("nothing to merge: %w", domain.ErrEmptyGraph)
	}

	opts := domain.FilterOptions{
		NodeTypes:     input.NodeTypes,
		EdgeTypes:     input.EdgeTypes,
		MinConfidence: input.MinConfidence,
		SearchQuery:   input.Query,
	}
	if opts.IsZero() {
		return nil, GraphOutput{Graph: *merged}, nil
	}
	return nil, GraphOutput{Graph: graphops.Filter(*merged, opts)}, nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, domain.StoreStats, error) {
	return nil, s.ports.Store.Stats(ctx), nil
}

func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	ok, err := s.ports.Store.Delete(ctx, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Deleted: ok}, nil
}

func (s *Server) mergeLimit() int {
	if s.ports.Settings == nil {
		return domain.DefaultMergeLimit
	}
	settings, err := s.ports.Settings.Get()
	if err != nil || settings == nil {
		return domain.DefaultMergeLimit
	}
	return settings.Store.MergeLimit
}

func summarise(item *domain.StoredGraphItem) GraphSummary {
	return GraphSummary{
		ID:        item.ID,
		Name:      item.Name,
		Source:    item.Source.String(),
		NodeCount: item.Graph.Metadata.NodeCount,
		EdgeCount: item.Graph.Metadata.EdgeCount,
		CreatedAt: item.CreatedAt,
	}
}

func listOutput(items []domain.StoredGraphItem) GraphListOutput {
	out := GraphListOutput{
		Graphs: make([]GraphSummary, len(items)),
		Count:  len(items),
	}
	for i := range items {
		out.Graphs[i] = summarise(&items[i])
	}
	return out
}
