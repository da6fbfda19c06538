// Package mcp provides an MCP (Model Context Protocol) server adapter for kgraph.
// It lets AI assistants convert extractor output and query stored graphs.
package mcp

import "errors"

// ErrMissingGraphStore is returned when the graph store is not provided.
var ErrMissingGraphStore = errors.New("mcp: graph store is required")

// ErrMissingExtractionService is returned when the extraction service is not provided.
var ErrMissingExtractionService = errors.New("mcp: extraction service is required")
