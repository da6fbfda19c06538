package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func TestExtractGraphID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid graph URI", "kgraph://graphs/graph_1_abc", "graph_1_abc"},
		{"invalid prefix", "file://graphs/graph_1", ""},
		{"list URI", "kgraph://graphs", ""},
		{"nested path", "kgraph://graphs/a/b", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractGraphID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleGraphsResource(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)

	t.Run("empty store", func(t *testing.T) {
		result, err := server.handleGraphsResource(ctx, makeReadResourceRequest("kgraph://graphs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.JSONEq(t, "[]", result.Contents[0].Text)
	})

	t.Run("lists summaries", func(t *testing.T) {
		id := saveSample(t, store, "sample")

		result, err := server.handleGraphsResource(ctx, makeReadResourceRequest("kgraph://graphs"))
		require.NoError(t, err)

		var graphs []GraphSummary
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &graphs))
		require.Len(t, graphs, 1)
		assert.Equal(t, id, graphs[0].ID)
		assert.Equal(t, 2, graphs[0].NodeCount)
	})
}

func TestServer_handleGraphResource(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	id := saveSample(t, store, "sample")

	t.Run("returns the stored item", func(t *testing.T) {
		uri := "kgraph://graphs/" + id
		result, err := server.handleGraphResource(ctx, makeReadResourceRequest(uri))
		require.NoError(t, err)

		assert.Equal(t, uri, result.Contents[0].URI)
		var item domain.StoredGraphItem
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &item))
		assert.Equal(t, "sample", item.Name)
		assert.Len(t, item.ExtractionResult.Entities, 2)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := server.handleGraphResource(ctx, makeReadResourceRequest("kgraph://graphs/graph_missing"))
		assert.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		_, err := server.handleGraphResource(ctx, makeReadResourceRequest("kgraph://other"))
		assert.Error(t, err)
	})
}
