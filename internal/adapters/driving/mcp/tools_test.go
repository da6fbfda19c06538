package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/services"
	"github.com/custodia-labs/kgraph/internal/normalisers/extraction"
)

func TestServer_handleConvert(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)

	t.Run("converts without storing", func(t *testing.T) {
		_, out, err := server.handleConvert(ctx, nil, ExtractionInput{Extraction: sampleExtraction})

		require.NoError(t, err)
		assert.Len(t, out.Graph.Nodes, 2)
		assert.Len(t, out.Graph.Edges, 1)
		assert.Empty(t, store.GetAll(ctx))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, _, err := server.handleConvert(ctx, nil, ExtractionInput{Extraction: ""})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleSave(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the graph", func(t *testing.T) {
		server, store := newTestServer(t)

		_, out, err := server.handleSave(ctx, nil, SaveInput{Extraction: sampleExtraction, Name: "team"})

		require.NoError(t, err)
		assert.Equal(t, "team", out.Name)
		assert.Equal(t, 2, out.NodeCount)
		assert.Equal(t, 1, out.EdgeCount)
		assert.Equal(t, "text", out.Source)
		items := store.GetAll(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, out.ID, items[0].ID)
		assert.Equal(t, sampleExtraction, items[0].OriginalContent)
	})

	t.Run("returns store errors", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Extraction: services.NewExtractionService(extraction.New()),
			Store:      failingStore{},
		})
		require.NoError(t, err)

		_, _, err = server.handleSave(ctx, nil, SaveInput{Extraction: sampleExtraction})

		assert.ErrorIs(t, err, errWriteFailed)
	})
}

func TestServer_handleListAndSearch(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	first := saveSample(t, store, "first")
	second := saveSample(t, store, "second")

	_, list, err := server.handleList(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, second, list.Graphs[0].ID)
	assert.Equal(t, first, list.Graphs[1].ID)

	_, found, err := server.handleSearch(ctx, nil, QueryInput{Query: "FIRST"})
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, first, found.Graphs[0].ID)

	_, found, err = server.handleSearch(ctx, nil, QueryInput{Query: "works_at"})
	require.NoError(t, err)
	assert.Equal(t, 2, found.Count)
}

func TestServer_handleGet(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	id := saveSample(t, store, "sample")

	_, out, err := server.handleGet(ctx, nil, IDInput{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "sample", out.Summary.Name)
	assert.Len(t, out.Graph.Nodes, 2)

	_, _, err = server.handleGet(ctx, nil, IDInput{ID: "graph_missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleMerged(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)

	_, _, err := server.handleMerged(ctx, nil, MergedInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyGraph)

	saveSample(t, store, "a")
	saveSample(t, store, "b")

	_, out, err := server.handleMerged(ctx, nil, MergedInput{})
	require.NoError(t, err)
	assert.Len(t, out.Graph.Nodes, 2)
	assert.Equal(t, domain.ProvenanceMerged, out.Graph.Metadata.Source)

	_, out, err = server.handleMerged(ctx, nil, MergedInput{Limit: 1, NodeTypes: []string{"PERSON"}})
	require.NoError(t, err)
	require.Len(t, out.Graph.Nodes, 1)
	assert.Equal(t, "Alice", out.Graph.Nodes[0].Label)
	assert.Empty(t, out.Graph.Edges)
}

func TestServer_handleStats(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	saveSample(t, store, "a")

	_, stats, err := server.handleStats(ctx, nil, EmptyInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalItems)
	assert.Equal(t, 2, stats.TotalNodes)
	assert.Equal(t, 1, stats.TotalEdges)
	assert.Positive(t, stats.ApproximateStorageSize)
}

func TestServer_handleDelete(t *testing.T) {
	ctx := context.Background()
	server, store := newTestServer(t)
	id := saveSample(t, store, "a")

	_, out, err := server.handleDelete(ctx, nil, IDInput{ID: id})
	require.NoError(t, err)
	assert.True(t, out.Deleted)

	_, out, err = server.handleDelete(ctx, nil, IDInput{ID: id})
	require.NoError(t, err)
	assert.False(t, out.Deleted)
}

func TestServer_mergeLimit(t *testing.T) {
	server, _ := newTestServer(t)
	assert.Equal(t, domain.DefaultMergeLimit, server.mergeLimit())

	require.NoError(t, server.ports.Settings.Set("store.merge_limit", "2"))
	assert.Equal(t, 2, server.mergeLimit())

	server.ports.Settings = nil
	assert.Equal(t, domain.DefaultMergeLimit, server.mergeLimit())
}
