package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func decodeGraph(t *testing.T, out string) domain.KnowledgeGraph {
	t.Helper()
	var g domain.KnowledgeGraph
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	return g
}

func TestMergeCmd_DeduplicatesByID(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "a")
	saveSample(t, store, "b")

	out, err := execute(t, "", "merge")
	require.NoError(t, err)

	g := decodeGraph(t, out)
	assert.Len(t, g.Nodes, 3, "identical fragments share node ids")
	assert.Len(t, g.Edges, 2)
	assert.Equal(t, domain.ProvenanceMerged, g.Metadata.Source)
}

func TestMergeCmd_WithFilter(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "a")

	out, err := execute(t, "", "merge", "--limit", "1", "--type", "PERSON,ORGANIZATION")
	require.NoError(t, err)

	g := decodeGraph(t, out)
	assert.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "WORKS_AT", g.Edges[0].Type)
}

func TestMergeCmd_Empty(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "merge")

	assert.ErrorIs(t, err, domain.ErrEmptyGraph)
}

func TestFilterCmd_Latest(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "a")

	out, err := execute(t, "", "filter", "latest", "--min-confidence", "0.85")
	require.NoError(t, err)

	g := decodeGraph(t, out)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "Alice", g.Nodes[0].Label)
	assert.Empty(t, g.Edges)
	assert.Equal(t, domain.ProvenanceFiltered, g.Metadata.Source)
}

func TestFilterCmd_ByIDAndQuery(t *testing.T) {
	store := setupTestServices(t)
	id := saveSample(t, store, "a")

	out, err := execute(t, "", "filter", id, "--query", "berlin")
	require.NoError(t, err)

	g := decodeGraph(t, out)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, domain.NodeTypeInferred, g.Nodes[0].Type)
}

func TestFilterCmd_NoFilterReturnsGraph(t *testing.T) {
	store := setupTestServices(t)
	id := saveSample(t, store, "a")

	out, err := execute(t, "", "filter", id, "--layout")
	require.NoError(t, err)

	g := decodeGraph(t, out)
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, domain.ProvenanceExtraction, g.Metadata.Source)
}

func TestFilterCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "filter", "latest")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = execute(t, "", "filter", "graph_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
