package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func TestConvertCmd_FromStdin(t *testing.T) {
	store := setupTestServices(t)

	out, err := execute(t, sampleExtraction, "convert")
	require.NoError(t, err)

	var g domain.KnowledgeGraph
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)
	assert.Equal(t, domain.NodeTypeInferred, g.Nodes[2].Type)
	assert.Empty(t, store.GetAll(t.Context()), "convert stores nothing")
}

func TestConvertCmd_FromFileWithLayout(t *testing.T) {
	setupTestServices(t)
	path := writeFile(t, "alice.json", sampleExtraction)

	out, err := execute(t, "", "convert", "--layout", path)
	require.NoError(t, err)

	var g domain.KnowledgeGraph
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	require.Len(t, g.Nodes, 3)
	moved := false
	for _, n := range g.Nodes {
		if n.X != 0 || n.Y != 0 {
			moved = true
		}
	}
	assert.True(t, moved, "layout assigns positions")
}

func TestConvertCmd_InvalidInput(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "[]", "convert", "-")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvertCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "convert", "/does/not/exist.json")

	assert.Error(t, err)
}

func TestSchemaCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "schema")

	require.NoError(t, err)
	assert.Contains(t, out, "entities")
	assert.Contains(t, out, "source_text")
}
