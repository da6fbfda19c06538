package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func TestSaveCmd_FromFileUsesFileName(t *testing.T) {
	store := setupTestServices(t)
	path := writeFile(t, "meeting-notes.json", sampleExtraction)

	out, err := execute(t, "", "save", path)
	require.NoError(t, err)

	items := store.GetAll(t.Context())
	require.Len(t, items, 1)
	assert.Equal(t, "meeting-notes", items[0].Name)
	assert.Equal(t, domain.ItemSourceFile, items[0].Source)
	assert.Equal(t, sampleExtraction, items[0].OriginalContent)
	assert.Contains(t, out, "Saved "+items[0].ID)
	assert.Contains(t, out, "(3 nodes, 2 edges)")
}

func TestSaveCmd_FromStdinWithName(t *testing.T) {
	store := setupTestServices(t)

	out, err := execute(t, sampleExtraction, "save", "--name", "Pasted", "--json")
	require.NoError(t, err)

	var item domain.StoredGraphItem
	require.NoError(t, json.Unmarshal([]byte(out), &item))
	assert.Equal(t, "Pasted", item.Name)
	assert.Equal(t, domain.ItemSourceText, item.Source)
	assert.Len(t, store.GetAll(t.Context()), 1)
}

func TestSaveCmd_SourceOverride(t *testing.T) {
	store := setupTestServices(t)

	_, err := execute(t, sampleExtraction, "save", "--source", "file")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemSourceFile, store.GetAll(t.Context())[0].Source)

	_, err = execute(t, sampleExtraction, "save", "--source", "url")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, store.GetAll(t.Context()), 1)
}

func TestSaveCmd_InvalidInputStoresNothing(t *testing.T) {
	store := setupTestServices(t)

	_, err := execute(t, "not json at all", "save")

	assert.Error(t, err)
	assert.Empty(t, store.GetAll(t.Context()))
}

func TestListCmd(t *testing.T) {
	store := setupTestServices(t)

	out, err := execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored graphs.")

	first := saveSample(t, store, "first")
	second := saveSample(t, store, "second")

	out, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, first)
	assert.Contains(t, out, second)
	assert.Less(t, strings.Index(out, second), strings.Index(out, first), "most recent first")

	out, err = execute(t, "", "list", "--json")
	require.NoError(t, err)
	var items []domain.StoredGraphItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Len(t, items, 2)
}

func TestShowCmd(t *testing.T) {
	store := setupTestServices(t)
	id := saveSample(t, store, "sample")

	out, err := execute(t, "", "show", id)

	require.NoError(t, err)
	assert.Contains(t, out, "Name:     sample")
	assert.Contains(t, out, "Nodes:    3")
	assert.Contains(t, out, "WORKS_AT")
	assert.Contains(t, out, "INFERRED")
}

func TestShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "show", "graph_missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCmd(t *testing.T) {
	store := setupTestServices(t)
	id := saveSample(t, store, "sample")

	out, err := execute(t, "", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)
	assert.Empty(t, store.GetAll(t.Context()))

	_, err = execute(t, "", "delete", id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRenameCmd(t *testing.T) {
	store := setupTestServices(t)
	id := saveSample(t, store, "old")

	_, err := execute(t, "", "rename", id, "new name")
	require.NoError(t, err)

	item, err := store.GetByID(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "new name", item.Name)

	_, err = execute(t, "", "rename", id, "   ")
	assert.Error(t, err)

	_, err = execute(t, "", "rename", "graph_missing", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchCmd(t *testing.T) {
	store := setupTestServices(t)
	id := saveSample(t, store, "sample")

	out, err := execute(t, "", "search", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = execute(t, "", "search", "nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching graphs.")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestStatsCmd(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "a")
	saveSample(t, store, "b")

	out, err := execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Graphs:   2 / 50")
	assert.Contains(t, out, "Nodes:    6")
	assert.Contains(t, out, "Edges:    4")

	out, err = execute(t, "", "stats", "--json")
	require.NoError(t, err)
	var stats domain.StoreStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats.TotalItems)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KiB", formatBytes(1024))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "5.0 MiB", formatBytes(5*1024*1024))
}
