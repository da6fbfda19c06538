package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

func withTerminal(t *testing.T, isTerminal bool) {
	t.Helper()
	old := stdinIsTerminal
	stdinIsTerminal = func() bool { return isTerminal }
	t.Cleanup(func() { stdinIsTerminal = old })
}

func TestExportImport_RoundTrip(t *testing.T) {
	store := setupTestServices(t)
	first := saveSample(t, store, "first")
	second := saveSample(t, store, "second")
	path := filepath.Join(t.TempDir(), "export.json")

	out, err := execute(t, "", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 graphs")

	require.NoError(t, store.ClearAll(t.Context()))
	require.Empty(t, store.GetAll(t.Context()))

	out, err = execute(t, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 graphs")

	items := store.GetAll(t.Context())
	require.Len(t, items, 2)
	assert.Equal(t, second, items[0].ID)
	assert.Equal(t, first, items[1].ID)
}

func TestExportCmd_Stdout(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "only")

	out, err := execute(t, "", "export")

	require.NoError(t, err)
	assert.Contains(t, out, `"version": "1.0"`)
	assert.Contains(t, out, `"only"`)
}

func TestImportCmd_MergeSkipsExisting(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "kept")
	data, err := store.ExportAll(t.Context())
	require.NoError(t, err)

	out, err := execute(t, string(data), "import", "--merge", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 graphs")
	assert.Len(t, store.GetAll(t.Context()), 1)
}

func TestImportCmd_InvalidFile(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "kept")
	path := writeFile(t, "bad.json", `{"version": "9.9", "items": []}`)

	_, err := execute(t, "", "import", path)

	assert.ErrorIs(t, err, domain.ErrInvalidImport)
	assert.Len(t, store.GetAll(t.Context()), 1, "nothing is written")
}

func TestClearCmd_Yes(t *testing.T) {
	store := setupTestServices(t)
	saveSample(t, store, "a")

	out, err := execute(t, "", "clear", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")
	assert.Empty(t, store.GetAll(t.Context()))
}

func TestClearCmd_RefusesWithoutTerminal(t *testing.T) {
	store := setupTestServices(t)
	withTerminal(t, false)
	saveSample(t, store, "a")

	_, err := execute(t, "", "clear")

	assert.Error(t, err)
	assert.Len(t, store.GetAll(t.Context()), 1)
}

func TestClearCmd_Prompt(t *testing.T) {
	store := setupTestServices(t)
	withTerminal(t, true)
	saveSample(t, store, "a")

	out, err := execute(t, "n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete all 1 stored graphs? [y/N]: ")
	assert.Contains(t, out, "Aborted.")
	assert.Len(t, store.GetAll(t.Context()), 1)

	_, err = execute(t, "y\n", "clear")
	require.NoError(t, err)
	assert.Empty(t, store.GetAll(t.Context()))
}

func TestExportCmd_UnwritablePath(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0700) })
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	_, err := execute(t, "", "export", filepath.Join(dir, "out.json"))

	assert.Error(t, err)
}
