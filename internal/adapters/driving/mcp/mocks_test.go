package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgraph/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
	"github.com/custodia-labs/kgraph/internal/core/services"
	"github.com/custodia-labs/kgraph/internal/normalisers/extraction"
)

const sampleExtraction = `{
  "entities": [
    {"text": "Alice", "type": "PERSON", "confidence": 0.9},
    {"text": "Acme", "type": "ORGANIZATION", "confidence": 0.8}
  ],
  "relations": [
    {"source_text": "Alice", "target_text": "Acme", "type": "WORKS_AT", "confidence": 0.7}
  ]
}`

var errWriteFailed = errors.New("write failed")

// failingStore is a driving.GraphStore whose writes fail. Reads panic
// through the nil embedded interface, so tests only call write paths.
type failingStore struct {
	driving.GraphStore
}

func (failingStore) Save(
	context.Context, domain.ExtractionResult, string, domain.ItemSource, string,
) (string, error) {
	return "", errWriteFailed
}

func (failingStore) Delete(context.Context, string) (bool, error) {
	return false, errWriteFailed
}

// newTestServer returns a server over memory-backed services.
func newTestServer(t *testing.T) (*Server, *services.GraphStoreService) {
	t.Helper()
	store := services.NewGraphStoreService(memory.NewKeyValueStore(0))
	server, err := NewServer(&Ports{
		Extraction: services.NewExtractionService(extraction.New()),
		Store:      store,
		Settings:   services.NewSettingsService(memory.NewConfigStore()),
	})
	require.NoError(t, err)
	return server, store
}

func saveSample(t *testing.T, store *services.GraphStoreService, name string) string {
	t.Helper()
	result, err := extraction.New().Decode(context.Background(), []byte(sampleExtraction))
	require.NoError(t, err)
	id, err := store.Save(context.Background(), *result, name, domain.ItemSourceText, sampleExtraction)
	require.NoError(t, err)
	return id
}
