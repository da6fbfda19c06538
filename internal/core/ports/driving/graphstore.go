package driving

import (
	"context"

	"github.com/custodia-labs/kgraph/internal/core/domain"
)

// GraphStore is the bounded, most-recent-first collection of saved graph
// fragments.
//
// Reads never fail: a collection that cannot be read or decoded is
// treated as empty. Writes return an error wrapping domain.ErrStorageWrite
// or domain.ErrStorageQuota when persisting fails.
type GraphStore interface {
	// Save converts result, stores it at the front of the collection and
	// returns the new item id. The oldest items are evicted past capacity.
	Save(ctx context.Context, result domain.ExtractionResult, name string, source domain.ItemSource, originalContent string) (string, error)

	// GetAll returns every item, most recent first.
	GetAll(ctx context.Context) []domain.StoredGraphItem

	// GetByID returns the item with id, or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.StoredGraphItem, error)

	// Delete removes the item with id and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Update applies a partial update and refreshes UpdatedAt.
	// It reports whether the item existed.
	Update(ctx context.Context, id string, update domain.ItemUpdate) (bool, error)

	// LatestGraph returns the graph of the most recent item, or nil.
	LatestGraph(ctx context.Context) *domain.KnowledgeGraph

	// MergedGraph merges the graphs of the limit most recent items, or
	// returns nil when the store is empty.
	MergedGraph(ctx context.Context, limit int) *domain.KnowledgeGraph

	// Search returns items whose name, original content, entity texts or
	// relation types contain query, ignoring case.
	Search(ctx context.Context, query string) []domain.StoredGraphItem

	// Stats derives collection statistics.
	Stats(ctx context.Context) domain.StoreStats

	// ExportAll snapshots the collection as an export envelope.
	ExportAll(ctx context.Context) ([]byte, error)

	// ImportAll reads an export envelope. With merge set, items whose id
	// already exists are skipped; otherwise the collection is replaced.
	// It returns the number of items added. A malformed envelope returns
	// domain.ErrInvalidImport and nothing is written.
	ImportAll(ctx context.Context, data []byte, merge bool) (int, error)

	// ClearAll removes the persisted collection.
	ClearAll(ctx context.Context) error

	// Capacity returns the maximum number of items kept.
	Capacity() int
}
