package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/graphops"
	"github.com/custodia-labs/kgraph/internal/core/ports/driven"
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
	"github.com/custodia-labs/kgraph/internal/logger"
)

// Ensure GraphStoreService implements the interface.
var _ driving.GraphStore = (*GraphStoreService)(nil)

// GraphsKey is the key the whole collection is stored under.
const GraphsKey = "knowledge_graphs"

// GraphStoreService keeps a bounded, most-recent-first collection of
// graph fragments in a key-value store. Every operation reads the full
// collection and writes it back in one piece.
type GraphStoreService struct {
	kv       driven.KeyValueStore
	capacity int
	now      func() time.Time
	newID    func(time.Time) string
	validate *validator.Validate

	// mu serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

// GraphStoreOption configures a GraphStoreService.
type GraphStoreOption func(*GraphStoreService)

// WithCapacity sets the maximum number of stored items.
func WithCapacity(n int) GraphStoreOption {
	return func(s *GraphStoreService) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) GraphStoreOption {
	return func(s *GraphStoreService) {
		s.now = now
	}
}

// WithIDGenerator replaces the item id generator.
func WithIDGenerator(gen func(time.Time) string) GraphStoreOption {
	return func(s *GraphStoreService) {
		s.newID = gen
	}
}

// NewGraphStoreService creates a graph store over kv.
func NewGraphStoreService(kv driven.KeyValueStore, opts ...GraphStoreOption) *GraphStoreService {
	s := &GraphStoreService{
		kv:       kv,
		capacity: domain.DefaultMaxItems,
		now:      time.Now,
		newID:    newItemID,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newItemID returns a time-ordered id: graph_<unix millis>_<random>.
func newItemID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("graph_%d_%s", now.UnixMilli(), suffix)
}

// Capacity returns the maximum number of items kept.
func (s *GraphStoreService) Capacity() int {
	return s.capacity
}

// Save converts result and stores it at the front of the collection.
func (s *GraphStoreService) Save(
	ctx context.Context,
	result domain.ExtractionResult,
	name string,
	source domain.ItemSource,
	originalContent string,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if name == "" {
		name = "Graph " + now.Format("2006-01-02 15:04:05")
	}
	if !source.IsValid() {
		source = domain.ItemSourceText
	}

	item := domain.StoredGraphItem{
		ID:               s.newID(now),
		Name:             name,
		ExtractionResult: result,
		Graph:            graphops.Converter{Now: s.now}.Convert(result),
		CreatedAt:        now,
		UpdatedAt:        now,
		Source:           source,
		OriginalContent:  originalContent,
	}

	items := append([]domain.StoredGraphItem{item}, s.load(ctx)...)
	if err := s.persist(ctx, s.truncate(items)); err != nil {
		return "", err
	}

	logger.Debug("saved graph %s (%d nodes, %d edges)", item.ID, item.Graph.Metadata.NodeCount, item.Graph.Metadata.EdgeCount)
	return item.ID, nil
}

// GetAll returns every item, most recent first. Failures to read or
// decode the collection are logged and yield an empty list.
func (s *GraphStoreService) GetAll(ctx context.Context) []domain.StoredGraphItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// GetByID returns the item with id.
func (s *GraphStoreService) GetByID(ctx context.Context, id string) (*domain.StoredGraphItem, error) {
	for _, item := range s.GetAll(ctx) {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes the item with id.
func (s *GraphStoreService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := s.persist(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Update applies a partial update and refreshes UpdatedAt.
func (s *GraphStoreService) Update(ctx context.Context, id string, update domain.ItemUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if update.Name != nil {
			items[i].Name = *update.Name
		}
		if update.OriginalContent != nil {
			items[i].OriginalContent = *update.OriginalContent
		}
		items[i].UpdatedAt = s.now()
		if err := s.persist(ctx, items); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// LatestGraph returns the graph of the most recent item.
func (s *GraphStoreService) LatestGraph(ctx context.Context) *domain.KnowledgeGraph {
	items := s.GetAll(ctx)
	if len(items) == 0 {
		return nil
	}
	return &items[0].Graph
}

// MergedGraph merges the graphs of the limit most recent items, most
// recent first, so the newest fragment wins on id collisions.
func (s *GraphStoreService) MergedGraph(ctx context.Context, limit int) *domain.KnowledgeGraph {
	items := s.GetAll(ctx)
	if len(items) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	fragments := make([]domain.KnowledgeGraph, limit)
	for i := range fragments {
		fragments[i] = items[i].Graph
	}
	merged := graphops.MergeAt(s.now(), fragments...)
	return &merged
}

// Search returns items matching query in their name, original content,
// entity texts or relation types. An empty query matches everything.
func (s *GraphStoreService) Search(ctx context.Context, query string) []domain.StoredGraphItem {
	items := s.GetAll(ctx)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	var matches []domain.StoredGraphItem
	for _, item := range items {
		if itemMatches(&item, q) {
			matches = append(matches, item)
		}
	}
	return matches
}

func itemMatches(item *domain.StoredGraphItem, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(item.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(item.OriginalContent), lowerQuery) {
		return true
	}
	for _, e := range item.ExtractionResult.Entities {
		if strings.Contains(strings.ToLower(e.Text), lowerQuery) {
			return true
		}
	}
	for _, r := range item.ExtractionResult.Relations {
		if strings.Contains(strings.ToLower(r.Type), lowerQuery) {
			return true
		}
	}
	return false
}

// Stats derives collection statistics.
func (s *GraphStoreService) Stats(ctx context.Context) domain.StoreStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats domain.StoreStats
	raw, ok, err := s.kv.Get(ctx, GraphsKey)
	if err == nil && ok {
		stats.ApproximateStorageSize = len(raw)
	}

	items := s.load(ctx)
	stats.TotalItems = len(items)
	for i := range items {
		stats.TotalNodes += len(items[i].Graph.Nodes)
		stats.TotalEdges += len(items[i].Graph.Edges)

		created := items[i].CreatedAt
		if stats.OldestTimestamp == nil || created.Before(*stats.OldestTimestamp) {
			stats.OldestTimestamp = &created
		}
		if stats.NewestTimestamp == nil || created.After(*stats.NewestTimestamp) {
			stats.NewestTimestamp = &created
		}
	}
	return stats
}

// ExportAll snapshots the collection.
func (s *GraphStoreService) ExportAll(ctx context.Context) ([]byte, error) {
	env := domain.ExportEnvelope{
		Version:    domain.ExportFormatVersion,
		ExportedAt: s.now(),
		Items:      s.GetAll(ctx),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ImportAll reads an export envelope and replaces or extends the
// collection with it. Capacity truncation is applied afterwards.
func (s *GraphStoreService) ImportAll(ctx context.Context, data []byte, merge bool) (int, error) {
	var env domain.ExportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if err := s.validate.Struct(env); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if err := s.validateGraphsPresent(data); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Existing items stay in front, so imported items are the first to
	// be evicted when the union exceeds capacity.
	var items []domain.StoredGraphItem
	existing := 0
	if merge {
		items = s.load(ctx)
		existing = len(items)
		seen := make(map[string]struct{}, len(items))
		for _, item := range items {
			seen[item.ID] = struct{}{}
		}
		for _, item := range env.Items {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			items = append(items, item)
		}
	} else {
		items = env.Items
	}

	items = s.truncate(items)
	added := max(len(items)-existing, 0)
	if err := s.persist(ctx, items); err != nil {
		return 0, err
	}

	logger.Info("imported %d graphs (merge=%t)", added, merge)
	return added, nil
}

// importedGraphs mirrors the envelope items with the graph kept raw, so a
// missing or null graph can be told apart from an empty one.
type importedGraphs struct {
	Items []struct {
		Graph *json.RawMessage `json:"graph" validate:"required"`
	} `json:"items" validate:"dive"`
}

func (s *GraphStoreService) validateGraphsPresent(data []byte) error {
	var raw importedGraphs
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return s.validate.Struct(raw)
}

// ClearAll removes the persisted collection.
func (s *GraphStoreService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, GraphsKey); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	return nil
}

// load reads the collection. The caller must hold mu.
func (s *GraphStoreService) load(ctx context.Context) []domain.StoredGraphItem {
	raw, ok, err := s.kv.Get(ctx, GraphsKey)
	if err != nil {
		logger.Warn("%v", fmt.Errorf("%w: %w", domain.ErrStorageRead, err))
		return []domain.StoredGraphItem{}
	}
	if !ok || len(raw) == 0 {
		return []domain.StoredGraphItem{}
	}

	var items []domain.StoredGraphItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("%v", fmt.Errorf("%w: decode: %w", domain.ErrStorageRead, err))
		return []domain.StoredGraphItem{}
	}
	if items == nil {
		items = []domain.StoredGraphItem{}
	}
	return items
}

// persist writes the collection. The caller must hold mu.
func (s *GraphStoreService) persist(ctx context.Context, items []domain.StoredGraphItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrStorageWrite, err)
	}
	if err := s.kv.Set(ctx, GraphsKey, data); err != nil {
		if errors.Is(err, domain.ErrStorageQuota) {
			logger.Warn("graph store quota exceeded (%d bytes)", len(data))
		}
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	return nil
}

// truncate drops items past capacity from the tail, which holds the
// oldest entries.
func (s *GraphStoreService) truncate(items []domain.StoredGraphItem) []domain.StoredGraphItem {
	if len(items) > s.capacity {
		return items[:s.capacity]
	}
	return items
}
