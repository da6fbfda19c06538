// Package filesystem ingests extractor output files dropped into a directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
	"github.com/custodia-labs/kgraph/internal/logger"
)

// DefaultScanConcurrency bounds concurrent decoding during the initial scan.
const DefaultScanConcurrency = 4

// Event reports the outcome of ingesting one file.
type Event struct {
	Path string
	ID   string
	Err  error
}

// Watcher saves every *.json file under a root directory into the graph store.
type Watcher struct {
	root        string
	extraction  driving.ExtractionService
	store       driving.GraphStore
	limiter     *rate.Limiter
	concurrency int

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithRate bounds ingestion to perSecond files per second.
func WithRate(perSecond int) Option {
	return func(w *Watcher) {
		if perSecond > 0 {
			w.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
		}
	}
}

// WithConcurrency sets how many files the initial scan decodes at once.
func WithConcurrency(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// New creates a watcher for root.
func New(root string, extraction driving.ExtractionService, store driving.GraphStore, opts ...Option) *Watcher {
	w := &Watcher{
		root:        root,
		extraction:  extraction,
		store:       store,
		limiter:     rate.NewLimiter(rate.Limit(domain.DefaultWatchRate), domain.DefaultWatchRate),
		concurrency: DefaultScanConcurrency,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Validate checks that the root exists and is a directory.
func (w *Watcher) Validate() error {
	info, err := os.Stat(w.root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", w.root)
		}
		return fmt.Errorf("stat %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", w.root)
	}
	return nil
}

// Ingest reads, converts and saves a single file.
func (w *Watcher) Ingest(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	result, err := w.extraction.Decode(ctx, data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return w.save(ctx, path, data, result)
}

func (w *Watcher) save(ctx context.Context, path string, data []byte, result *domain.ExtractionResult) (string, error) {
	id, err := w.store.Save(ctx, *result, itemName(path), domain.ItemSourceFile, string(data))
	if err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	logger.Debug("ingested %s as %s", path, id)
	return id, nil
}

// Scan ingests every matching file already present under the root.
// Files are decoded concurrently and saved in path order, so the last
// path ends up as the most recent item.
func (w *Watcher) Scan(ctx context.Context) ([]Event, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	var paths []string
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path != w.root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && isCandidate(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", w.root, err)
	}
	slices.Sort(paths)

	type decoded struct {
		data   []byte
		result *domain.ExtractionResult
		err    error
	}
	results := make([]decoded, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				results[i].err = fmt.Errorf("read %s: %w", path, err)
				return nil
			}
			result, err := w.extraction.Decode(gctx, data)
			if err != nil {
				results[i].err = fmt.Errorf("decode %s: %w", path, err)
				return nil
			}
			results[i] = decoded{data: data, result: result}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(paths))
	for i, path := range paths {
		ev := Event{Path: path, Err: results[i].err}
		if ev.Err == nil {
			ev.ID, ev.Err = w.save(ctx, path, results[i].data, results[i].result)
		}
		if ev.Err != nil {
			logger.Warn("skipping %s: %v", path, ev.Err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Watch ingests files created or rewritten under the root until ctx is
// cancelled. The returned channel is closed when watching stops.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.root, err)
	}

	w.mu.Lock()
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.watcher = fsw
	w.mu.Unlock()

	events := make(chan Event)
	go func() {
		defer close(events)
		defer w.release(fsw)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				path, ok := w.handleFsEvent(event)
				if !ok {
					continue
				}
				if err := w.limiter.Wait(ctx); err != nil {
					return
				}
				id, err := w.Ingest(ctx, path)
				if err != nil {
					logger.Warn("%v", err)
				}
				select {
				case events <- Event{Path: path, ID: id, Err: err}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return events, nil
}

// handleFsEvent returns the path to ingest for event, if any.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) || !isCandidate(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// release closes fsw and forgets it, unless a later Watch has already
// replaced it.
func (w *Watcher) release(fsw *fsnotify.Watcher) {
	w.mu.Lock()
	if w.watcher == fsw {
		w.watcher = nil
	}
	w.mu.Unlock()
	fsw.Close()
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}

func isCandidate(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func itemName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
