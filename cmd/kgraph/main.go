// Command kgraph turns entity extractions into explorable knowledge graphs.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/kgraph/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kgraph/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgraph/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kgraph/internal/adapters/driving/cli"
	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/ports/driven"
	"github.com/custodia-labs/kgraph/internal/core/services"
	"github.com/custodia-labs/kgraph/internal/logger"
	"github.com/custodia-labs/kgraph/internal/normalisers/extraction"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices wires the adapters into the core services.
func initServices(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("invalid settings, using defaults: %v", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	var (
		kv      driven.KeyValueStore
		closeFn func() error
	)
	switch settings.Store.Backend {
	case domain.StorageBackendMemory:
		kv = memory.NewKeyValueStore(settings.Store.MaxBytes)
	default:
		store, err := sqlite.NewStore(opts.DataDir, sqlite.WithMaxBytes(settings.Store.MaxBytes))
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
		logger.Debug("using sqlite store at %s", store.Path())
		kv = store.KeyValueStore()
		closeFn = store.Close
	}

	return &cli.Services{
		Extraction: services.NewExtractionService(extraction.New()),
		Store:      services.NewGraphStoreService(kv, services.WithCapacity(settings.Store.MaxItems)),
		Settings:   settingsService,
		Close:      closeFn,
	}, nil
}
