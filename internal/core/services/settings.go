package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/ports/driven"
	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoreBackend    = "store.backend"
	keyStoreMaxItems   = "store.max_items"
	keyStoreMaxBytes   = "store.max_bytes"
	keyStoreMergeLimit = "store.merge_limit"
	keyNodeRadius      = "layout.node_radius"
	keyLinkDistance    = "layout.link_distance"
	keyChargeStrength  = "layout.charge_strength"
	keyTickMillis      = "layout.tick_ms"
	keyShowLabels      = "display.show_labels"
	keyShowArrows      = "display.show_arrows"
	keyWatchRate       = "watch.rate_per_second"
)

var settingKeys = []string{
	keyStoreBackend,
	keyStoreMaxItems,
	keyStoreMaxBytes,
	keyStoreMergeLimit,
	keyNodeRadius,
	keyLinkDistance,
	keyChargeStrength,
	keyTickMillis,
	keyShowLabels,
	keyShowArrows,
	keyWatchRate,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or unusable
// values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend:    s.getBackend(defaults.Store.Backend),
			MaxItems:   s.getInt(keyStoreMaxItems, defaults.Store.MaxItems),
			MaxBytes:   s.getInt(keyStoreMaxBytes, defaults.Store.MaxBytes),
			MergeLimit: s.getInt(keyStoreMergeLimit, defaults.Store.MergeLimit),
		},
		Layout: domain.LayoutSettings{
			NodeRadius:     s.getFloat(keyNodeRadius, defaults.Layout.NodeRadius),
			LinkDistance:   s.getFloat(keyLinkDistance, defaults.Layout.LinkDistance),
			ChargeStrength: s.getFloat(keyChargeStrength, defaults.Layout.ChargeStrength),
			TickMillis:     s.getInt(keyTickMillis, defaults.Layout.TickMillis),
		},
		Display: domain.DisplaySettings{
			ShowLabels: s.getBool(keyShowLabels, defaults.Display.ShowLabels),
			ShowArrows: s.getBool(keyShowArrows, defaults.Display.ShowArrows),
		},
		Watch: domain.WatchSettings{
			RatePerSecond: s.getInt(keyWatchRate, defaults.Watch.RatePerSecond),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStoreMaxItems, settings.Store.MaxItems},
		{keyStoreMaxBytes, settings.Store.MaxBytes},
		{keyStoreMergeLimit, settings.Store.MergeLimit},
		{keyNodeRadius, settings.Layout.NodeRadius},
		{keyLinkDistance, settings.Layout.LinkDistance},
		{keyChargeStrength, settings.Layout.ChargeStrength},
		{keyTickMillis, settings.Layout.TickMillis},
		{keyShowLabels, settings.Display.ShowLabels},
		{keyShowArrows, settings.Display.ShowArrows},
		{keyWatchRate, settings.Watch.RatePerSecond},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set parses value according to the type of key and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if err := applySetting(settings, key, value); err != nil {
		return err
	}

	return s.Save(settings)
}

func applySetting(settings *domain.AppSettings, key, value string) error {
	var err error
	switch key {
	case keyStoreBackend:
		backend := domain.StorageBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, value)
		}
		settings.Store.Backend = backend
	case keyStoreMaxItems:
		settings.Store.MaxItems, err = strconv.Atoi(value)
	case keyStoreMaxBytes:
		settings.Store.MaxBytes, err = strconv.Atoi(value)
	case keyStoreMergeLimit:
		settings.Store.MergeLimit, err = strconv.Atoi(value)
	case keyNodeRadius:
		settings.Layout.NodeRadius, err = strconv.ParseFloat(value, 64)
	case keyLinkDistance:
		settings.Layout.LinkDistance, err = strconv.ParseFloat(value, 64)
	case keyChargeStrength:
		settings.Layout.ChargeStrength, err = strconv.ParseFloat(value, 64)
	case keyTickMillis:
		settings.Layout.TickMillis, err = strconv.Atoi(value)
	case keyShowLabels:
		settings.Display.ShowLabels, err = strconv.ParseBool(value)
	case keyShowArrows:
		settings.Display.ShowArrows, err = strconv.ParseBool(value)
	case keyWatchRate:
		settings.Watch.RatePerSecond, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return nil
}

// Reset restores the defaults and persists them.
func (s *SettingsService) Reset() error {
	defaults := domain.DefaultAppSettings()
	return s.Save(&defaults)
}

// Keys lists the configuration keys Set accepts.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStoreBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
