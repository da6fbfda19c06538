package driving

import "github.com/custodia-labs/kgraph/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by its configuration key,
	// e.g. "store.max_items".
	Set(key, value string) error

	// Reset restores the defaults and persists them.
	Reset() error

	// Keys lists the configuration keys Set accepts.
	Keys() []string

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
