package domain

// StorageBackend identifies the key-value adapter behind the graph store.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite persists to a local SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendMemory keeps the collection for the lifetime of the process.
	StorageBackendMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (persistent)"
	case StorageBackendMemory:
		return "Memory (session only)"
	default:
		return "Unknown"
	}
}

// StoreSettings configures the bounded graph store.
type StoreSettings struct {
	// Backend selects the key-value adapter.
	Backend StorageBackend

	// MaxItems caps the stored collection; the oldest items are evicted.
	MaxItems int

	// MaxBytes caps the serialized collection size. Zero disables the quota.
	MaxBytes int

	// MergeLimit is the default number of recent fragments merged for viewing.
	MergeLimit int
}

// LayoutSettings configures the force simulation.
type LayoutSettings struct {
	NodeRadius     float64
	LinkDistance   float64
	ChargeStrength float64

	// TickMillis is the interval between simulation ticks.
	TickMillis int
}

// DisplaySettings holds rendering toggles.
type DisplaySettings struct {
	ShowLabels bool
	ShowArrows bool
}

// WatchSettings configures the directory watcher.
type WatchSettings struct {
	// RatePerSecond bounds how many files are ingested per second.
	RatePerSecond int
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Store   StoreSettings
	Layout  LayoutSettings
	Display DisplaySettings
	Watch   WatchSettings
}

// Default setting values.
const (
	DefaultMaxItems       = 50
	DefaultMaxBytes       = 5 * 1024 * 1024
	DefaultMergeLimit     = 5
	DefaultNodeRadius     = 8.0
	DefaultLinkDistance   = 100.0
	DefaultChargeStrength = -300.0
	DefaultTickMillis     = 33
	DefaultWatchRate      = 5
)

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend:    StorageBackendSQLite,
			MaxItems:   DefaultMaxItems,
			MaxBytes:   DefaultMaxBytes,
			MergeLimit: DefaultMergeLimit,
		},
		Layout: LayoutSettings{
			NodeRadius:     DefaultNodeRadius,
			LinkDistance:   DefaultLinkDistance,
			ChargeStrength: DefaultChargeStrength,
			TickMillis:     DefaultTickMillis,
		},
		Display: DisplaySettings{
			ShowLabels: true,
			ShowArrows: true,
		},
		Watch: WatchSettings{
			RatePerSecond: DefaultWatchRate,
		},
	}
}

// Validate checks that the settings are usable.
func (s *AppSettings) Validate() error {
	if !s.Store.Backend.IsValid() {
		return ErrInvalidInput
	}
	if s.Store.MaxItems <= 0 || s.Store.MergeLimit <= 0 || s.Store.MaxBytes < 0 {
		return ErrInvalidInput
	}
	if s.Layout.NodeRadius <= 0 || s.Layout.LinkDistance <= 0 || s.Layout.TickMillis <= 0 {
		return ErrInvalidInput
	}
	if s.Watch.RatePerSecond <= 0 {
		return ErrInvalidInput
	}
	return nil
}
