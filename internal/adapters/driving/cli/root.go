// Package cli provides the kgraph command line interface.
// It is a driving adapter: commands call core services through driving ports.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgraph/internal/core/ports/driving"
	"github.com/custodia-labs/kgraph/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services injected by the composition root or by tests.
var (
	extractionService driving.ExtractionService
	graphStore        driving.GraphStore
	settingsService   driving.SettingsService
)

// Errors returned when a command runs without its service.
var (
	errNoStore      = errors.New("graph store not configured")
	errNoExtraction = errors.New("extraction service not configured")
	errNoSettings   = errors.New("settings service not configured")
)

// annotationNoServices marks commands that run without opening storage.
const annotationNoServices = "kgraph/no-services"

// Options are the global flag values handed to the Initializer.
type Options struct {
	ConfigDir string
	DataDir   string
}

// Services are the driving ports the commands use.
type Services struct {
	Extraction driving.ExtractionService
	Store      driving.GraphStore
	Settings   driving.SettingsService

	// Close releases the storage backend. Optional.
	Close func() error
}

// Initializer builds the services once the global flags are parsed.
type Initializer func(opts Options) (*Services, error)

var (
	initializer Initializer
	closeFn     func() error
)

var rootCmd = &cobra.Command{
	Use:   "kgraph",
	Short: "Turn entity extractions into explorable knowledge graphs",
	Long: `kgraph converts the output of an entity/relation extractor into knowledge
graph fragments, keeps the most recent fragments in a local store, and lets
you filter, merge and explore them in an interactive terminal view.

Input is the JSON an extractor produces:

  {"entities": [...], "relations": [...], "source_text": "..."}

Run 'kgraph schema' for the full input contract.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.kgraph)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.kgraph/data)")
}

// SetInitializer registers the function that builds the services. It runs
// before any command that needs them.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetServices injects services directly.
func SetServices(s *Services) {
	if s == nil {
		extractionService, graphStore, settingsService, closeFn = nil, nil, nil, nil
		return
	}
	extractionService = s.Extraction
	graphStore = s.Store
	settingsService = s.Settings
	closeFn = s.Close
}

// SetVersion sets the version reported by 'kgraph version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if initializer == nil || cmd.Annotations[annotationNoServices] != "" {
		return nil
	}
	services, err := initializer(Options{ConfigDir: configDir, DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeFn == nil {
		return nil
	}
	err := closeFn()
	closeFn = nil
	return err
}
