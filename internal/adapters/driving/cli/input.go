package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/layout"
	"github.com/custodia-labs/kgraph/internal/logger"
)

// settleTicks bounds the precomputed layout of --layout.
const settleTicks = 300

// input is extractor output read from a file or stdin.
type input struct {
	data   []byte
	source domain.ItemSource
	// name is the file name without extension, empty for stdin.
	name string
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(cmd *cobra.Command, path string) (*input, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &input{data: data, source: domain.ItemSourceText}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	base := filepath.Base(path)
	return &input{
		data:   data,
		source: domain.ItemSourceFile,
		name:   strings.TrimSuffix(base, filepath.Ext(base)),
	}, nil
}

// printJSON writes v as indented JSON to the command output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// filterFlags binds the sub-graph selection flags shared by several commands.
type filterFlags struct {
	nodeTypes     []string
	edgeTypes     []string
	minConfidence float64
	query         string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.nodeTypes, "type", "t", nil, "keep only nodes of these types")
	cmd.Flags().StringSliceVar(&f.edgeTypes, "edge-type", nil, "keep only edges of these types")
	cmd.Flags().Float64Var(&f.minConfidence, "min-confidence", 0, "drop nodes and edges weighted below this")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "keep nodes whose label, type or properties contain this")
}

func (f *filterFlags) options() domain.FilterOptions {
	return domain.FilterOptions{
		NodeTypes:     f.nodeTypes,
		EdgeTypes:     f.edgeTypes,
		MinConfidence: f.minConfidence,
		SearchQuery:   f.query,
	}
}

// currentSettings returns the configured settings or the defaults.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	s, err := settingsService.Get()
	if err != nil || s == nil {
		logger.Warn("using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *s
}

// settle runs the force layout on g until it comes to rest, writing the
// node positions in place.
func settle(g *domain.KnowledgeGraph) {
	if g.IsEmpty() {
		return
	}
	s := currentSettings()
	sim := layout.New(g.Nodes, g.Edges, layout.Config{
		LinkDistance:   s.Layout.LinkDistance,
		ChargeStrength: s.Layout.ChargeStrength,
	})
	ticks := sim.Settle(settleTicks)
	logger.Debug("layout settled after %d ticks", ticks)
}
