package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgraph/internal/adapters/driving/tui"
)

var (
	viewID     string
	viewMerged bool
	viewLimit  int
	viewFilter filterFlags
)

var errNotTerminal = errors.New("view needs an interactive terminal")

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore stored graphs in the terminal",
	Long: `Open the interactive graph view.

Without flags the stored graphs are listed; enter opens one and m opens the
merge of the most recent ones. --id and --merged go straight to a graph.

Controls on the graph:
  mouse     - click to select, drag nodes, drag background to pan, wheel to zoom
  tab       - cycle selection      +/-  - zoom
  /         - search               t    - cycle node type
  [ ]       - confidence threshold r    - reset filter
  f         - fit                  space - reheat layout
  l a       - labels / arrows      i    - node details
  esc       - back                 ?    - help
  q         - quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewID, "id", "", "open the stored graph with this id")
	viewCmd.Flags().BoolVarP(&viewMerged, "merged", "m", false, "open the merge of the most recent graphs")
	viewCmd.Flags().IntVarP(&viewLimit, "limit", "l", 0, "number of graphs merged by --merged (default from settings)")
	viewFilter.register(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) (err error) {
	if graphStore == nil {
		return errNoStore
	}
	if !stdinIsTerminal() {
		return errNotTerminal
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in view: %v", r)
		}
	}()

	opts, err := viewOptions(cmd)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(graphStore, settingsService), opts...)
	if err != nil {
		return fmt.Errorf("failed to create view: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("view error: %w", err)
	}
	return nil
}

// viewOptions resolves the flags into the graph the app starts on.
func viewOptions(cmd *cobra.Command) ([]tui.Option, error) {
	opts := []tui.Option{tui.WithFilter(viewFilter.options())}

	switch {
	case viewID != "":
		item, err := graphStore.GetByID(cmd.Context(), viewID)
		if err != nil {
			return nil, fmt.Errorf("graph %s: %w", viewID, err)
		}
		opts = append(opts, tui.WithGraph(item.Name, item.Graph))
	case viewMerged:
		limit := viewLimit
		if limit <= 0 {
			limit = currentSettings().Store.MergeLimit
		}
		g := graphStore.MergedGraph(cmd.Context(), limit)
		if g == nil {
			return nil, errors.New("no stored graphs to merge")
		}
		opts = append(opts, tui.WithGraph(fmt.Sprintf("Merged (latest %d)", limit), *g))
	}
	return opts, nil
}
