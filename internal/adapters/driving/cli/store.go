package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/graphops"
)

var (
	saveName   string
	saveSource string
	saveJSON   bool
	listJSON bool
	showJSON bool
	statJSON bool
)

var saveCmd = &cobra.Command{
	Use:   "save [file|-]",
	Short: "Convert extractor output and store the fragment",
	Long: `Convert extractor output and store the fragment at the front of the
collection. The oldest fragments are evicted once the store is full.

The name defaults to the file name, or to a timestamp for stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored graphs, most recent first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored graph",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a stored graph",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	saveCmd.Flags().StringVarP(&saveName, "name", "n", "", "name of the stored graph")
	saveCmd.Flags().StringVar(&saveSource, "source", "", "record the input as text or file (default: detected)")
	saveCmd.Flags().BoolVar(&saveJSON, "json", false, "output the new item as JSON")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output items as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the item as JSON")
	statsCmd.Flags().BoolVar(&statJSON, "json", false, "output statistics as JSON")

	rootCmd.AddCommand(saveCmd, listCmd, showCmd, deleteCmd, renameCmd, statsCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}
	if extractionService == nil {
		return errNoExtraction
	}

	in, err := readInput(cmd, argOrEmpty(args))
	if err != nil {
		return err
	}
	if saveSource != "" {
		in.source = domain.ItemSource(saveSource)
		if !in.source.IsValid() {
			return fmt.Errorf("%w: source must be text or file", domain.ErrInvalidInput)
		}
	}
	result, err := extractionService.Decode(cmd.Context(), in.data)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	name := saveName
	if name == "" {
		name = in.name
	}
	id, err := graphStore.Save(cmd.Context(), *result, name, in.source, string(in.data))
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	item, err := graphStore.GetByID(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("reading back %s: %w", id, err)
	}
	if saveJSON {
		return printJSON(cmd, item)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s %q (%d nodes, %d edges)\n",
		item.ID, item.Name, item.Graph.Metadata.NodeCount, item.Graph.Metadata.EdgeCount)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if graphStore == nil {
		return errNoStore
	}

	items := graphStore.GetAll(cmd.Context())
	if listJSON {
		return printJSON(cmd, items)
	}
	printItems(cmd.OutOrStdout(), items, "No stored graphs.")
	return nil
}

// printItems writes one line per item.
func printItems(w io.Writer, items []domain.StoredGraphItem, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for i := range items {
		item := &items[i]
		fmt.Fprintf(w, "%s  %-24s  %3d nodes  %3d edges  %s  %s\n",
			item.ID, item.Name,
			item.Graph.Metadata.NodeCount, item.Graph.Metadata.EdgeCount,
			item.CreatedAt.Format("2006-01-02 15:04"), item.Source)
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}

	item, err := graphStore.GetByID(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("graph %s: %w", args[0], err)
	}
	if showJSON {
		return printJSON(cmd, item)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "ID:       %s\n", item.ID)
	fmt.Fprintf(w, "Name:     %s\n", item.Name)
	fmt.Fprintf(w, "Source:   %s\n", item.Source)
	fmt.Fprintf(w, "Created:  %s\n", item.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Updated:  %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Nodes:    %d\n", item.Graph.Metadata.NodeCount)
	fmt.Fprintf(w, "Edges:    %d\n", item.Graph.Metadata.EdgeCount)

	nodeTypes, edgeTypes := graphops.Types(item.Graph)
	if len(nodeTypes) > 0 {
		fmt.Fprintf(w, "\nNode types:\n")
		for _, tc := range nodeTypes {
			fmt.Fprintf(w, "  %-20s %d\n", tc.Type, tc.Count)
		}
	}
	if len(edgeTypes) > 0 {
		fmt.Fprintf(w, "\nEdge types:\n")
		for _, tc := range edgeTypes {
			fmt.Fprintf(w, "  %-20s %d\n", tc.Type, tc.Count)
		}
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}

	ok, err := graphStore.Delete(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}

	name := strings.TrimSpace(args[1])
	if name == "" {
		return errors.New("name must not be empty")
	}
	ok, err := graphStore.Update(cmd.Context(), args[0], domain.ItemUpdate{Name: &name})
	if err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], name)
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	if graphStore == nil {
		return errNoStore
	}

	stats := graphStore.Stats(cmd.Context())
	if statJSON {
		return printJSON(cmd, stats)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Graphs:   %d / %d\n", stats.TotalItems, graphStore.Capacity())
	fmt.Fprintf(w, "Nodes:    %d\n", stats.TotalNodes)
	fmt.Fprintf(w, "Edges:    %d\n", stats.TotalEdges)
	fmt.Fprintf(w, "Size:     %s\n", formatBytes(stats.ApproximateStorageSize))
	if stats.OldestTimestamp != nil {
		fmt.Fprintf(w, "Oldest:   %s\n", stats.OldestTimestamp.Format("2006-01-02 15:04:05"))
	}
	if stats.NewestTimestamp != nil {
		fmt.Fprintf(w, "Newest:   %s\n", stats.NewestTimestamp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
