package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgraph/internal/connectors/filesystem"
)

var watchNoScan bool

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Store extractor output files dropped into a directory",
	Long: `Watch a directory and store every *.json file written to it as a graph.
Files already present are stored first unless --no-scan is given. Hidden
files are ignored. Ingestion is rate limited by watch.rate_per_second.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoScan, "no-scan", false, "skip files already in the directory")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}
	if extractionService == nil {
		return errNoExtraction
	}

	settings := currentSettings()
	w := filesystem.New(args[0], extractionService, graphStore,
		filesystem.WithRate(settings.Watch.RatePerSecond))
	if err := w.Validate(); err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if !watchNoScan {
		events, err := w.Scan(ctx)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		for _, ev := range events {
			printEvent(out, ev)
		}
	}

	return watch(ctx, w, out)
}

func watch(ctx context.Context, w *filesystem.Watcher, out io.Writer) error {
	events, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	fmt.Fprintf(out, "Watching %s\n", w.Root())
	for ev := range events {
		printEvent(out, ev)
	}
	return nil
}

func printEvent(out io.Writer, ev filesystem.Event) {
	if ev.Err != nil {
		fmt.Fprintf(out, "skipped %s: %v\n", ev.Path, ev.Err)
		return
	}
	fmt.Fprintf(out, "stored  %s as %s\n", ev.Path, ev.ID)
}
