package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	importMerge bool
	clearYes    bool
)

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export every stored graph",
	Long: `Export the whole collection as a versioned JSON envelope. Writes to stdout
when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import graphs from an export file",
	Long: `Import an export envelope. By default the collection is replaced. With
--merge, items whose id is already stored are skipped and the rest are added.

A malformed file is rejected and nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored graph",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "keep existing graphs and add new ones")
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(exportCmd, importCmd, clearCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}

	data, err := graphStore.ExportAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if len(args) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(args[0], data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d graphs to %s\n",
		graphStore.Stats(cmd.Context()).TotalItems, args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}

	in, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	n, err := graphStore.ImportAll(cmd.Context(), in.data, importMerge)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d graphs\n", n)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if graphStore == nil {
		return errNoStore
	}

	if !clearYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to clear without --yes")
		}
		n := graphStore.Stats(cmd.Context()).TotalItems
		fmt.Fprintf(cmd.OutOrStdout(), "Delete all %d stored graphs? [y/N]: ", n)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := graphStore.ClearAll(cmd.Context()); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cleared all stored graphs.")
	return nil
}
