package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertLayout bool

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Convert extractor output to a graph fragment",
	Long: `Convert extractor output to a knowledge graph fragment and print it as JSON.
Nothing is stored. Reads stdin when no file or "-" is given.

Every entity becomes a node. Every relation becomes an edge; an endpoint
that matches no entity text gets an INFERRED placeholder node.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertLayout, "layout", false, "precompute node positions")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errNoExtraction
	}

	in, err := readInput(cmd, argOrEmpty(args))
	if err != nil {
		return err
	}

	_, g, err := extractionService.Convert(cmd.Context(), in.data)
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}
	if convertLayout {
		settle(g)
	}
	return printJSON(cmd, g)
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
