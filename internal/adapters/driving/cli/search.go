package cli

import (
	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored graphs",
	Long: `Search stored graphs by name, original input, entity text and relation type.
Matching ignores case.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if graphStore == nil {
		return errNoStore
	}

	items := graphStore.Search(cmd.Context(), args[0])
	if searchJSON {
		return printJSON(cmd, items)
	}
	printItems(cmd.OutOrStdout(), items, "No matching graphs.")
	return nil
}
