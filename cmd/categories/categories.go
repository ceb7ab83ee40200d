// Package categories implements the categories subcommand.
package categories

import (
	"fmt"

	"github.com/spf13/cobra"

	"finflow/statement-ingest/cmd/root"
	"finflow/statement-ingest/internal/store"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the active category vocabulary",
	Long: `Print the closed set of categories the model chooses from, with the
descriptions that are fed into its instruction.`,
	Run: func(cmd *cobra.Command, args []string) {
		vocab, err := store.NewCategoryStore(root.Cfg.Categories.File).LoadCategories()
		if err != nil {
			root.Log.Fatalf("Error loading categories: %v", err)
		}
		for _, c := range vocab {
			fmt.Printf("%-15s %s\n", c.Name, c.Description)
		}
	},
}
