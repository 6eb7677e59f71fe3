package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/omnibar/internal/query"
)

var openQuery string

var openCmd = &cobra.Command{
	Use:   "open <item-id>",
	Short: "Execute the action behind a result item",
	Long: `Execute the action behind a result item from a previous search.

Item ids are stable for a given query, so the usual flow is:

  omnibar search --json "github"       # Note the item id
  omnibar open --query "github" bookmark-42

Without --query the item is looked up in the default view.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVarP(&openQuery, "query", "q", "", "the query the item id came from")

	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx := context.Background()
	itemID := args[0]
	results := eng.Aggregator.Aggregate(ctx, openQuery, query.Context{})

	for _, g := range results.Groups {
		for _, item := range g.Items {
			if item.ID != itemID {
				continue
			}
			if !eng.Executor.Execute(ctx, item.Metadata) {
				return fmt.Errorf("action %q did not run", item.Metadata.Action)
			}
			return nil
		}
	}
	return fmt.Errorf("no item %q for query %q", itemID, openQuery)
}
