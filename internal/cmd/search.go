package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/omnibar/internal/query"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one search pass and print the grouped results",
	Long: `Run one search pass and print the grouped results.

An empty query prints the default view (actions, open tabs, recent pages).

Examples:
  omnibar search "github"         # Grouped plain-text results
  omnibar search --json "3+4*2"   # Machine-readable output
  omnibar search ""               # Default view`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

type searchItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Rank        float64   `json:"rank"`
	Tags        []string  `json:"tags,omitempty"`
	LastVisited time.Time `json:"last_visited,omitempty"`
}

type searchGroup struct {
	Category string       `json:"category"`
	Items    []searchItem `json:"items"`
}

type searchResponse struct {
	PassID string        `json:"pass_id"`
	Groups []searchGroup `json:"groups"`
	Total  int           `json:"total"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	results := eng.Aggregator.Aggregate(context.Background(), args[0], query.Context{})

	if searchJSON {
		return writeSearchJSON(results)
	}

	if results.Len() == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for _, g := range results.Groups {
		fmt.Printf("%s\n", g.Category)
		for _, item := range g.Items {
			line := "  " + item.Title
			if item.Description != "" {
				line += "  — " + item.Description
			} else if item.URL != "" {
				line += "  — " + item.URL
			}
			fmt.Println(line)
		}
	}
	return nil
}

func writeSearchJSON(results *query.ResultSet) error {
	resp := searchResponse{
		PassID: results.PassID,
		Groups: make([]searchGroup, len(results.Groups)),
		Total:  results.Len(),
	}
	for i, g := range results.Groups {
		items := make([]searchItem, len(g.Items))
		for j, item := range g.Items {
			items[j] = searchItem{
				ID:          item.ID,
				Type:        string(item.Type),
				Title:       item.Title,
				Description: item.Description,
				URL:         item.URL,
				Rank:        item.Rank,
				Tags:        item.Tags,
				LastVisited: item.LastVisited,
			}
		}
		resp.Groups[i] = searchGroup{Category: string(g.Category), Items: items}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(resp)
}
