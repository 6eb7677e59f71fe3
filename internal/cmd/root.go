// Package cmd is the cobra command surface for omnibar.
package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runger/omnibar/internal/picker"
	"github.com/runger/omnibar/internal/query"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "omnibar",
	Short: "unified quick search over your browser profile",
	Long: `omnibar - unified quick search over your browser profile
  - one input over bookmarks, tags, history, tabs, downloads, settings
  - type arithmetic to get an instant result
  - Enter opens, focuses, copies or bookmarks`,
	RunE: runPicker,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: XDG config dir)")
}

// runPicker launches the interactive picker, the default surface.
func runPicker(cmd *cobra.Command, args []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	model := picker.NewModel(eng.Aggregator, eng.Executor, query.Context{})
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running picker: %w", err)
	}

	if m, ok := final.(picker.Model); ok {
		if item, executed := m.Result(); executed {
			eng.Logger.Debug("executed", "id", item.ID, "verb", item.Metadata.Action)
		}
	}
	return nil
}
