package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/omnibar/internal/query/calc"
)

var calcCmd = &cobra.Command{
	Use:   "calc <expression>",
	Short: "Evaluate an arithmetic expression",
	Long: `Evaluate an arithmetic expression the way the search input does.

Supports + - * / and parentheses. Anything else is rejected.

Examples:
  omnibar calc "3+4*2"
  omnibar calc "(0.1+0.2)*10"`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	value, ok := calc.New().Evaluate(args[0])
	if !ok {
		return fmt.Errorf("not a valid expression: %q", args[0])
	}
	fmt.Println(value)
	return nil
}
