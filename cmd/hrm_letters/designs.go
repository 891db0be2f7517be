package main

import (
	"fmt"

	"github.com/jonathan/hrm-letters/internal/letters"
	"github.com/spf13/cobra"
)

var designsShowMarkup bool

var designsCmd = &cobra.Command{
	Use:   "designs",
	Short: "List the built-in design catalog",
	Long:  "Prints the catalog designs with their IDs, categories, and subject lines. Unknown design IDs fall back to " + letters.DefaultDesignID + " at generation time.",
	RunE:  runDesigns,
}

func init() {
	designsCmd.Flags().BoolVar(&designsShowMarkup, "markup", false, "Also print each design's markup body")
	rootCmd.AddCommand(designsCmd)
}

func runDesigns(_ *cobra.Command, _ []string) error {
	designs := letters.Designs()

	fmt.Printf("%-22s %-14s %s\n", "ID", "CATEGORY", "NAME")
	for _, d := range designs {
		fmt.Printf("%-22s %-14s %s\n", d.ID, d.Category, d.Name)
		if designsShowMarkup {
			fmt.Printf("  subject: %s\n", d.Subject)
			fmt.Println(d.Markup)
			fmt.Println()
		}
	}
	fmt.Printf("\n%d designs\n", len(designs))
	return nil
}
