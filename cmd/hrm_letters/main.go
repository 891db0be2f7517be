// Package main provides the entry point for the HRM letter service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hrm_letters",
	Short: "HRM Letter Service",
	Long:  "Generates branded HR letters (offer, interview, appointment, rejection, relieving) as PDFs from stored templates and a design catalog, via REST API or CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
