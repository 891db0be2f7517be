package main

import (
	"fmt"
	"os"

	"github.com/jonathan/hrm-letters/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveStorageDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for branding, templates, employees, and letter generation.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveStorageDir, "storage-dir", "", "Directory for generated PDFs (default: $STORAGE_DIR or ./storage)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	storageDir := serveStorageDir
	if storageDir == "" {
		storageDir = os.Getenv("STORAGE_DIR")
	}
	if storageDir == "" {
		storageDir = "storage"
	}

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		StorageDir:  storageDir,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
