package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hrm-letters/internal/config"
	"github.com/jonathan/hrm-letters/internal/db"
	"github.com/jonathan/hrm-letters/internal/letters"
	"github.com/jonathan/hrm-letters/internal/observability"
	"github.com/jonathan/hrm-letters/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a letter PDF",
	Long:  "Resolves a template or catalog design against the request fields and branding profile, renders it, and writes the PDF to a file.",
	RunE:  runGenerate,
}

var (
	genName           string
	genEmail          string
	genRole           string
	genSalary         string
	genJoiningDate    string
	genLastWorkingDay string
	genInterviewDate  string
	genInterviewTime  string
	genInterviewMode  string
	genInterviewLoc   string
	genInterviewLink  string
	genHRName         string
	genBodyFile       string
	genDesignID       string
	genTemplateID     string
	genLetterType     string
	genEmployeeID     string
	genDecorate       bool
	genOutputFile     string
	genDatabaseURL    string
	genConfigFile     string
	genVerbose        bool
)

func init() {
	generateCmd.Flags().StringVarP(&genName, "name", "n", "", "Recipient name (required)")
	generateCmd.Flags().StringVarP(&genEmail, "email", "e", "", "Recipient email")
	generateCmd.Flags().StringVar(&genRole, "role", "", "Designation or role")
	generateCmd.Flags().StringVar(&genSalary, "salary", "", "Annual salary, freeform")
	generateCmd.Flags().StringVar(&genJoiningDate, "joining-date", "", "Joining date (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genLastWorkingDay, "last-working-day", "", "Last working day (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genInterviewDate, "interview-date", "", "Interview date")
	generateCmd.Flags().StringVar(&genInterviewTime, "interview-time", "", "Interview time")
	generateCmd.Flags().StringVar(&genInterviewMode, "interview-mode", "", "Interview mode (online/offline)")
	generateCmd.Flags().StringVar(&genInterviewLoc, "interview-location", "", "Interview location (offline mode)")
	generateCmd.Flags().StringVar(&genInterviewLink, "interview-link", "", "Interview link (online mode)")
	generateCmd.Flags().StringVar(&genHRName, "hr-name", "", "Signing HR name")
	generateCmd.Flags().StringVar(&genBodyFile, "body", "", "Path to a free-text body file overriding the template body")
	generateCmd.Flags().StringVarP(&genDesignID, "design", "d", "", "Catalog design ID")
	generateCmd.Flags().StringVarP(&genTemplateID, "template-id", "t", "", "Stored template ID")
	generateCmd.Flags().StringVar(&genLetterType, "type", "", "Letter type for classification (e.g. \"Offer Letter\")")
	generateCmd.Flags().StringVar(&genEmployeeID, "employee-id", "", "Employee ID to append the letter record to")
	generateCmd.Flags().BoolVar(&genDecorate, "decorate", false, "Overlay branding onto a fixed-PDF template")
	generateCmd.Flags().StringVarP(&genOutputFile, "out", "o", "", "Path to output PDF file (required)")
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "Database URL (default: $DATABASE_URL)")
	generateCmd.Flags().StringVarP(&genConfigFile, "config", "c", "", "Path to JSON config file")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed progress")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	if genName == "" {
		return fmt.Errorf("--name is required")
	}
	if genOutputFile == "" {
		return fmt.Errorf("--out is required")
	}
	if genDesignID != "" && genTemplateID != "" {
		return fmt.Errorf("--design and --template-id are mutually exclusive")
	}

	cfg := config.Config{
		DatabaseURL: genDatabaseURL,
		Verbose:     genVerbose,
	}
	if genConfigFile != "" {
		fileCfg, err := config.LoadConfig(genConfigFile)
		if err != nil {
			return err
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (--db-url, config file, or $DATABASE_URL)")
	}
	if cfg.ChromePath != "" {
		// NewPDFRenderer picks the browser up from the environment
		os.Setenv("CHROME_PATH", cfg.ChromePath)
	}
	if cfg.DisableOverlay {
		genDecorate = false
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	req := &types.GenerateRequest{
		EmployeeID:        genEmployeeID,
		Name:              genName,
		Email:             genEmail,
		Role:              genRole,
		Salary:            genSalary,
		JoiningDate:       genJoiningDate,
		LastWorkingDay:    genLastWorkingDay,
		InterviewDate:     genInterviewDate,
		InterviewTime:     genInterviewTime,
		InterviewMode:     genInterviewMode,
		InterviewLocation: genInterviewLoc,
		InterviewLink:     genInterviewLink,
		HRName:            genHRName,
		DesignID:          genDesignID,
		TemplateID:        genTemplateID,
		LetterType:        genLetterType,
		Decorate:          genDecorate,
	}
	if genBodyFile != "" {
		body, err := os.ReadFile(genBodyFile)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		req.BodyContent = string(body)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	svc := letters.NewService(database, nil)
	result, err := svc.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("letter generation failed: %w", err)
	}

	if err := os.WriteFile(genOutputFile, result.PDF, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	result.FileURL = genOutputFile

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintResult(result)
	} else {
		fmt.Printf("Wrote %s (%d bytes, mode %s)\n", genOutputFile, len(result.PDF), result.Mode)
		for _, warning := range result.Warnings {
			fmt.Printf("warning: %s\n", warning)
		}
	}

	return nil
}
