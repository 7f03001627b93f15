// Package main provides the resume_ranker command line: batch ranking runs,
// standalone downloads and requirement extraction, and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/observability"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "resume_ranker",
	Short: "Rank candidate resumes against a job description",
	Long: `resume_ranker downloads candidate resumes, filters them by the experience range a job
description asks for, scores the rest on requirement match, external activity and awards,
and writes an auditable ranking report.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		level := logLevel
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		format := logFormat
		if format == "" {
			format = os.Getenv("LOG_FORMAT")
		}
		observability.SetupLogger(level, format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (defaults to LOG_LEVEL or info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (defaults to LOG_FORMAT or text)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
