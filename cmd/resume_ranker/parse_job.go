package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/parsing"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Extract structured requirements from a job description",
	Long:  "Read a job description file and print the inferred skills, frameworks and experience range as JSON.",
	RunE:  runParseJob,
}

var (
	parseJobFile  string
	parseOutFile  string
	parseMaxYears int
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseJobFile, "job", "j", "", "Path to job description file (required)")
	parseJobCmd.Flags().StringVarP(&parseOutFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseJobCmd.Flags().IntVar(&parseMaxYears, "max-years", 0, "Override the maximum years of experience")
	_ = parseJobCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	var override *int
	if cmd.Flags().Changed("max-years") {
		override = &parseMaxYears
	}
	return executeParseJob(cmd.Context(), parseJobFile, override, parseOutFile, cmd.OutOrStdout())
}

func executeParseJob(ctx context.Context, jobFile string, maxYears *int, outFile string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	text, _, err := ingestion.IngestFromFile(ctx, jobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	reqs, err := parsing.ExtractRequirements(text, parsing.ExtractOptions{MaxYearsOverride: maxYears})
	if err != nil {
		return fmt.Errorf("failed to extract requirements: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(reqs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if outFile == "" {
		_, err = fmt.Fprintln(stdout, string(jsonBytes))
		return err
	}
	if err := os.WriteFile(outFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(stdout, "Output: %s\n", outFile)
	return nil
}
