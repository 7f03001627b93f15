package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/retrieval"
)

var rankCommand = &cobra.Command{
	Use:   "rank",
	Short: "Run the full ranking pipeline and write a report",
	Long: `Runs every stage: job ingestion -> requirement extraction -> retrieval -> parsing ->
eligibility filter -> enrichment -> scoring -> ranking -> verification.

Configuration can be loaded from a JSON or YAML file using --config. Command-line arguments
override config file values.`,
	RunE: runRankCmd,
}

var (
	rankConfigPath    string
	rankJob           string
	rankJobURL        string
	rankResumesDir    string
	rankURLs          []string
	rankDownloadDir   string
	rankOut           string
	rankTopN          int
	rankMaxYears      int
	rankMaxConcurrent int
	rankMaxAttempts   int
	rankAPIKey        string
	rankUseBrowser    bool
	rankNoEnrich      bool
	rankVerbose       bool
)

func init() {
	rankCommand.Flags().StringVar(&rankConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")

	rankCommand.Flags().StringVarP(&rankJob, "job", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	rankCommand.Flags().StringVar(&rankJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	rankCommand.Flags().StringVarP(&rankResumesDir, "resumes", "r", "", "Directory of already-downloaded resumes (mutually exclusive with --url)")
	rankCommand.Flags().StringArrayVar(&rankURLs, "url", nil, "Resume location to download (repeatable)")
	rankCommand.Flags().StringVar(&rankDownloadDir, "download-dir", "", "Where downloaded resumes are kept (default: temporary directory)")
	rankCommand.Flags().StringVarP(&rankOut, "out", "o", "report.json", "Path to write the JSON report")
	rankCommand.Flags().IntVar(&rankTopN, "top", 0, "Number of candidates to rank (default 10)")
	rankCommand.Flags().IntVar(&rankMaxYears, "max-years", 0, "Override the maximum years of experience")
	rankCommand.Flags().IntVar(&rankMaxConcurrent, "max-concurrent", 0, "Simultaneous downloads (default 5)")
	rankCommand.Flags().IntVar(&rankMaxAttempts, "max-attempts", 0, "Download attempts per resume (default 3)")
	rankCommand.Flags().BoolVar(&rankUseBrowser, "use-browser", false, "Use headless browser for SPA job postings (requires Chrome)")
	rankCommand.Flags().BoolVar(&rankNoEnrich, "no-enrich", false, "Skip external activity lookups")
	rankCommand.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print detailed summaries of every stage")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	rankCommand.Flags().StringVar(&rankAPIKey, "api-key", "", "Gemini API key for semantic similarity (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(rankCommand)
}

func runRankCmd(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if rankConfigPath != "" {
		loaded, err := config.LoadConfig(rankConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Step 2: Apply CLI overrides (only flags that were explicitly set)
	flags := cmd.Flags()
	if flags.Changed("job") {
		cfg.Job = rankJob
	}
	if flags.Changed("job-url") {
		cfg.JobURL = rankJobURL
	}
	if flags.Changed("resumes") {
		cfg.ResumesDir = rankResumesDir
	}
	if flags.Changed("url") {
		cfg.URLs = rankURLs
	}
	if flags.Changed("download-dir") {
		cfg.DownloadDir = rankDownloadDir
	}
	if flags.Changed("top") {
		cfg.TopN = rankTopN
	}
	if flags.Changed("max-years") {
		cfg.MaxYears = &rankMaxYears
	}
	if flags.Changed("max-concurrent") {
		cfg.MaxConcurrent = rankMaxConcurrent
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = rankMaxAttempts
	}
	if flags.Changed("api-key") {
		cfg.APIKey = rankAPIKey
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = rankUseBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rankVerbose
	}

	// Step 3: Environment and defaults for unset values
	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Config{TopN: ranking.DefaultTopN})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return executeRank(ctx, cfg, rankRuntime{
		Out:     rankOut,
		Offline: rankNoEnrich,
		Stdout:  cmd.OutOrStdout(),
		Logger:  slog.Default(),
	})
}

// rankRuntime holds settings that never come from the config file.
type rankRuntime struct {
	Out     string
	Offline bool
	Stdout  io.Writer
	Logger  *slog.Logger
	// Collaborators, when set, replaces the ones built from cfg
	Collaborators *pipeline.Collaborators
}

func executeRank(ctx context.Context, cfg config.Config, rt rankRuntime) error {
	// Validate after merging flags, file and environment
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.ResumesDir == "" && len(cfg.URLs) == 0 {
		return fmt.Errorf("either --resumes or --url must be provided (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if rt.Out == "" {
		return fmt.Errorf("--out must not be empty")
	}

	collaborators := rt.Collaborators
	if collaborators == nil {
		collaborators = pipeline.NewCollaborators(ctx, pipeline.CollaboratorOptions{
			APIKey:      cfg.APIKey,
			GitHubToken: cfg.GitHubToken,
			RedisAddr:   cfg.RedisAddr,
			Offline:     rt.Offline,
			Logger:      rt.Logger,
		})
		defer func() { _ = collaborators.Close() }()
	}

	printer := observability.NewPrinter(rt.Stdout)
	opts := pipeline.RunOptions{
		JobPath:     cfg.Job,
		JobURL:      cfg.JobURL,
		UseBrowser:  cfg.UseBrowser,
		ResumesDir:  cfg.ResumesDir,
		Locations:   cfg.URLs,
		DownloadDir: cfg.DownloadDir,
		TopN:        cfg.TopN,
		MaxYears:    cfg.MaxYears,
		Retrieval: retrieval.Options{
			MaxConcurrent: cfg.MaxConcurrent,
			Retry:         retrieval.RetryPolicy{MaxAttempts: cfg.MaxAttempts},
		},
		Logger: rt.Logger,
	}
	if cfg.MaxFileSize > 0 {
		v := retrieval.DefaultValidator()
		v.MaxSize = cfg.MaxFileSize
		opts.Retrieval.Validator = v
	}
	if cfg.Verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(rt.Stdout, "[%s] %s\n", e.Step, e.Message)
		}
	}
	collaborators.Apply(&opts)

	report, err := pipeline.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}
	if err := pipeline.WriteReport(rt.Out, report); err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintReport(report)
	}
	_, _ = fmt.Fprintf(rt.Stdout, "Ranked %d of %d candidates (%d excluded, %d downloads failed)\n",
		report.Counters.Ranked, report.Counters.Scanned, report.Counters.Excluded, report.Counters.DownloadFailed)
	_, _ = fmt.Fprintf(rt.Stdout, "Report: %s\n", rt.Out)
	return nil
}
