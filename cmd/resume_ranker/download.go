package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/retrieval"
)

var downloadCmd = &cobra.Command{
	Use:   "download URL...",
	Short: "Download and validate resumes without ranking them",
	Long:  "Download every URL into --out-dir with bounded concurrency and retries. Exits non-zero if any download fails.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDownload,
}

var (
	downloadOutDir        string
	downloadMaxConcurrent int
	downloadMaxAttempts   int
	downloadMaxFileSize   int64
)

func init() {
	downloadCmd.Flags().StringVar(&downloadOutDir, "out-dir", "", "Directory to write downloads to (required)")
	downloadCmd.Flags().IntVar(&downloadMaxConcurrent, "max-concurrent", retrieval.DefaultMaxConcurrent, "Simultaneous downloads")
	downloadCmd.Flags().IntVar(&downloadMaxAttempts, "max-attempts", 3, "Attempts per URL")
	downloadCmd.Flags().Int64Var(&downloadMaxFileSize, "max-file-size", retrieval.DefaultMaxSize, "Per-file size ceiling in bytes")
	_ = downloadCmd.MarkFlagRequired("out-dir")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := retrieval.DefaultValidator()
	v.MaxSize = downloadMaxFileSize
	r := retrieval.New(retrieval.Options{
		OutDir:        downloadOutDir,
		MaxConcurrent: downloadMaxConcurrent,
		Retry:         retrieval.RetryPolicy{MaxAttempts: downloadMaxAttempts},
		Validator:     v,
	})
	return executeDownload(ctx, r, args, cmd.OutOrStdout())
}

func executeDownload(ctx context.Context, r *retrieval.Retriever, locations []string, out io.Writer) error {
	results, err := r.Retrieve(ctx, locations)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "FAIL %s (%d attempts): %v\n", res.Location, res.Err.Attempts, res.Err.Cause)
			continue
		}
		_, _ = fmt.Fprintf(out, "OK   %s -> %s (%d bytes)\n", res.Location, res.Document.Path, res.Document.Size)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(results))
	}
	return nil
}
