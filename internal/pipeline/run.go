// Package pipeline orchestrates a ranking run from job description to report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-ranker/internal/eligibility"
	"github.com/jonathan/resume-ranker/internal/enrichment"
	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/parsing"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/retrieval"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/jonathan/resume-ranker/internal/verification"
)

// Step names reported through ProgressCallback.
const (
	StepIngestJob    = "ingest_job"
	StepRequirements = "extract_requirements"
	StepRetrieve     = "retrieve"
	StepParse        = "parse"
	StepFilter       = "filter"
	StepEnrich       = "enrich"
	StepScore        = "score"
	StepVerify       = "verify"
)

// ErrNoJob is returned when no job description source is given.
var ErrNoJob = errors.New("a job description is required (text, file, or URL)")

// ErrNoResumes is returned when neither a directory nor locations are given.
var ErrNoResumes = errors.New("resumes are required (directory or locations)")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline.
// Exactly one of JobText, JobPath, JobURL and one of ResumesDir, Locations is expected.
type RunOptions struct {
	JobText    string
	JobPath    string
	JobURL     string
	UseBrowser bool

	ResumesDir string
	Locations  []string
	// DownloadDir receives downloads; empty means a temporary directory removed after the run
	DownloadDir string

	TopN     int
	MaxYears *int

	Retrieval retrieval.Options
	// Retriever overrides the one built from Retrieval
	Retriever  *retrieval.Retriever
	Provider   enrichment.Provider
	Similarity extraction.SimilarityScorer
	Extractor  *extraction.Chain

	Metrics    *observability.Metrics
	Logger     *slog.Logger
	Now        func() time.Time
	OnProgress ProgressCallback
}

// runContext is the immutable per-run state shared by the stages.
type runContext struct {
	id       string
	jobText  string
	job      types.JobSource
	reqs     *types.RequirementSet
	opts     *RunOptions
	logger   *slog.Logger
	now      time.Time
	progress func(step, message string, content any)
}

// Run executes every stage and returns the report. Only a missing or
// unreadable job description (or cancellation) aborts the run; every
// per-candidate problem is recorded in the report instead.
func Run(ctx context.Context, opts RunOptions) (report *types.Report, err error) {
	start := time.Now()
	defer func() {
		if opts.Metrics == nil {
			return
		}
		status := "ok"
		if err != nil {
			status = "error"
		}
		opts.Metrics.PipelineRunsTotal.WithLabelValues(status).Inc()
		opts.Metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}()

	rc, err := newRunContext(ctx, &opts)
	if err != nil {
		return nil, err
	}

	report = &types.Report{
		RunID:               rc.id,
		GeneratedAt:         rc.now,
		Job:                 rc.job,
		Requirements:        *rc.reqs,
		Exclusions:          []types.ExclusionRecord{},
		DownloadErrors:      []types.DownloadFailure{},
		ParseWarnings:       []types.Issue{},
		EnrichmentIssues:    []types.Issue{},
		Ranked:              []types.RankedEntry{},
		SimilarityAvailable: opts.Similarity != nil,
	}

	docs, cleanup, err := rc.retrieve(ctx, report)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	candidates := rc.parse(ctx, docs, report)

	eligible, excluded := eligibility.Partition(candidates, rc.reqs)
	report.Exclusions = append(report.Exclusions, excluded...)
	report.Counters.Excluded = len(excluded)
	report.Counters.Eligible = len(eligible)
	if opts.Metrics != nil {
		opts.Metrics.CandidatesExcluded.Add(float64(len(excluded)))
	}
	rc.progress(StepFilter, fmt.Sprintf("%d eligible, %d excluded", len(eligible), len(excluded)), excluded)

	consumer := enrichment.NewConsumer(opts.Provider)
	consumer.Logger = rc.logger.With("component", "enrichment")
	if opts.Metrics != nil {
		consumer.Observer = func(outcome string) {
			opts.Metrics.EnrichmentLookups.WithLabelValues(outcome).Inc()
		}
	}
	enriched, issues := consumer.Enrich(ctx, eligible, rc.reqs)
	report.EnrichmentIssues = append(report.EnrichmentIssues, issues...)
	rc.progress(StepEnrich, fmt.Sprintf("enriched %d candidates (%d degraded)", len(enriched), len(issues)), nil)

	scored := ranking.ScoreAll(enriched, rc.reqs)
	rc.progress(StepScore, fmt.Sprintf("scored %d candidates", len(scored)), nil)

	verifier := verification.New()
	verifier.Logger = rc.logger.With("component", "verifier")
	ranked, summary := verifier.Verify(scored, eligibility.ExcludedIDs(excluded), rc.reqs, opts.TopN)
	if opts.Metrics != nil {
		opts.Metrics.VerificationPasses.Observe(float64(summary.Passes))
	}
	report.Verification = summary
	report.Ranked = ranked
	report.Counters.Ranked = len(ranked)
	rc.progress(StepVerify, fmt.Sprintf("%d ranked after %d verification passes", len(ranked), summary.Passes), summary)

	rc.logger.Info("run complete",
		"scanned", report.Counters.Scanned,
		"failed", report.Counters.DownloadFailed,
		"excluded", report.Counters.Excluded,
		"ranked", report.Counters.Ranked,
		"duration", time.Since(start))
	return report, nil
}

func newRunContext(ctx context.Context, opts *RunOptions) (*runContext, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = observability.WithComponent("pipeline")
	}

	rc := &runContext{
		id:   uuid.New().String(),
		opts: opts,
		now:  now().UTC(),
	}
	rc.logger = logger.With("run_id", rc.id)
	rc.progress = func(step, message string, content any) {
		rc.logger.Debug(message, "step", step)
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{Step: step, Message: message, RunID: rc.id, Content: content})
		}
	}

	text, meta, err := loadJob(ctx, opts, rc.logger)
	if err != nil {
		return nil, err
	}
	rc.jobText = text
	rc.job = types.JobSource{Source: meta.Source, Hash: meta.Hash}
	rc.progress(StepIngestJob, fmt.Sprintf("loaded job description (%d chars)", len(text)), meta)

	reqs, err := parsing.ExtractRequirements(text, parsing.ExtractOptions{MaxYearsOverride: opts.MaxYears})
	if err != nil {
		return nil, fmt.Errorf("requirement extraction failed: %w", err)
	}
	rc.reqs = reqs
	rc.progress(StepRequirements, fmt.Sprintf("%d skills, %d frameworks, years rule %s",
		len(reqs.RequiredSkills), len(reqs.RequiredFrameworks), reqs.YearsRule), reqs)

	return rc, nil
}

func loadJob(ctx context.Context, opts *RunOptions, logger *slog.Logger) (string, *ingestion.Metadata, error) {
	switch {
	case opts.JobText != "":
		cleaned := ingestion.CleanText(opts.JobText)
		return cleaned, ingestion.NewMetadata(cleaned, "inline"), nil
	case opts.JobPath != "":
		text, meta, err := ingestion.IngestFromFile(ctx, opts.JobPath)
		if err != nil {
			return "", nil, fmt.Errorf("job ingestion from file failed: %w", err)
		}
		return text, meta, nil
	case opts.JobURL != "":
		text, meta, err := ingestion.IngestFromURL(ctx, opts.JobURL, ingestion.Options{
			UseBrowser: opts.UseBrowser,
			Logger:     logger.With("component", "ingestion"),
		})
		if err != nil {
			return "", nil, fmt.Errorf("job ingestion from URL failed: %w", err)
		}
		return text, meta, nil
	default:
		return "", nil, ErrNoJob
	}
}

// retrieve returns the usable documents and records every failure. The
// returned cleanup removes any temporary download directory.
func (rc *runContext) retrieve(ctx context.Context, report *types.Report) ([]retrieval.Document, func(), error) {
	opts := rc.opts
	cleanup := func() {}

	var results []retrieval.Result
	switch {
	case opts.ResumesDir != "":
		v := opts.Retrieval.Validator
		if v.MaxSize == 0 && len(v.Signatures) == 0 {
			v = retrieval.DefaultValidator()
		}
		local, err := retrieval.LoadLocal(opts.ResumesDir, v)
		if err != nil {
			return nil, cleanup, err
		}
		results = local
	case len(opts.Locations) > 0:
		r := opts.Retriever
		if r == nil {
			ropts := opts.Retrieval
			ropts.OutDir = opts.DownloadDir
			if ropts.OutDir == "" {
				tmp, err := os.MkdirTemp("", "resume-ranker-")
				if err != nil {
					return nil, cleanup, fmt.Errorf("failed to create download directory: %w", err)
				}
				cleanup = func() { _ = os.RemoveAll(tmp) }
				ropts.OutDir = tmp
			}
			r = retrieval.New(ropts)
		}
		remote, err := r.Retrieve(ctx, opts.Locations)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		results = remote
	default:
		return nil, cleanup, ErrNoResumes
	}

	docs := make([]retrieval.Document, 0, len(results))
	for _, res := range results {
		report.Counters.Scanned++
		if res.Err != nil {
			report.Counters.DownloadFailed++
			report.DownloadErrors = append(report.DownloadErrors, types.DownloadFailure{
				Location: res.Err.Location,
				Attempts: res.Err.Attempts,
				Cause:    errString(res.Err.Cause),
			})
			rc.observeDownload("failed", res.Err.Attempts)
			rc.logger.Warn("document unavailable", "location", res.Location, "attempts", res.Err.Attempts, "error", res.Err.Cause)
			continue
		}
		rc.observeDownload("ok", res.Document.Attempts)
		docs = append(docs, *res.Document)
	}

	if err := ctx.Err(); err != nil {
		cleanup()
		return nil, func() {}, err
	}
	rc.progress(StepRetrieve, fmt.Sprintf("%d documents available, %d failed", len(docs), report.Counters.DownloadFailed), nil)
	return docs, cleanup, nil
}

func (rc *runContext) observeDownload(outcome string, attempts int) {
	if m := rc.opts.Metrics; m != nil {
		m.DownloadsTotal.WithLabelValues(outcome).Inc()
		m.DownloadAttempts.Observe(float64(attempts))
	}
}

func (rc *runContext) parse(ctx context.Context, docs []retrieval.Document, report *types.Report) []types.CandidateRecord {
	parser := extraction.NewParser(rc.jobText, rc.opts.Similarity)
	parser.Logger = rc.logger.With("component", "parser")
	if rc.opts.Now != nil {
		parser.Now = rc.opts.Now
	}
	if rc.opts.Extractor != nil {
		parser.Text = rc.opts.Extractor
	}

	candidates := make([]types.CandidateRecord, 0, len(docs))
	for _, doc := range docs {
		src := extraction.Source{ID: filepath.Base(doc.Path), Path: doc.Path, Order: doc.Order}
		record, warnings := parser.Parse(ctx, src)
		for _, w := range warnings {
			report.ParseWarnings = append(report.ParseWarnings, types.Issue{SourceID: src.ID, Reason: w})
		}
		candidates = append(candidates, record)
	}
	rc.progress(StepParse, fmt.Sprintf("parsed %d candidates", len(candidates)), nil)
	return candidates
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
