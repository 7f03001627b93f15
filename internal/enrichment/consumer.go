package enrichment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Outcome labels for Observer callbacks.
const (
	OutcomeOK       = "ok"
	OutcomeNoHandle = "no_handle"
	OutcomeError    = "error"
	OutcomeNoSource = "no_provider"
)

// Reason strings recorded on degraded candidates.
const (
	ReasonNoHandle   = "no external handle found"
	ReasonNoProvider = "no enrichment source configured"
)

// Consumer applies provider data to candidates.
type Consumer struct {
	Provider Provider
	// Observer, when set, receives one outcome per candidate
	Observer func(outcome string)
	Logger   *slog.Logger
}

// NewConsumer returns a Consumer for p (which may be nil).
func NewConsumer(p Provider) *Consumer {
	return &Consumer{Provider: p, Logger: slog.Default().With("component", "enrichment")}
}

// Enrich returns enriched copies of candidates plus one Issue for every
// candidate that fell back to the degraded default. It never fails the run.
func (c *Consumer) Enrich(ctx context.Context, candidates []types.CandidateRecord, reqs *types.RequirementSet) ([]types.CandidateRecord, []types.Issue) {
	out := make([]types.CandidateRecord, 0, len(candidates))
	var issues []types.Issue

	var required []string
	if reqs != nil {
		required = reqs.RequiredSkills
	}

	for _, cand := range candidates {
		rec := cand.Clone()
		rec.ExternalActivityScore = DefaultActivityScore
		rec.ExternalLanguageOverlap = 0

		outcome, reason := c.apply(ctx, &rec, required)
		if reason != "" {
			rec.EnrichmentNote = reason
			issues = append(issues, types.Issue{SourceID: rec.SourceID, Reason: reason})
		}
		if c.Observer != nil {
			c.Observer(outcome)
		}
		out = append(out, rec)
	}
	return out, issues
}

func (c *Consumer) apply(ctx context.Context, rec *types.CandidateRecord, required []string) (string, string) {
	if rec.ExternalHandle == nil || *rec.ExternalHandle == "" {
		return OutcomeNoHandle, ReasonNoHandle
	}
	if c.Provider == nil {
		return OutcomeNoSource, ReasonNoProvider
	}

	handle := *rec.ExternalHandle
	activity, err := c.Provider.Lookup(ctx, handle)
	if err == nil && activity == nil {
		err = fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	if err != nil {
		c.logger().Warn("enrichment lookup failed", "source", rec.SourceID, "handle", handle, "error", err)
		return OutcomeError, fmt.Sprintf("external source unavailable for %s: %v", handle, err)
	}

	rec.ExternalActivityScore = ActivityScore(activity.ActivityCount)
	rec.ExternalLanguageOverlap = LanguageOverlap(activity.Languages, required)
	return OutcomeOK, ""
}

func (c *Consumer) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
