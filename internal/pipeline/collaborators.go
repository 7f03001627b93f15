package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonathan/resume-ranker/internal/enrichment"
	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/llm"
)

// CollaboratorOptions selects the optional external services of a run.
type CollaboratorOptions struct {
	// APIKey enables Gemini embeddings for semantic similarity
	APIKey string
	// GitHubToken authenticates enrichment lookups
	GitHubToken string
	// RedisAddr enables the shared enrichment cache
	RedisAddr string
	CacheTTL  time.Duration
	// Offline disables external enrichment entirely
	Offline bool
	Logger  *slog.Logger
}

// Collaborators are the long-lived external services shared by runs.
type Collaborators struct {
	Provider   enrichment.Provider
	Similarity extraction.SimilarityScorer
	closers    []func() error
}

// NewCollaborators builds the enrichment provider and similarity scorer. An
// unreachable cache or model is logged and skipped; runs degrade instead of
// failing.
func NewCollaborators(ctx context.Context, opts CollaboratorOptions) *Collaborators {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Collaborators{}

	if !opts.Offline {
		var provider enrichment.Provider = enrichment.NewGitHubProvider(ctx, opts.GitHubToken)
		if opts.RedisAddr != "" {
			store, err := enrichment.NewRedisStore(opts.RedisAddr, "", 0)
			if err != nil {
				logger.Warn("enrichment cache disabled", "addr", opts.RedisAddr, "error", err)
			} else {
				provider = enrichment.NewCachedProvider(provider, store, opts.CacheTTL)
				c.closers = append(c.closers, store.Close)
			}
		}
		c.Provider = provider
	}

	if opts.APIKey != "" {
		cfg := llm.DefaultConfig()
		client, err := llm.NewGeminiClient(ctx, cfg, opts.APIKey)
		if err != nil {
			logger.Warn("semantic similarity disabled", "error", err)
		} else {
			c.Similarity = llm.NewSimilarityScorer(client, cfg.MaxInputChars)
			c.closers = append(c.closers, client.Close)
		}
	}
	return c
}

// Apply sets the collaborators on opts without overriding explicit values.
func (c *Collaborators) Apply(opts *RunOptions) {
	if opts.Provider == nil {
		opts.Provider = c.Provider
	}
	if opts.Similarity == nil {
		opts.Similarity = c.Similarity
	}
}

// Close releases every underlying connection.
func (c *Collaborators) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
