package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/server"
)

var (
	servePort       int
	serveUseBrowser bool
	serveNoEnrich   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing POST /v1/rank, POST /v1/rank/stream, GET /health and GET /metrics.
Bearer authentication is enforced when JWT_SECRET is set; requests are rate limited per client IP.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA job postings (requires Chrome)")
	serveCmd.Flags().BoolVar(&serveNoEnrich, "no-enrich", false, "Skip external activity lookups")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	srv, err := newServer(context.Background(), servePort, serveUseBrowser, serveNoEnrich)
	if err != nil {
		return err
	}
	return srv.Start()
}

func newServer(ctx context.Context, port int, useBrowser, offline bool) (*server.Server, error) {
	var env config.Config
	env.ApplyEnv()

	var jwtCfg *config.JWTConfig
	if config.JWTEnabled() {
		c, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		jwtCfg = c
	} else {
		slog.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	rateLimit, err := config.NewRateLimitConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit config: %w", err)
	}

	collaborators := pipeline.NewCollaborators(ctx, pipeline.CollaboratorOptions{
		APIKey:      env.APIKey,
		GitHubToken: env.GitHubToken,
		RedisAddr:   env.RedisAddr,
		Offline:     offline,
		Logger:      slog.Default(),
	})

	srv, err := server.New(server.Config{
		Port:          port,
		UseBrowser:    useBrowser,
		Collaborators: collaborators,
		RateLimit:     rateLimit,
		JWT:           jwtCfg,
		Logger:        slog.Default(),
	})
	if err != nil {
		_ = collaborators.Close()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, nil
}
