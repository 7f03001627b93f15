// Package ingestion loads a job description from a file or a posting URL and
// normalizes it to clean text with provenance metadata.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-ranker/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// Options tunes URL ingestion.
type Options struct {
	// UseBrowser enables the headless browser fallback for SPA postings
	UseBrowser bool
	Client     *fetch.Client
	Renderer   fetch.Renderer
	Logger     *slog.Logger
}

// IngestFromURL fetches a job posting, extracts its main text with
// platform-specific selectors, and returns the cleaned text with metadata.
// When UseBrowser is set and the HTTP text is too short, the page is
// re-rendered in a browser; a browser failure keeps the HTTP text.
func IngestFromURL(ctx context.Context, rawURL string, opts Options) (string, *Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := opts.Client
	if client == nil {
		client = fetch.NewClient(0)
	}

	platform := fetch.DetectPlatform(rawURL)
	logger.Debug("ingesting job posting", "url", rawURL, "platform", platform)

	page, err := client.Get(ctx, rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	content, noise := fetch.Selectors(rawURL)
	text, err := fetch.ExtractMainText(page.HTML, content, noise...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.Debug("extracted posting text", "chars", len(text))

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		renderer := opts.Renderer
		if renderer == nil {
			renderer = fetch.NewChromeRenderer()
		}
		if rendered, err := renderWith(ctx, renderer, rawURL, content, noise); err != nil {
			logger.Warn("browser fallback failed, keeping HTTP content", "url", rawURL, "error", err)
		} else {
			text = rendered
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, rawURL)
	}

	meta := NewMetadata(cleaned, rawURL)
	meta.Platform = string(platform)
	return cleaned, meta, nil
}

func renderWith(ctx context.Context, r fetch.Renderer, rawURL string, content, noise []string) (string, error) {
	html, err := r.Render(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return fetch.ExtractMainText(html, content, noise...)
}
