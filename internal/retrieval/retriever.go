// Package retrieval downloads candidate documents concurrently with a bounded
// retry policy and content validation.
package retrieval

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ranker/internal/fetch"
)

// DefaultMaxConcurrent is the number of simultaneous transfers.
const DefaultMaxConcurrent = 5

// Options configures a Retriever.
type Options struct {
	OutDir        string
	MaxConcurrent int
	Retry         RetryPolicy
	Validator     Validator
	Timeout       time.Duration
	UserAgent     string
}

// Document is a validated local copy of a source.
type Document struct {
	Location string
	Path     string
	Size     int64
	Attempts int
	Order    int
}

// Result holds exactly one of Document or Err.
type Result struct {
	Location string
	Document *Document
	Err      *DownloadError
}

// Retriever fetches remote documents into OutDir.
type Retriever struct {
	opts   Options
	client *http.Client
	clock  Clock
	logger *slog.Logger
}

// New creates a Retriever. Zero-valued options take their defaults.
func New(opts Options) *Retriever {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	opts.Retry = opts.Retry.normalize()
	if opts.Validator.MaxSize == 0 && len(opts.Validator.Signatures) == 0 {
		opts.Validator = DefaultValidator()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = fetch.DefaultUserAgent
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	return &Retriever{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		clock:  realClock{},
		logger: slog.Default().With("component", "retriever"),
	}
}

// WithClock replaces the clock used between attempts.
func (r *Retriever) WithClock(c Clock) *Retriever {
	r.clock = c
	return r
}

// Retrieve downloads every location and returns one Result per location, in
// input order. Each transfer writes only its own slot; a failing source never
// affects the others.
func (r *Retriever) Retrieve(ctx context.Context, locations []string) ([]Result, error) {
	if err := os.MkdirAll(r.opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	results := make([]Result, len(locations))
	names := uniqueFilenames(locations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MaxConcurrent)
	for i, loc := range locations {
		g.Go(func() error {
			dest := filepath.Join(r.opts.OutDir, names[i])
			doc, err := r.fetchWithRetry(gctx, loc, dest)
			if err != nil {
				results[i] = Result{Location: loc, Err: err}
				return nil
			}
			doc.Order = i
			results[i] = Result{Location: loc, Document: doc}
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (r *Retriever) fetchWithRetry(ctx context.Context, location, dest string) (*Document, *DownloadError) {
	policy := r.opts.Retry
	var lastErr error
	attempt := 0
	for attempt < policy.MaxAttempts {
		attempt++
		size, err := r.download(ctx, location, dest)
		if err == nil {
			r.logger.Info("downloaded", "location", location, "bytes", size, "attempts", attempt)
			return &Document{Location: location, Path: dest, Size: size, Attempts: attempt}, nil
		}
		lastErr = err
		_ = os.Remove(dest)

		if isPermanent(err) || ctx.Err() != nil || attempt == policy.MaxAttempts {
			break
		}
		wait := policy.Backoff(attempt)
		r.logger.Warn("download attempt failed, retrying",
			"location", location, "attempt", attempt, "max_attempts", policy.MaxAttempts,
			"error", err, "next_delay", wait)
		if err := r.clock.Sleep(ctx, wait); err != nil {
			lastErr = fmt.Errorf("retry aborted during backoff: %w", err)
			break
		}
	}

	var p *permanentError
	if errors.As(lastErr, &p) {
		lastErr = p.err
	}
	r.logger.Error("download failed", "location", location, "attempts", attempt, "error", lastErr)
	return nil, &DownloadError{Location: location, Attempts: attempt, Cause: lastErr}
}

// download performs one attempt, streaming into a temporary file that is
// renamed into place only after validation passes.
func (r *Retriever) download(ctx context.Context, location, dest string) (int64, error) {
	u, err := url.Parse(location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return 0, permanent(fmt.Errorf("%w: %s", ErrInvalidLocation, location))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return 0, permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", r.opts.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 &&
			resp.StatusCode != http.StatusRequestTimeout && resp.StatusCode != http.StatusTooManyRequests {
			return 0, permanent(statusErr)
		}
		return 0, statusErr
	}

	v := r.opts.Validator
	if resp.ContentLength > 0 {
		if err := v.CheckSize(resp.ContentLength); err != nil {
			return 0, permanent(err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".part-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	body := bufio.NewReader(resp.Body)
	if n := v.maxSignatureLen(); n > 0 {
		head, _ := body.Peek(n)
		if err := v.CheckSignature(head); err != nil {
			return 0, permanent(err)
		}
	}

	limit := v.MaxSize
	var src io.Reader = body
	if limit > 0 {
		src = io.LimitReader(body, limit+1)
	}
	written, err := io.Copy(tmp, src)
	if err != nil {
		return written, fmt.Errorf("failed to read body: %w", err)
	}
	if err := v.CheckSize(written); err != nil {
		return written, permanent(err)
	}
	if err := tmp.Close(); err != nil {
		return written, fmt.Errorf("failed to flush file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return written, fmt.Errorf("failed to move file into place: %w", err)
	}
	committed = true
	return written, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w.\-]`)

// SanitizeFilename derives a filesystem-safe name from the URL path, falling
// back to resume_NNN.pdf when there is no usable .pdf basename.
func SanitizeFilename(location string, index int) string {
	base := ""
	if u, err := url.Parse(location); err == nil {
		if p, err := url.PathUnescape(u.Path); err == nil {
			base = path.Base(p)
		}
	}
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == "_" || !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		base = fmt.Sprintf("resume_%03d.pdf", index)
	}
	return base
}

func uniqueFilenames(locations []string) []string {
	seen := make(map[string]bool, len(locations))
	names := make([]string, len(locations))
	for i, loc := range locations {
		name := SanitizeFilename(loc, i)
		for seen[name] {
			ext := filepath.Ext(name)
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), i, ext)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}
