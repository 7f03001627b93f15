// Package extraction turns retrieved documents into CandidateRecords: raw text
// via a primary/fallback extractor chain, then rule-based field extraction.
package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when an extractor ran but produced no usable text.
var ErrNoText = errors.New("no text extracted")

// TextExtractor pulls plain text out of a document on disk.
type TextExtractor interface {
	Name() string
	ExtractText(ctx context.Context, path string) (string, error)
}

// PdftotextExtractor shells out to poppler's pdftotext in layout mode.
type PdftotextExtractor struct {
	// Binary defaults to "pdftotext" on PATH
	Binary string
}

// Name implements TextExtractor.
func (p PdftotextExtractor) Name() string { return "pdftotext" }

// ExtractText implements TextExtractor.
func (p PdftotextExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	bin := p.Binary
	if bin == "" {
		bin = "pdftotext"
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-layout", path, "-")
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed for %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// NativePDFExtractor reads the PDF text layer in-process.
type NativePDFExtractor struct{}

// Name implements TextExtractor.
func (NativePDFExtractor) Name() string { return "native-pdf" }

// ExtractText implements TextExtractor.
func (NativePDFExtractor) ExtractText(_ context.Context, path string) (text string, err error) {
	// the reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic for %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text %s: %w", path, err)
	}
	text = strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// PlainTextExtractor reads .txt and .md documents as-is.
type PlainTextExtractor struct{}

// Name implements TextExtractor.
func (PlainTextExtractor) Name() string { return "plain-text" }

// ExtractText implements TextExtractor.
func (PlainTextExtractor) ExtractText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// Chain tries the primary extractor and falls back when it errors or yields no text.
type Chain struct {
	Primary  TextExtractor
	Fallback TextExtractor
	Plain    TextExtractor
}

// DefaultChain is pdftotext with the native reader as fallback.
func DefaultChain() *Chain {
	return &Chain{
		Primary:  PdftotextExtractor{},
		Fallback: NativePDFExtractor{},
		Plain:    PlainTextExtractor{},
	}
}

// ExtractText returns the text and the name of the extractor that produced it.
// Errors from every strategy tried are joined when none succeeds.
func (c *Chain) ExtractText(ctx context.Context, path string) (string, string, error) {
	if IsPlainText(path) {
		plain := c.Plain
		if plain == nil {
			plain = PlainTextExtractor{}
		}
		text, err := plain.ExtractText(ctx, path)
		return text, plain.Name(), err
	}

	var errs []error
	for _, ex := range []TextExtractor{c.Primary, c.Fallback} {
		if ex == nil {
			continue
		}
		text, err := ex.ExtractText(ctx, path)
		if err == nil && text != "" {
			return text, ex.Name(), nil
		}
		if err == nil {
			err = ErrNoText
		}
		errs = append(errs, fmt.Errorf("%s: %w", ex.Name(), err))
	}
	if len(errs) == 0 {
		return "", "", ErrNoText
	}
	return "", "", errors.Join(errs...)
}

// IsPlainText reports whether path is read without PDF extraction.
func IsPlainText(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}
