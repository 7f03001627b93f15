package ingestion

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/resume-ranker/internal/extraction"
)

var (
	innerSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullets, and paragraph breaks. Runs of blank lines collapse to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace but keeps list indentation.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := ""
	if isBulletLine(trimmed) {
		indent = strings.Repeat(" ", len(line)-len(trimmed))
	}
	return indent + innerSpaceRe.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	for _, prefix := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// IngestFromFile reads a job description from disk. PDFs go through the
// same text extraction chain as resumes; anything else is read as text.
func IngestFromFile(ctx context.Context, path string) (string, *Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	var raw string
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		text, _, err := extraction.DefaultChain().ExtractText(ctx, path)
		if err != nil {
			return "", nil, fmt.Errorf("failed to extract job description: %w", err)
		}
		raw = text
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read file: %w", err)
		}
		raw = string(data)
	}

	cleaned := CleanText(raw)
	return cleaned, NewMetadata(cleaned, path), nil
}
