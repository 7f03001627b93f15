package retrieval

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadLocal lists documents already on disk in dir (sorted by name) and
// validates PDFs the same way downloads are validated. Text documents are
// accepted without a signature check.
func LoadLocal(dir string, v Validator) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt", ".md":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for i, name := range names {
		p := filepath.Join(dir, name)
		check := v
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			check.Signatures = nil
		}
		size, err := check.ValidateFile(p)
		if err != nil {
			results = append(results, Result{Location: p, Err: &DownloadError{Location: p, Attempts: 1, Cause: err}})
			continue
		}
		results = append(results, Result{
			Location: p,
			Document: &Document{Location: p, Path: p, Size: size, Attempts: 1, Order: i},
		})
	}
	return results, nil
}
