package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
)

// MarshalReport renders the report as indented JSON.
func MarshalReport(report *types.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// WriteReport writes the report to path as indented JSON. Schema violations
// are logged as warnings; the file is written regardless.
func WriteReport(path string, report *types.Report) error {
	data, err := MarshalReport(report)
	if err != nil {
		return err
	}

	if err := schemas.ValidateReport(data); err != nil {
		slog.Warn("report does not match schema", "path", path, "error", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
