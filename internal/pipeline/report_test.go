package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
)

func TestWriteReport(t *testing.T) {
	report, err := Run(context.Background(), RunOptions{
		JobText:    jobText,
		ResumesDir: writeResumes(t),
		Provider:   adaProvider(),
		Now:        fixedNow,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateReport(data))

	var decoded types.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Len(t, decoded.Ranked, 2)
}

func TestWriteReport_BadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := WriteReport(filepath.Join(blocker, "report.json"), &types.Report{RunID: "x"})
	assert.Error(t, err)
}
