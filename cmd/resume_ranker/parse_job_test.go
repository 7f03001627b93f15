package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/types"
)

func TestExecuteParseJob(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(job, []byte("Data Engineer\n5+ years of experience with Python, SQL and Kafka."), 0644))

	t.Run("stdout", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, executeParseJob(context.Background(), job, nil, "", &out))

		var reqs types.RequirementSet
		require.NoError(t, json.Unmarshal(out.Bytes(), &reqs))
		assert.Contains(t, reqs.RequiredSkills, "Python")
		assert.Contains(t, reqs.RequiredSkills, "SQL")
		require.NotNil(t, reqs.MinYears)
		assert.Equal(t, 5, *reqs.MinYears)
		assert.Equal(t, types.YearsRulePlus, reqs.YearsRule)
	})

	t.Run("override to file", func(t *testing.T) {
		outFile := filepath.Join(dir, "reqs.json")
		var out bytes.Buffer
		require.NoError(t, executeParseJob(context.Background(), job, types.IntPtr(7), outFile, &out))
		assert.Contains(t, out.String(), "Output: "+outFile)

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		var reqs types.RequirementSet
		require.NoError(t, json.Unmarshal(data, &reqs))
		require.NotNil(t, reqs.MaxYears)
		assert.Equal(t, 7, *reqs.MaxYears)
		assert.Equal(t, types.YearsRuleOverride, reqs.YearsRule)
	})

	t.Run("missing file", func(t *testing.T) {
		err := executeParseJob(context.Background(), filepath.Join(dir, "nope.txt"), nil, "", &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read job description")
	})
}
