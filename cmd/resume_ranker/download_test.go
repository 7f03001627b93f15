package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/retrieval"
)

func TestExecuteDownload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.pdf":
			_, _ = io.WriteString(w, "%PDF-1.7\nbody")
		case "/notpdf.pdf":
			_, _ = io.WriteString(w, "<html>login</html>")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	outDir := t.TempDir()
	r := retrieval.New(retrieval.Options{OutDir: outDir, Retry: retrieval.RetryPolicy{MaxAttempts: 1}})

	t.Run("all succeed", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, executeDownload(context.Background(), r, []string{ts.URL + "/ok.pdf"}, &out))
		assert.Contains(t, out.String(), "OK   "+ts.URL+"/ok.pdf")
		assert.FileExists(t, filepath.Join(outDir, "ok.pdf"))
	})

	t.Run("any failure fails the command", func(t *testing.T) {
		var out bytes.Buffer
		err := executeDownload(context.Background(), r,
			[]string{ts.URL + "/ok.pdf", ts.URL + "/missing.pdf", ts.URL + "/notpdf.pdf"}, &out)
		require.Error(t, err)
		assert.Equal(t, "2 of 3 downloads failed", err.Error())
		assert.Contains(t, out.String(), "FAIL "+ts.URL+"/missing.pdf (1 attempts)")
		assert.Contains(t, out.String(), "FAIL "+ts.URL+"/notpdf.pdf")
		assert.NoFileExists(t, filepath.Join(outDir, "notpdf.pdf"))
	})
}

func TestDownloadCommand_RequiresOutDir(t *testing.T) {
	flag := downloadCmd.Flags().Lookup("out-dir")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])
}
