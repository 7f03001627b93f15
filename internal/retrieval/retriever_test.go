package retrieval

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	f.sleeps = append(f.sleeps, d)
	f.mu.Unlock()
	return ctx.Err()
}

func (f *fakeClock) recorded() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.sleeps...)
}

const pdfBody = "%PDF-1.7\nfake body"

func newTestRetriever(t *testing.T, clock Clock) *Retriever {
	t.Helper()
	return New(Options{OutDir: t.TempDir()}).WithClock(clock)
}

func TestRetrieve_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pdfBody))
	}))
	defer server.Close()

	r := newTestRetriever(t, &fakeClock{})
	results, err := r.Retrieve(context.Background(), []string{server.URL + "/cv/jane.pdf"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Nil(t, results[0].Err)

	doc := results[0].Document
	assert.Equal(t, "jane.pdf", filepath.Base(doc.Path))
	assert.Equal(t, int64(len(pdfBody)), doc.Size)
	assert.Equal(t, 1, doc.Attempts)

	data, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, pdfBody, string(data))
}

func TestRetrieve_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(pdfBody))
	}))
	defer server.Close()

	clock := &fakeClock{}
	results, err := newTestRetriever(t, clock).Retrieve(context.Background(), []string{server.URL + "/a.pdf"})
	require.NoError(t, err)

	require.NotNil(t, results[0].Document)
	assert.Equal(t, 3, results[0].Document.Attempts)
	assert.Equal(t, []time.Duration{1500 * time.Millisecond, 2250 * time.Millisecond}, clock.recorded())
}

func TestRetrieve_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	results, err := newTestRetriever(t, &fakeClock{}).Retrieve(context.Background(), []string{server.URL + "/bad.pdf"})
	require.NoError(t, err)

	require.Nil(t, results[0].Document)
	require.NotNil(t, results[0].Err)
	assert.Equal(t, 3, results[0].Err.Attempts)
	assert.Equal(t, int32(3), calls.Load())

	var statusErr *StatusError
	require.True(t, errors.As(results[0].Err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestRetrieve_BadSignatureIsDownloadFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("<html>not a pdf</html>"))
	}))
	defer server.Close()

	outDir := t.TempDir()
	r := New(Options{OutDir: outDir}).WithClock(&fakeClock{})
	results, err := r.Retrieve(context.Background(), []string{server.URL + "/x.pdf"})
	require.NoError(t, err)

	require.NotNil(t, results[0].Err)
	assert.True(t, errors.Is(results[0].Err, ErrBadSignature))
	assert.Equal(t, int32(1), calls.Load(), "validation failures are not retried")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial files are removed")
}

func TestRetrieve_SizeCeiling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pdfBody + strings.Repeat("x", 100)))
	}))
	defer server.Close()

	r := New(Options{
		OutDir:    t.TempDir(),
		Validator: Validator{Signatures: [][]byte{PDFSignature}, MaxSize: 32},
	}).WithClock(&fakeClock{})
	results, err := r.Retrieve(context.Background(), []string{server.URL + "/big.pdf"})
	require.NoError(t, err)

	require.NotNil(t, results[0].Err)
	assert.True(t, errors.Is(results[0].Err, ErrTooLarge))
}

func TestRetrieve_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	results, err := newTestRetriever(t, &fakeClock{}).Retrieve(context.Background(), []string{server.URL + "/gone.pdf"})
	require.NoError(t, err)

	require.NotNil(t, results[0].Err)
	assert.Equal(t, 1, results[0].Err.Attempts)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRetrieve_InvalidLocation(t *testing.T) {
	results, err := newTestRetriever(t, &fakeClock{}).Retrieve(context.Background(), []string{"ftp://example.com/cv.pdf"})
	require.NoError(t, err)

	require.NotNil(t, results[0].Err)
	assert.True(t, errors.Is(results[0].Err, ErrInvalidLocation))
}

func TestRetrieve_OrderAndIsolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "fail") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if strings.Contains(r.URL.Path, "slow") {
			time.Sleep(20 * time.Millisecond)
		}
		_, _ = w.Write([]byte(pdfBody))
	}))
	defer server.Close()

	locations := []string{
		server.URL + "/slow.pdf",
		server.URL + "/fail.pdf",
		server.URL + "/fast.pdf",
	}
	results, err := newTestRetriever(t, &fakeClock{}).Retrieve(context.Background(), locations)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.Equal(t, locations[i], res.Location)
	}
	require.NotNil(t, results[0].Document)
	assert.Equal(t, 0, results[0].Document.Order)
	require.NotNil(t, results[1].Err)
	require.NotNil(t, results[2].Document)
	assert.Equal(t, 2, results[2].Document.Order)
}

func TestRetrieve_BoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		_, _ = w.Write([]byte(pdfBody))
	}))
	defer server.Close()

	locations := make([]string, 12)
	for i := range locations {
		locations[i] = server.URL + "/cv.pdf"
	}
	r := New(Options{OutDir: t.TempDir(), MaxConcurrent: 2}).WithClock(&fakeClock{})
	results, err := r.Retrieve(context.Background(), locations)
	require.NoError(t, err)

	for _, res := range results {
		require.NotNil(t, res.Document)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		location string
		index    int
		expected string
	}{
		{"plain pdf", "https://a.com/files/jane.pdf", 0, "jane.pdf"},
		{"escaped spaces", "https://a.com/John%20Smith%20CV.pdf", 1, "John_Smith_CV.pdf"},
		{"no extension", "https://a.com/download?id=4", 7, "resume_007.pdf"},
		{"root path", "https://a.com/", 12, "resume_012.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.location, tt.index))
		})
	}
}

func TestUniqueFilenames(t *testing.T) {
	names := uniqueFilenames([]string{
		"https://a.com/cv.pdf",
		"https://b.com/cv.pdf",
		"https://c.com/x",
	})
	assert.Equal(t, []string{"cv.pdf", "cv_1.pdf", "resume_002.pdf"}, names)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 3, p.MaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, p.Backoff(1))
	assert.Equal(t, 2250*time.Millisecond, p.Backoff(2))
}
