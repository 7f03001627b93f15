package llm

import (
	"context"
	"errors"
	"math"
	"sync"
)

// SimilarityScorer compares texts by cosine similarity of their embeddings.
// The job embedding is computed once and reused.
type SimilarityScorer struct {
	embedder Embedder
	maxChars int

	mu       sync.Mutex
	jobText  string
	jobEmbed []float32
}

// NewSimilarityScorer wraps an Embedder; maxChars <= 0 disables truncation.
func NewSimilarityScorer(e Embedder, maxChars int) *SimilarityScorer {
	return &SimilarityScorer{embedder: e, maxChars: maxChars}
}

// Similarity returns a value in [0,1] rounded to 4 decimals.
func (s *SimilarityScorer) Similarity(ctx context.Context, jobText, resumeText string) (float64, error) {
	jobVec, err := s.jobVector(ctx, jobText)
	if err != nil {
		return 0, err
	}
	resVec, err := s.embedder.Embed(ctx, truncate(resumeText, s.maxChars))
	if err != nil {
		return 0, err
	}
	sim, err := Cosine(jobVec, resVec)
	if err != nil {
		return 0, err
	}
	return math.Round(clamp01(sim)*10000) / 10000, nil
}

func (s *SimilarityScorer) jobVector(ctx context.Context, jobText string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobEmbed != nil && s.jobText == jobText {
		return s.jobEmbed, nil
	}
	vec, err := s.embedder.Embed(ctx, truncate(jobText, s.maxChars))
	if err != nil {
		return nil, err
	}
	s.jobText, s.jobEmbed = jobText, vec
	return vec, nil
}

// Cosine returns the cosine similarity of two equal-length vectors.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.New("embedding dimensions differ")
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, errors.New("zero-length embedding")
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
