package ranking

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/types"
)

func scored(id string, order int, composite float64, experience int) types.ScoredCandidate {
	return types.ScoredCandidate{
		Candidate: types.CandidateRecord{SourceID: id, Order: order},
		Breakdown: types.ScoreBreakdown{Composite: composite, ExperienceScore: experience},
	}
}

func ids(entries []types.RankedEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Candidate.SourceID
	}
	return out
}

func TestRank_OrdersByComposite(t *testing.T) {
	pool := []types.ScoredCandidate{
		scored("low", 0, 3.1, 3),
		scored("high", 1, 9.0, 9),
		scored("mid", 2, 6.5, 6),
	}

	ranked := Rank(pool, nil, 10)

	assert.Equal(t, []string{"high", "mid", "low"}, ids(ranked))
	for i, e := range ranked {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRank_TieBreaks(t *testing.T) {
	t.Run("experience score", func(t *testing.T) {
		pool := []types.ScoredCandidate{
			scored("B", 0, 8.40, 7),
			scored("A", 1, 8.40, 9),
		}
		assert.Equal(t, []string{"A", "B"}, ids(Rank(pool, nil, 10)))
	})

	t.Run("ingestion order", func(t *testing.T) {
		pool := []types.ScoredCandidate{
			scored("second", 1, 7.0, 7),
			scored("first", 0, 7.0, 7),
		}
		assert.Equal(t, []string{"first", "second"}, ids(Rank(pool, nil, 10)))
	})

	t.Run("identical keys keep input order", func(t *testing.T) {
		pool := []types.ScoredCandidate{
			scored("p", 0, 5.0, 5),
			scored("q", 0, 5.0, 5),
		}
		assert.Equal(t, []string{"p", "q"}, ids(Rank(pool, nil, 10)))
	})
}

func TestRank_SkipsExcluded(t *testing.T) {
	pool := []types.ScoredCandidate{
		scored("a", 0, 9.0, 9),
		scored("b", 1, 8.0, 8),
	}

	ranked := Rank(pool, map[string]bool{"a": true}, 10)

	assert.Equal(t, []string{"b"}, ids(ranked))
	assert.Equal(t, 1, ranked[0].Rank)
}

func TestRank_TopN(t *testing.T) {
	var pool []types.ScoredCandidate
	for i := 0; i < 15; i++ {
		pool = append(pool, scored(string(rune('a'+i)), i, float64(i), 5))
	}

	assert.Len(t, Rank(pool, nil, 3), 3)
	assert.Len(t, Rank(pool, nil, 0), DefaultTopN)
	assert.Len(t, Rank(pool[:2], nil, 5), 2)
	assert.Empty(t, Rank(nil, nil, 5))
}

func TestRank_Idempotent(t *testing.T) {
	pool := []types.ScoredCandidate{
		scored("a", 0, 4.0, 4),
		scored("b", 1, 8.4, 7),
		scored("c", 2, 8.4, 9),
		scored("d", 3, 6.0, 6),
	}

	first := Rank(pool, nil, 10)
	again := make([]types.ScoredCandidate, len(first))
	for i, e := range first {
		again[i] = types.ScoredCandidate{Candidate: e.Candidate, Breakdown: e.Breakdown}
	}
	second := Rank(again, nil, 10)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, "a", pool[0].Candidate.SourceID, "input must not be reordered")
}

func TestRank_CompositeNonIncreasing(t *testing.T) {
	reqs := sampleReqs()
	candidates := []types.CandidateRecord{
		{SourceID: "a", Order: 0, Skills: []string{"Go"}},
		{SourceID: "b", Order: 1, Skills: []string{"Go", "Python", "SQL"}, Awards: []string{"Best Paper"}},
		{SourceID: "c", Order: 2, Frameworks: []string{"Docker"}, ExternalActivityScore: 7},
		{SourceID: "d", Order: 3, SemanticSimilarity: types.FloatPtr(0.9)},
	}

	ranked := Rank(ScoreAll(candidates, reqs), nil, 10)
	require.Len(t, ranked, 4)

	assert.True(t, sort.SliceIsSorted(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Composite > ranked[j].Breakdown.Composite
	}))
}
