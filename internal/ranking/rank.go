package ranking

import (
	"sort"

	"github.com/jonathan/resume-ranker/internal/types"
)

// DefaultTopN is the result size when none is requested.
const DefaultTopN = 10

// Rank orders scored candidates by composite descending, then experience
// score descending, then ingestion order. Excluded source IDs are skipped.
// Fully identical keys keep their input order. The input is not modified.
func Rank(scored []types.ScoredCandidate, excluded map[string]bool, topN int) []types.RankedEntry {
	if topN <= 0 {
		topN = DefaultTopN
	}

	pool := make([]types.ScoredCandidate, 0, len(scored))
	for _, s := range scored {
		if excluded[s.Candidate.SourceID] {
			continue
		}
		pool = append(pool, s)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.Breakdown.Composite != b.Breakdown.Composite {
			return a.Breakdown.Composite > b.Breakdown.Composite
		}
		if a.Breakdown.ExperienceScore != b.Breakdown.ExperienceScore {
			return a.Breakdown.ExperienceScore > b.Breakdown.ExperienceScore
		}
		return a.Candidate.Order < b.Candidate.Order
	})

	if len(pool) > topN {
		pool = pool[:topN]
	}

	ranked := make([]types.RankedEntry, len(pool))
	for i, s := range pool {
		ranked[i] = types.RankedEntry{
			Rank:      i + 1,
			Candidate: s.Candidate,
			Breakdown: s.Breakdown,
		}
	}
	return ranked
}
