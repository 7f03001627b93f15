package enrichment

import (
	"github.com/jonathan/resume-ranker/internal/skills"
)

// activityBuckets maps a lower bound on contribution count to a score; the
// highest bound not exceeding the count wins.
var activityBuckets = []struct {
	min   int
	score int
}{
	{1000, 10},
	{700, 9},
	{400, 8},
	{200, 7},
	{100, 6},
	{50, 5},
	{25, 4},
	{10, 3},
	{1, 2},
}

// DefaultActivityScore applies when no activity data is available.
const DefaultActivityScore = 1

// ActivityScore converts a contribution count into a 1..10 score.
func ActivityScore(count int) int {
	for _, b := range activityBuckets {
		if count >= b.min {
			return b.score
		}
	}
	return DefaultActivityScore
}

// LanguageOverlap is the share of required skills present among the profile's
// languages after canonicalization. Zero when nothing is required.
func LanguageOverlap(profileLanguages, required []string) float64 {
	req := skills.CanonicalSet(required)
	if len(req) == 0 {
		return 0
	}
	have := make(map[string]bool, len(profileLanguages))
	for _, l := range profileLanguages {
		have[skills.Canonical(l)] = true
	}
	matched := 0
	for _, r := range req {
		if have[r] {
			matched++
		}
	}
	return float64(matched) / float64(len(req))
}
