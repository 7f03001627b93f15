// Package ranking scores eligible candidates against a RequirementSet and
// orders them into the final ranked result.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Composite weights
const (
	experienceWeight = 0.5
	externalWeight   = 0.3
	awardsWeight     = 0.2
)

// Experience blend when semantic similarity is available
const (
	keywordBlend  = 0.6
	semanticBlend = 0.4
)

const (
	minSubScore = 1
	maxSubScore = 10
)

// overlapBonusThreshold is the language overlap that earns one external point.
const overlapBonusThreshold = 0.5

// prestigeKeywords mark awards that count double.
var prestigeKeywords = []string{
	"icpc", "olympiad", "gold medal", "first place", "1st place", "best paper",
	"summa cum laude", "valedictorian", "code jam", "fellowship", "patent",
	"world finals", "grand prize",
}

// Score computes the breakdown for one candidate. It is pure: the same
// candidate and requirements always produce the same breakdown.
func Score(c types.CandidateRecord, reqs *types.RequirementSet) types.ScoreBreakdown {
	matched, total := MatchRequirements(c, reqs)

	keyword := 0.0
	if total > 0 {
		keyword = 10 * float64(len(matched)) / float64(total)
	}

	var semantic *float64
	experience := math.Round(keyword)
	if c.SemanticSimilarity != nil {
		s := 10 * *c.SemanticSimilarity
		semantic = &s
		experience = math.Round(keyword*keywordBlend + s*semanticBlend)
	}

	b := types.ScoreBreakdown{
		ExperienceScore:     clamp(int(experience)),
		ExternalScore:       ExternalScore(c.ExternalActivityScore, c.ExternalLanguageOverlap),
		AwardsScore:         AwardsScore(c.Awards),
		KeywordScore:        math.Round(keyword*100) / 100,
		SemanticScore:       semantic,
		MatchedRequirements: matched,
	}
	b.Composite = Composite(b.ExperienceScore, b.ExternalScore, b.AwardsScore)
	return b
}

// MatchRequirements returns the requirements (skills then frameworks) the
// candidate claims, and the total number of requirements.
func MatchRequirements(c types.CandidateRecord, reqs *types.RequirementSet) ([]string, int) {
	all := reqs.AllRequirements()
	matched := make([]string, 0, len(all))
	for _, r := range all {
		if c.HasSkill(r) {
			matched = append(matched, r)
		}
	}
	return matched, len(all)
}

// ExternalScore adds one point for strong language overlap, capped at 10.
func ExternalScore(activity int, overlap float64) int {
	score := clamp(activity)
	if overlap >= overlapBonusThreshold {
		score++
	}
	return clamp(score)
}

// AwardsScore is 1 with no awards, otherwise 1 + 2 per award + 2 per
// prestigious award, clamped to 10.
func AwardsScore(awards []string) int {
	if len(awards) == 0 {
		return minSubScore
	}
	score := 1
	for _, a := range awards {
		score += 2
		if isPrestigious(a) {
			score += 2
		}
	}
	return clamp(score)
}

func isPrestigious(award string) bool {
	lower := strings.ToLower(award)
	for _, kw := range prestigeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Composite applies the fixed weights, rounded to 2 decimals.
func Composite(experience, external, awards int) float64 {
	raw := float64(experience)*experienceWeight + float64(external)*externalWeight + float64(awards)*awardsWeight
	return math.Round(raw*100) / 100
}

// ScoreAll scores every candidate, preserving input order.
func ScoreAll(candidates []types.CandidateRecord, reqs *types.RequirementSet) []types.ScoredCandidate {
	out := make([]types.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, types.ScoredCandidate{Candidate: c, Breakdown: Score(c, reqs)})
	}
	return out
}

func clamp(v int) int {
	if v < minSubScore {
		return minSubScore
	}
	if v > maxSubScore {
		return maxSubScore
	}
	return v
}
