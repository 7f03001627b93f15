package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/types"
)

func testReqs() *types.RequirementSet {
	return &types.RequirementSet{
		RequiredSkills:     []string{"Go", "Python"},
		RequiredFrameworks: []string{"Docker", "Kubernetes"},
	}
}

func scoredPool(candidates ...types.CandidateRecord) []types.ScoredCandidate {
	return ranking.ScoreAll(candidates, testReqs())
}

func TestVerify_AllSupported(t *testing.T) {
	pool := scoredPool(
		types.CandidateRecord{
			SourceID:      "a",
			Order:         0,
			Skills:        []string{"Go", "Python"},
			RawTextDigest: "Built services in Go and Python.",
		},
		types.CandidateRecord{
			SourceID:      "b",
			Order:         1,
			Frameworks:    []string{"Docker"},
			RawTextDigest: "Docker everywhere.",
		},
	)

	ranked, summary := New().Verify(pool, nil, testReqs(), 10)

	assert.Equal(t, 1, summary.Passes)
	assert.Empty(t, summary.Rescored)
	assert.Empty(t, summary.LowConfidence)
	assert.Empty(t, summary.Mismatches)
	require.Len(t, ranked, 2)
	assert.Equal(t, ranking.Rank(pool, nil, 10), ranked)
}

func TestVerify_RescoresUnsupportedClaim(t *testing.T) {
	pool := scoredPool(
		types.CandidateRecord{
			SourceID:      "inflated",
			Order:         0,
			Skills:        []string{"Go", "Python"},
			Frameworks:    []string{"Docker", "Kubernetes"},
			RawTextDigest: "Go developer. Python scripts.",
		},
		types.CandidateRecord{
			SourceID:      "honest",
			Order:         1,
			Skills:        []string{"Go", "Python"},
			Frameworks:    []string{"Docker"},
			RawTextDigest: "Go and Python services shipped with Docker.",
		},
	)

	ranked, summary := New().Verify(pool, nil, testReqs(), 10)

	require.Len(t, ranked, 2)
	assert.Equal(t, "honest", ranked[0].Candidate.SourceID)
	assert.Equal(t, "inflated", ranked[1].Candidate.SourceID)
	assert.Equal(t, []string{"Go", "Python"}, ranked[1].Breakdown.MatchedRequirements)
	assert.Empty(t, ranked[1].Candidate.Frameworks)
	assert.False(t, ranked[1].LowConfidence)
	assert.NotEmpty(t, ranked[1].VerificationNotes)

	assert.Equal(t, 2, summary.Passes)
	assert.Equal(t, []string{"inflated"}, summary.Rescored)
	assert.Empty(t, summary.LowConfidence)
	assert.Len(t, summary.Mismatches, 2)
	for _, m := range summary.Mismatches {
		assert.Equal(t, 1, m.Pass)
		assert.Equal(t, types.MismatchRequirement, m.Kind)
	}

	// input pool untouched
	assert.Equal(t, []string{"Docker", "Kubernetes"}, pool[0].Candidate.Frameworks)
}

func TestVerify_UnsupportedAward(t *testing.T) {
	pool := scoredPool(types.CandidateRecord{
		SourceID:      "a",
		Skills:        []string{"Go"},
		Awards:        []string{"ICPC World Finalist"},
		RawTextDigest: "Go engineer.",
	})
	before := pool[0].Breakdown.AwardsScore

	ranked, summary := New().Verify(pool, nil, testReqs(), 10)

	require.Len(t, ranked, 1)
	assert.Empty(t, ranked[0].Candidate.Awards)
	assert.Less(t, ranked[0].Breakdown.AwardsScore, before)
	require.Len(t, summary.Mismatches, 1)
	assert.Equal(t, types.MismatchAward, summary.Mismatches[0].Kind)
}

func inflated(id string, order int) types.CandidateRecord {
	return types.CandidateRecord{
		SourceID:      id,
		Order:         order,
		Skills:        []string{"Go", "Python"},
		RawTextDigest: "nothing relevant",
	}
}

func TestVerify_EveryPassRescores(t *testing.T) {
	pool := scoredPool(
		inflated("a", 0),
		inflated("b", 1),
		inflated("c", 2),
		types.CandidateRecord{SourceID: "d", Order: 3, Skills: []string{"Go"}, RawTextDigest: "Go developer"},
	)

	ranked, summary := New().Verify(pool, nil, testReqs(), 1)

	require.Len(t, ranked, 1)
	assert.Equal(t, "d", ranked[0].Candidate.SourceID)
	assert.False(t, ranked[0].LowConfidence)
	assert.Equal(t, []string{"Go"}, ranked[0].Breakdown.MatchedRequirements)

	assert.Equal(t, 3, summary.Passes)
	assert.Equal(t, []string{"a", "b", "c"}, summary.Rescored)
	assert.Empty(t, summary.LowConfidence)
	for _, m := range summary.Mismatches {
		assert.LessOrEqual(t, m.Pass, 3)
	}
}

func TestVerify_SinglePassStillRescores(t *testing.T) {
	pool := scoredPool(types.CandidateRecord{
		SourceID:      "a",
		Skills:        []string{"Go", "Python"},
		RawTextDigest: "Python only.",
	})

	v := &Verifier{MaxPasses: 1}
	ranked, summary := v.Verify(pool, nil, testReqs(), 10)

	require.Len(t, ranked, 1)
	assert.Equal(t, []string{"Python"}, ranked[0].Breakdown.MatchedRequirements)
	assert.False(t, ranked[0].LowConfidence)
	assert.Equal(t, 1, summary.Passes)
	assert.Equal(t, []string{"a"}, summary.Rescored)
	assert.Empty(t, summary.LowConfidence)
}

func TestVerify_PassLimitFlagsNewEntrant(t *testing.T) {
	pool := scoredPool(inflated("a", 0), inflated("b", 1))

	v := &Verifier{MaxPasses: 1}
	ranked, summary := v.Verify(pool, nil, testReqs(), 1)

	require.Len(t, ranked, 1)
	assert.Equal(t, "b", ranked[0].Candidate.SourceID)
	assert.True(t, ranked[0].LowConfidence)
	assert.NotEmpty(t, ranked[0].VerificationNotes)

	assert.Equal(t, 1, summary.Passes)
	assert.Equal(t, []string{"a"}, summary.Rescored)
	assert.Equal(t, []string{"b"}, summary.LowConfidence)

	final := 0
	for _, m := range summary.Mismatches {
		if m.Pass == 2 {
			final++
			assert.Equal(t, "b", m.SourceID)
		}
	}
	assert.Equal(t, 2, final)
}

func TestVerify_ObserverCalledPerPass(t *testing.T) {
	pool := scoredPool(types.CandidateRecord{
		SourceID:      "a",
		Skills:        []string{"Go", "Python"},
		RawTextDigest: "Go.",
	})

	var passes []int
	v := New()
	v.Observer = func(pass, _ int) { passes = append(passes, pass) }
	_, summary := v.Verify(pool, nil, testReqs(), 10)

	assert.Equal(t, []int{1, 2}, passes)
	assert.Equal(t, 2, summary.Passes)
}

func TestVerify_NeverReturnsExcluded(t *testing.T) {
	pool := scoredPool(
		types.CandidateRecord{SourceID: "gone", Skills: []string{"Go"}, RawTextDigest: "Go"},
		types.CandidateRecord{SourceID: "kept", Order: 1, RawTextDigest: ""},
	)

	ranked, _ := New().Verify(pool, map[string]bool{"gone": true}, testReqs(), 10)

	require.Len(t, ranked, 1)
	assert.Equal(t, "kept", ranked[0].Candidate.SourceID)
}

func TestCheck(t *testing.T) {
	entry := types.RankedEntry{
		Candidate: types.CandidateRecord{
			SourceID:      "x",
			Awards:        []string{"Dean's List", "Best Paper Award"},
			RawTextDigest: "Worked with k8s clusters. Dean's list 2019.",
		},
		Breakdown: types.ScoreBreakdown{MatchedRequirements: []string{"Kubernetes", "Go"}},
	}

	mismatches := Check(entry, map[string]bool{"x": true})

	kinds := map[string][]string{}
	for _, m := range mismatches {
		kinds[m.Kind] = append(kinds[m.Kind], m.Claim)
	}
	assert.Equal(t, []string{"Go"}, kinds[types.MismatchRequirement])
	assert.Equal(t, []string{"Best Paper Award"}, kinds[types.MismatchAward])
	assert.Equal(t, []string{"x"}, kinds[types.MismatchExcluded])
}

func TestVerify_FlagsEntriesWithoutText(t *testing.T) {
	pool := scoredPool(
		types.CandidateRecord{SourceID: "real", Skills: []string{"Go"}, RawTextDigest: "Go developer"},
		types.CandidateRecord{SourceID: "blank", Order: 1, Name: "Unknown", RawTextDigest: "  \n"},
	)

	ranked, summary := New().Verify(pool, nil, testReqs(), 10)

	require.Len(t, ranked, 2)
	assert.Equal(t, "real", ranked[0].Candidate.SourceID)
	assert.False(t, ranked[0].LowConfidence)
	assert.Equal(t, "blank", ranked[1].Candidate.SourceID)
	assert.True(t, ranked[1].LowConfidence)
	assert.Equal(t, []string{noEvidenceNote}, ranked[1].VerificationNotes)
	assert.Equal(t, []string{"blank"}, summary.LowConfidence)
	assert.Empty(t, summary.Rescored)
}
