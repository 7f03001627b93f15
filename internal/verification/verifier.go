// Package verification re-checks ranked candidates against the evidence in
// their own documents and corrects scores built on unsupported claims.
package verification

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// DefaultMaxPasses bounds the corrective loop.
const DefaultMaxPasses = 3

// noEvidenceNote marks entries whose document yielded no text, so nothing in
// their record could be checked.
const noEvidenceNote = "no text could be extracted from the document"

// Verifier runs the bounded verify, correct, re-rank loop.
type Verifier struct {
	MaxPasses int
	// Observer, if set, is called once per completed pass
	Observer func(pass, mismatches int)
	Logger   *slog.Logger
}

// New returns a Verifier with the default pass limit.
func New() *Verifier {
	return &Verifier{MaxPasses: DefaultMaxPasses}
}

// Verify ranks pool, checks every ranked entry, and repairs unsupported claims
// by re-scoring the affected candidate. Each candidate is re-scored at most
// once and every pass may re-score. When the pass limit is used up, a final
// check-only pass runs over the last ranking. Entries that still fail after
// their re-score, or that first fail in that final check, are kept but
// flagged low confidence, as are entries with no extracted text at all. The
// pool is not modified.
func (v *Verifier) Verify(
	pool []types.ScoredCandidate,
	excluded map[string]bool,
	reqs *types.RequirementSet,
	topN int,
) ([]types.RankedEntry, types.VerificationSummary) {
	maxPasses := v.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	working := make([]types.ScoredCandidate, len(pool))
	index := make(map[string]int, len(pool))
	for i, s := range pool {
		working[i] = types.ScoredCandidate{Candidate: s.Candidate.Clone(), Breakdown: s.Breakdown}
		index[s.Candidate.SourceID] = i
	}

	summary := types.VerificationSummary{
		Rescored:      []string{},
		LowConfidence: []string{},
		Mismatches:    []types.VerificationMismatch{},
	}
	rescored := make(map[string]bool)
	notes := make(map[string][]string)
	lowConfidence := make(map[string]bool)

	flag := func(id, note string) {
		if !lowConfidence[id] {
			lowConfidence[id] = true
			summary.LowConfidence = append(summary.LowConfidence, id)
		}
		notes[id] = append(notes[id], note)
	}

	// check records the mismatches of every ranked entry not yet flagged and
	// returns them per candidate, in rank order.
	check := func(ranked []types.RankedEntry, pass int) ([]string, map[string][]types.VerificationMismatch) {
		var ids []string
		byID := make(map[string][]types.VerificationMismatch)
		for _, entry := range ranked {
			id := entry.Candidate.SourceID
			if lowConfidence[id] {
				continue
			}
			mismatches := Check(entry, excluded)
			if len(mismatches) == 0 {
				continue
			}
			for i := range mismatches {
				mismatches[i].Pass = pass
			}
			summary.Mismatches = append(summary.Mismatches, mismatches...)
			ids = append(ids, id)
			byID[id] = mismatches
		}
		return ids, byID
	}

	ranked := ranking.Rank(working, excluded, topN)
	settled := false
	for pass := 1; pass <= maxPasses; pass++ {
		summary.Passes = pass

		ids, byID := check(ranked, pass)
		found := 0
		for _, id := range ids {
			mismatches := byID[id]
			found += len(mismatches)
			if rescored[id] {
				flag(id, "claims still unsupported after re-scoring")
				continue
			}
			i := index[id]
			working[i] = correct(working[i], mismatches, reqs)
			rescored[id] = true
			summary.Rescored = append(summary.Rescored, id)
			notes[id] = append(notes[id], describe(mismatches)...)
		}

		if v.Observer != nil {
			v.Observer(pass, found)
		}
		v.logger().Debug("verification pass complete", "pass", pass, "mismatches", found)

		if found == 0 {
			settled = true
			break
		}
		ranked = ranking.Rank(working, excluded, topN)
	}

	if !settled {
		ids, _ := check(ranked, maxPasses+1)
		for _, id := range ids {
			if rescored[id] {
				flag(id, "claims still unsupported after re-scoring")
			} else {
				flag(id, fmt.Sprintf("unsupported claims found after %d corrective passes", maxPasses))
			}
		}
		v.logger().Debug("final verification check complete", "flagged", len(ids))
	}

	for _, entry := range ranked {
		if strings.TrimSpace(entry.Candidate.RawTextDigest) == "" {
			flag(entry.Candidate.SourceID, noEvidenceNote)
		}
	}

	for i := range ranked {
		id := ranked[i].Candidate.SourceID
		ranked[i].LowConfidence = lowConfidence[id]
		ranked[i].VerificationNotes = notes[id]
	}
	return ranked, summary
}

// Check compares one ranked entry against the evidence in its digest.
// Matched requirements must be mentioned in the digest, awards must appear
// verbatim (case-insensitive), and the candidate must not be excluded.
func Check(entry types.RankedEntry, excluded map[string]bool) []types.VerificationMismatch {
	c := entry.Candidate
	var out []types.VerificationMismatch

	if excluded[c.SourceID] {
		out = append(out, types.VerificationMismatch{
			SourceID: c.SourceID,
			Kind:     types.MismatchExcluded,
			Claim:    c.SourceID,
		})
	}

	for _, req := range entry.Breakdown.MatchedRequirements {
		if !skills.Mentions(c.RawTextDigest, req) {
			out = append(out, types.VerificationMismatch{
				SourceID: c.SourceID,
				Kind:     types.MismatchRequirement,
				Claim:    req,
			})
		}
	}

	digest := strings.ToLower(c.RawTextDigest)
	for _, award := range c.Awards {
		if !strings.Contains(digest, strings.ToLower(award)) {
			out = append(out, types.VerificationMismatch{
				SourceID: c.SourceID,
				Kind:     types.MismatchAward,
				Claim:    award,
			})
		}
	}
	return out
}

// correct drops the unsupported claims and re-scores the candidate.
func correct(s types.ScoredCandidate, mismatches []types.VerificationMismatch, reqs *types.RequirementSet) types.ScoredCandidate {
	drop := map[string]map[string]bool{
		types.MismatchRequirement: {},
		types.MismatchAward:       {},
	}
	for _, m := range mismatches {
		if set, ok := drop[m.Kind]; ok {
			set[m.Claim] = true
		}
	}

	c := s.Candidate.Clone()
	c.Skills = without(c.Skills, drop[types.MismatchRequirement])
	c.Frameworks = without(c.Frameworks, drop[types.MismatchRequirement])
	c.Awards = without(c.Awards, drop[types.MismatchAward])

	return types.ScoredCandidate{Candidate: c, Breakdown: ranking.Score(c, reqs)}
}

func without(list []string, drop map[string]bool) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !drop[v] {
			out = append(out, v)
		}
	}
	return out
}

func describe(mismatches []types.VerificationMismatch) []string {
	out := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		out = append(out, fmt.Sprintf("removed unsupported %s claim %q", m.Kind, m.Claim))
	}
	return out
}

func (v *Verifier) logger() *slog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.Default()
}
