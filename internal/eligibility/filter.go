// Package eligibility removes overqualified candidates before scoring.
package eligibility

import (
	"fmt"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Partition splits candidates into eligible and excluded. A candidate is
// excluded only when both its years and the maximum are known and years
// exceed the maximum; unknown years never exclude.
func Partition(candidates []types.CandidateRecord, reqs *types.RequirementSet) ([]types.CandidateRecord, []types.ExclusionRecord) {
	eligible := make([]types.CandidateRecord, 0, len(candidates))
	excluded := make([]types.ExclusionRecord, 0)

	var maxYears *int
	if reqs != nil {
		maxYears = reqs.MaxYears
	}

	for _, c := range candidates {
		if maxYears != nil && c.YearsOfExperience != nil && *c.YearsOfExperience > *maxYears {
			excluded = append(excluded, types.ExclusionRecord{
				SourceID:      c.SourceID,
				Name:          c.Name,
				DetectedYears: *c.YearsOfExperience,
				MaxAllowed:    *maxYears,
				Reason: fmt.Sprintf("Detected %d years experience exceeds maximum of %d years",
					*c.YearsOfExperience, *maxYears),
			})
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible, excluded
}

// ExcludedIDs indexes exclusion records by source ID.
func ExcludedIDs(excluded []types.ExclusionRecord) map[string]bool {
	ids := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		ids[e.SourceID] = true
	}
	return ids
}
