// Package types provides type definitions for structured data used throughout the resume-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Year inference rules recorded on a RequirementSet.
const (
	YearsRuleRange    = "range"
	YearsRulePlus     = "plus"
	YearsRuleUpTo     = "up_to"
	YearsRuleBare     = "bare"
	YearsRuleOverride = "override"
	YearsRuleNone     = "none"
)

// RequirementSet is the structured form of a job description, derived once per run.
// Skill and framework slices hold canonical names, sorted and de-duplicated.
type RequirementSet struct {
	RequiredSkills     []string `json:"required_skills"`
	RequiredFrameworks []string `json:"required_frameworks"`
	MinYears           *int     `json:"min_years"`
	MaxYears           *int     `json:"max_years"`
	EducationTokens    []string `json:"education_tokens"`
	// YearsRule names the inference rule that produced MinYears/MaxYears
	YearsRule string `json:"years_rule"`
}

// AllRequirements returns the union of required skills and frameworks, preserving
// skills first and dropping duplicates.
func (r *RequirementSet) AllRequirements() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool, len(r.RequiredSkills)+len(r.RequiredFrameworks))
	out := make([]string, 0, len(r.RequiredSkills)+len(r.RequiredFrameworks))
	for _, list := range [][]string{r.RequiredSkills, r.RequiredFrameworks} {
		for _, req := range list {
			if seen[req] {
				continue
			}
			seen[req] = true
			out = append(out, req)
		}
	}
	return out
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
