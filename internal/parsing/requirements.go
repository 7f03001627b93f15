// Package parsing turns free-text job descriptions into a structured RequirementSet
// using deterministic, rule-based extraction.
package parsing

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// ExtractOptions controls requirement extraction.
type ExtractOptions struct {
	// MaxYearsOverride, when set, replaces any inferred maximum
	MaxYearsOverride *int
}

// ExtractRequirements derives the RequirementSet for a job description.
// It fails only when the text is empty or not readable text; anything else
// degrades to empty or unbounded fields.
func ExtractRequirements(text string, opts ExtractOptions) (*types.RequirementSet, error) {
	if err := checkReadable(text); err != nil {
		return nil, err
	}
	if opts.MaxYearsOverride != nil && *opts.MaxYearsOverride < 0 {
		return nil, &ValidationError{Field: "max_years", Message: "must be non-negative"}
	}

	bounds := InferYearBounds(text)
	reqs := &types.RequirementSet{
		RequiredSkills:     nonNil(skills.FindLanguages(text)),
		RequiredFrameworks: nonNil(skills.FindFrameworks(text)),
		MinYears:           bounds.Min,
		MaxYears:           bounds.Max,
		EducationTokens:    nonNil(ExtractEducation(text)),
		YearsRule:          bounds.Rule,
	}

	if opts.MaxYearsOverride != nil {
		reqs.MaxYears = types.IntPtr(*opts.MaxYearsOverride)
		reqs.YearsRule = types.YearsRuleOverride
	}

	return reqs, nil
}

// ParseJobFile reads a plain-text job description from disk and extracts requirements.
func ParseJobFile(path string, opts ExtractOptions) (*types.RequirementSet, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &ParseError{Message: fmt.Sprintf("cannot read job description %s", path), Cause: err}
	}
	text := string(data)
	reqs, err := ExtractRequirements(text, opts)
	if err != nil {
		return nil, "", err
	}
	return reqs, text, nil
}

func checkReadable(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ParseError{Message: "job description is empty"}
	}
	if !utf8.ValidString(text) {
		return &ParseError{Message: "job description is not valid UTF-8 text"}
	}
	if strings.ContainsRune(text, 0) {
		return &ParseError{Message: "job description contains binary data"}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
