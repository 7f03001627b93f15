package parsing

import (
	"regexp"
	"strconv"

	"github.com/jonathan/resume-ranker/internal/types"
)

const yearsWord = `(?:years?|yrs?)\b`

var (
	rangeYearsRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:[-–—]|to)\s*(\d{1,2})\s*\+?\s*` + yearsWord)
	plusYearsRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+\s*` + yearsWord)
	upToYearsRe  = regexp.MustCompile(`(?i)\b(?:up to|at most|no more than|maximum of|maximum|max\.?)\s*(\d{1,2})\s*` + yearsWord)
	bareYearsRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*` + yearsWord)
)

// YearBounds is the outcome of year-bound inference.
type YearBounds struct {
	Min  *int
	Max  *int
	Rule string
}

// InferYearBounds applies the year rules in priority order; the first match wins.
//
//	"X–Y years"   → (X, Y)
//	"X+ years"    → (X, 2X)
//	"up to Y years" (at most, no more than, maximum) → (nil, Y)
//	"X years"     → (X, 2X)
//	otherwise     → (nil, nil)
func InferYearBounds(text string) YearBounds {
	for _, m := range rangeYearsRe.FindAllStringSubmatch(text, -1) {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo <= hi {
			return YearBounds{Min: types.IntPtr(lo), Max: types.IntPtr(hi), Rule: types.YearsRuleRange}
		}
	}
	if m := plusYearsRe.FindStringSubmatch(text); m != nil {
		x, _ := strconv.Atoi(m[1])
		return YearBounds{Min: types.IntPtr(x), Max: types.IntPtr(2 * x), Rule: types.YearsRulePlus}
	}
	if m := upToYearsRe.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		return YearBounds{Max: types.IntPtr(y), Rule: types.YearsRuleUpTo}
	}
	if m := bareYearsRe.FindStringSubmatch(text); m != nil {
		x, _ := strconv.Atoi(m[1])
		return YearBounds{Min: types.IntPtr(x), Max: types.IntPtr(2 * x), Rule: types.YearsRuleBare}
	}
	return YearBounds{Rule: types.YearsRuleNone}
}
