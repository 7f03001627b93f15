package parsing

import (
	"regexp"
	"strings"
)

// Degree patterns are anchored on word boundaries so "systems" never reads as "M.S."
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Ph\.?D\.?|Doctor(?:ate)?)\s+(?:in|of)\s+[\w ]{3,40}`),
	regexp.MustCompile(`(?i)\b(?:Master'?s?|M\.S\.?|M\.A\.?|M\.Eng\.?|MBA)\s+(?:in|of)\s+[\w ]{3,40}`),
	regexp.MustCompile(`(?i)\b(?:Bachelor'?s?|B\.S\.?|B\.A\.?|B\.Eng\.?|B\.Tech)\s+(?:in|of)\s+[\w ]{3,40}`),
	regexp.MustCompile(`(?i)\b(?:Associate'?s?|A\.S\.?|A\.A\.?)\s+(?:in|of)\s+[\w ]{3,40}`),
}

// ExtractEducation returns degree mentions in pattern order (doctorate first),
// de-duplicated case-insensitively.
func ExtractEducation(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range degreePatterns {
		for _, m := range re.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			key := strings.ToLower(m)
			if m == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}
