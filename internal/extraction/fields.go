package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
)

// DigestLimit bounds the raw text excerpt kept for audit and verification.
const DigestLimit = 4000

var (
	nameBlacklist = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(resume|curriculum\s*vitae|cv|objective|summary|profile|contact)`),
		regexp.MustCompile(`(?i)^(http|www|phone|email|address|linkedin|github)`),
	}
	contactRe = regexp.MustCompile(`@|\.com|\.org|\.edu|\d{3}[-.]\d{3}|\d{5}`)

	handlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)GitHub\s*:\s*(?:https?://)?(?:www\.)?github\.com/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`(?i)GitHub\s*:\s*@?([A-Za-z0-9_-]+)`),
	}
	handleFalsePositives = map[string]bool{
		"in": true, "com": true, "io": true, "org": true, "profile": true,
		"settings": true, "topics": true, "explore": true, "features": true,
		"enterprise": true, "pricing": true, "login": true, "join": true, "about": true,
		"https": true, "http": true, "www": true,
	}

	explicitYearsRe = regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*years?\s*(?:of\s+)?(?:professional\s+)?(?:experience|exp)\b`)

	monthPrefix  = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?`
	dateRangeRe  = regexp.MustCompile(`(?i)` + monthPrefix + `(\d{4})\s*[-–—]+\s*` + monthPrefix + `(\d{4}|present|current|now)\b`)
	awardPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoteAll(awardKeywords), "|") + `)\b`)
)

// awardKeywords mark a resume line as an award or honor.
var awardKeywords = []string{
	"award", "awarded", "honor", "honors", "honours", "prize", "dean's list", "deans list",
	"scholarship", "fellowship", "icpc", "hackathon", "code jam",
	"codeforces", "topcoder", "leetcode", "kaggle", "olympiad",
	"competition winner", "first place", "1st place", "gold medal",
	"silver medal", "bronze medal", "cum laude", "magna cum laude",
	"summa cum laude", "valedictorian", "salutatorian", "patent",
	"publication", "published", "best paper", "acm", "ieee",
	"won", "winner", "finalist", "placed", "ranked",
}

func quoteAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = regexp.QuoteMeta(w)
	}
	return out
}

// ExtractName returns the first line that plausibly holds a person's name, or "Unknown".
func ExtractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 60 {
			continue
		}
		if blacklisted(line) || contactRe.MatchString(line) {
			continue
		}
		// short all-caps lines are section headers
		if line == strings.ToUpper(line) && len(strings.Fields(line)) <= 2 && len(line) < 20 {
			continue
		}
		return line
	}
	return "Unknown"
}

func blacklisted(line string) bool {
	for _, re := range nameBlacklist {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// ExtractHandle returns the GitHub username referenced in text, or nil.
func ExtractHandle(text string) *string {
	for _, re := range handlePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if handleFalsePositives[strings.ToLower(m[1])] {
				continue
			}
			return types.StringPtr(m[1])
		}
	}
	return nil
}

// ExtractYears estimates total years of experience. Explicit statements win
// (largest one); otherwise date ranges are merged so overlapping roles are
// counted once. Returns nil when neither source yields a positive total.
func ExtractYears(text string, now time.Time) *int {
	best := -1
	for _, m := range explicitYearsRe.FindAllStringSubmatch(text, -1) {
		if y, err := strconv.Atoi(m[1]); err == nil && y > best {
			best = y
		}
	}
	if best >= 0 {
		return types.IntPtr(best)
	}

	current := now.Year()
	var intervals [][2]int
	for _, m := range dateRangeRe.FindAllStringSubmatch(text, -1) {
		start, _ := strconv.Atoi(m[1])
		end := current
		switch strings.ToLower(m[2]) {
		case "present", "current", "now":
		default:
			end, _ = strconv.Atoi(m[2])
		}
		if start < 1970 || start > current || end < start || end > current+1 {
			continue
		}
		intervals = append(intervals, [2]int{start, end})
	}
	if len(intervals) == 0 {
		return nil
	}

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i][0] != intervals[j][0] {
			return intervals[i][0] < intervals[j][0]
		}
		return intervals[i][1] < intervals[j][1]
	})
	merged := [][2]int{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv[0] <= last[1] {
			if iv[1] > last[1] {
				last[1] = iv[1]
			}
			continue
		}
		merged = append(merged, iv)
	}

	total := 0
	for _, iv := range merged {
		total += iv[1] - iv[0]
	}
	if total <= 0 {
		return nil
	}
	return types.IntPtr(total)
}

// ExtractAwards returns award lines in order of first appearance, de-duplicated.
func ExtractAwards(text string) []string {
	var awards []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		if awardPattern.MatchString(line) {
			seen[line] = true
			awards = append(awards, line)
		}
	}
	return awards
}

// Digest truncates text to DigestLimit runes.
func Digest(text string) string {
	runes := []rune(text)
	if len(runes) <= DigestLimit {
		return text
	}
	return string(runes[:DigestLimit])
}
