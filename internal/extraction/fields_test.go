package extraction

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestExtractName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"first line", "Jane Doe\nSoftware Engineer", "Jane Doe"},
		{"skips header", "RESUME\nJohn Smith\njohn@example.com", "John Smith"},
		{"skips contact lines", "jane@mail.com | 555-123-4567\nJane Roe", "Jane Roe"},
		{"skips blacklisted", "Curriculum Vitae\nGitHub: jr\nAlex Kim", "Alex Kim"},
		{"nothing plausible", "RESUME\n\n", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractName(tt.text))
		})
	}
}

func TestExtractHandle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *string
	}{
		{"profile url", "see https://github.com/janedoe/ for work", types.StringPtr("janedoe")},
		{"labelled url", "GitHub: github.com/jd-dev", types.StringPtr("jd-dev")},
		{"labelled handle", "GitHub: @octo_cat", types.StringPtr("octo_cat")},
		{"false positive skipped", "github.com/about and github.com/realuser", types.StringPtr("realuser")},
		{"none", "no links here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractHandle(tt.text))
		})
	}
}

func TestExtractYears(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *int
	}{
		{"explicit statement", "8+ years of professional experience", types.IntPtr(8)},
		{"largest explicit wins", "3 years experience in Go, 6 years of experience overall", types.IntPtr(6)},
		{"single range", "Acme 2015 - 2020", types.IntPtr(5)},
		{"overlapping ranges merged", "Acme 2015–2020\nSide gig 2018–2019\nBeta Jan 2021 - Present", types.IntPtr(9)},
		{"month names", "Mar 2019 – Dec 2022", types.IntPtr(3)},
		{"implausible range ignored", "1960 - 1965", nil},
		{"nothing", "Enthusiastic engineer", nil},
		{"zero length range", "2020 - 2020", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractYears(tt.text, fixedNow))
		})
	}
}

func TestExtractAwards(t *testing.T) {
	text := strings.Join([]string{
		"ICPC World Finalist 2019",
		"Worked on ranking systems",
		"Dean's List, 2016",
		"ICPC World Finalist 2019",
		"Won first place at HackMIT",
		"Wonderful team player",
	}, "\n")

	got := ExtractAwards(text)

	assert.Equal(t, []string{"ICPC World Finalist 2019", "Dean's List, 2016", "Won first place at HackMIT"}, got)
}

func TestDigest(t *testing.T) {
	short := "abc"
	assert.Equal(t, short, Digest(short))

	long := strings.Repeat("é", DigestLimit+10)
	assert.Equal(t, DigestLimit, len([]rune(Digest(long))))
}
