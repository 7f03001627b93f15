// Package observability provides logging setup, Prometheus metrics, and
// formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func joinLimited(items []string, limit int) string {
	return truncate(strings.Join(items, ", "), limit)
}

// PrintRequirements outputs the requirement set derived from the job description.
func (p *Printer) PrintRequirements(reqs *types.RequirementSet) {
	if reqs == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills:      %s\n", orNone(joinLimited(reqs.RequiredSkills, 40))))
	sb.WriteString(fmt.Sprintf("Frameworks:  %s\n", orNone(joinLimited(reqs.RequiredFrameworks, 40))))
	sb.WriteString(fmt.Sprintf("Years:       %s (%s)\n", yearRange(reqs.MinYears, reqs.MaxYears), reqs.YearsRule))
	if len(reqs.EducationTokens) > 0 {
		sb.WriteString(fmt.Sprintf("Education:   %s\n", joinLimited(reqs.EducationTokens, 40)))
	}

	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExclusions outputs the candidates removed by the eligibility filter.
func (p *Printer) PrintExclusions(excluded []types.ExclusionRecord) {
	if len(excluded) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Excluded %d candidates:\n\n", len(excluded)))

	count := min(len(excluded), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := excluded[i]
		sb.WriteString(fmt.Sprintf("✗ %s\n", displayName(e.Name, e.SourceID)))
		sb.WriteString(fmt.Sprintf("  %d years > max %d\n", e.DetectedYears, e.MaxAllowed))
	}
	if len(excluded) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(excluded)-maxItemsToShow))
	}

	p.printBox("EXCLUDED BY EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the ranked candidates with their sub-scores.
func (p *Printer) PrintRanking(ranked []types.RankedEntry) {
	if len(ranked) == 0 {
		p.printBox("RANKED CANDIDATES", "No eligible candidates")
		return
	}

	var sb strings.Builder
	for i, e := range ranked {
		flag := ""
		if e.LowConfidence {
			flag = "  ⚠ low confidence"
		}
		sb.WriteString(fmt.Sprintf("#%d  %s%s\n", e.Rank, displayName(e.Candidate.Name, e.Candidate.SourceID), flag))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (exp %d, ext %d, awards %d)\n",
			e.Breakdown.Composite, e.Breakdown.ExperienceScore, e.Breakdown.ExternalScore, e.Breakdown.AwardsScore))
		if len(e.Breakdown.MatchedRequirements) > 0 {
			sb.WriteString(fmt.Sprintf("    Matched: %s\n", joinLimited(e.Breakdown.MatchedRequirements, 40)))
		}
		if i < len(ranked)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVerification outputs the outcome of the verification loop.
func (p *Printer) PrintVerification(summary types.VerificationSummary) {
	if len(summary.Mismatches) == 0 {
		p.printBox("VERIFICATION", fmt.Sprintf("✅ All claims supported (%d pass)", summary.Passes))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Passes: %d  Re-scored: %d  Low confidence: %d\n\n",
		summary.Passes, len(summary.Rescored), len(summary.LowConfidence)))

	count := min(len(summary.Mismatches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := summary.Mismatches[i]
		sb.WriteString(fmt.Sprintf("⚠ %s: %s %q\n", m.SourceID, m.Kind, m.Claim))
	}
	if len(summary.Mismatches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(summary.Mismatches)-maxItemsToShow))
	}

	p.printBox("VERIFICATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the full verbose summary of a run.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	c := report.Counters
	p.printBox("RUN "+report.RunID, fmt.Sprintf(
		"Scanned: %d  Failed: %d  Excluded: %d  Eligible: %d  Ranked: %d",
		c.Scanned, c.DownloadFailed, c.Excluded, c.Eligible, c.Ranked))
	p.PrintRequirements(&report.Requirements)
	p.PrintExclusions(report.Exclusions)
	p.PrintRanking(report.Ranked)
	p.PrintVerification(report.Verification)
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func yearRange(minYears, maxYears *int) string {
	switch {
	case minYears != nil && maxYears != nil:
		return fmt.Sprintf("%d-%d", *minYears, *maxYears)
	case minYears != nil:
		return fmt.Sprintf("%d+", *minYears)
	case maxYears != nil:
		return fmt.Sprintf("up to %d", *maxYears)
	default:
		return "unbounded"
	}
}
