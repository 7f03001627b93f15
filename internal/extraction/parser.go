package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/resume-ranker/internal/parsing"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Source is a validated document ready for parsing.
type Source struct {
	ID    string
	Path  string
	Order int
}

// SimilarityScorer compares a resume against the job description. Implementations
// return a value in [0,1].
type SimilarityScorer interface {
	Similarity(ctx context.Context, jobText, resumeText string) (float64, error)
}

// Parser builds CandidateRecords from documents.
type Parser struct {
	Text *Chain
	// Similarity is optional; nil leaves SemanticSimilarity unset
	Similarity SimilarityScorer
	JobText    string
	Now        func() time.Time
	Logger     *slog.Logger
}

// NewParser returns a Parser using the default extractor chain.
func NewParser(jobText string, similarity SimilarityScorer) *Parser {
	return &Parser{
		Text:       DefaultChain(),
		Similarity: similarity,
		JobText:    jobText,
		Now:        time.Now,
		Logger:     slog.Default().With("component", "parser"),
	}
}

// Parse extracts a CandidateRecord from src. It never fails: unreadable
// documents degrade to a record with empty fields plus warnings.
func (p *Parser) Parse(ctx context.Context, src Source) (types.CandidateRecord, []string) {
	var warnings []string
	record := types.CandidateRecord{
		SourceID:   src.ID,
		Name:       "Unknown",
		Skills:     []string{},
		Frameworks: []string{},
		Awards:     []string{},
		Education:  []string{},
		Order:      src.Order,
	}

	chain := p.Text
	if chain == nil {
		chain = DefaultChain()
	}
	text, via, err := chain.ExtractText(ctx, src.Path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("text extraction failed: %v", err))
		p.logger().Warn("no text extracted", "source", src.ID, "error", err)
		return record, warnings
	}
	p.logger().Debug("text extracted", "source", src.ID, "extractor", via, "chars", len(text))

	record = p.ParseText(src, text)

	if p.Similarity != nil && p.JobText != "" {
		sim, err := p.Similarity.Similarity(ctx, p.JobText, text)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("semantic similarity unavailable: %v", err))
		} else {
			record.SemanticSimilarity = types.FloatPtr(sim)
		}
	}

	if record.YearsOfExperience == nil {
		warnings = append(warnings, "years of experience could not be determined")
	}
	return record, warnings
}

// ParseText applies field extraction to already-extracted text.
func (p *Parser) ParseText(src Source, text string) types.CandidateRecord {
	now := time.Now
	if p != nil && p.Now != nil {
		now = p.Now
	}
	return types.CandidateRecord{
		SourceID:          src.ID,
		Name:              ExtractName(text),
		ExternalHandle:    ExtractHandle(text),
		Skills:            nonNil(skills.FindLanguages(text)),
		Frameworks:        nonNil(skills.FindFrameworks(text)),
		YearsOfExperience: ExtractYears(text, now()),
		Awards:            nonNil(ExtractAwards(text)),
		Education:         nonNil(parsing.ExtractEducation(text)),
		RawTextDigest:     Digest(text),
		Order:             src.Order,
	}
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
