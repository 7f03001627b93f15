//nolint:revive // types is a standard Go package name pattern
package types

// CandidateRecord holds everything extracted from one source document.
// Nullable fields are pointers: nil means "could not be derived", never zero.
type CandidateRecord struct {
	SourceID           string   `json:"source_id"`
	Name               string   `json:"name"`
	ExternalHandle     *string  `json:"external_handle"`
	Skills             []string `json:"skills"`
	Frameworks         []string `json:"frameworks"`
	YearsOfExperience  *int     `json:"years_of_experience"`
	Awards             []string `json:"awards"`
	Education          []string `json:"education"`
	SemanticSimilarity *float64 `json:"semantic_similarity"`
	RawTextDigest      string   `json:"raw_text_digest"`
	// Order is the ingestion position, used as the final ranking tie-break
	Order int `json:"order"`

	// Set by enrichment
	ExternalActivityScore   int     `json:"external_activity_score"`
	ExternalLanguageOverlap float64 `json:"external_language_overlap"`
	EnrichmentNote          string  `json:"enrichment_note,omitempty"`
}

// HasSkill reports whether name appears in the candidate's skills or frameworks.
// Both sides are expected to be canonical already.
func (c *CandidateRecord) HasSkill(name string) bool {
	for _, s := range c.Skills {
		if s == name {
			return true
		}
	}
	for _, f := range c.Frameworks {
		if f == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so later stages can derive records without sharing slices.
func (c CandidateRecord) Clone() CandidateRecord {
	out := c
	out.Skills = append([]string(nil), c.Skills...)
	out.Frameworks = append([]string(nil), c.Frameworks...)
	out.Awards = append([]string(nil), c.Awards...)
	out.Education = append([]string(nil), c.Education...)
	if c.ExternalHandle != nil {
		out.ExternalHandle = StringPtr(*c.ExternalHandle)
	}
	if c.YearsOfExperience != nil {
		out.YearsOfExperience = IntPtr(*c.YearsOfExperience)
	}
	if c.SemanticSimilarity != nil {
		out.SemanticSimilarity = FloatPtr(*c.SemanticSimilarity)
	}
	return out
}

// ExclusionRecord documents why a candidate was removed by the eligibility filter.
type ExclusionRecord struct {
	SourceID      string `json:"source_id"`
	Name          string `json:"name"`
	DetectedYears int    `json:"detected_years"`
	MaxAllowed    int    `json:"max_allowed"`
	Reason        string `json:"reason"`
}

// ScoreBreakdown is the full scoring result for one candidate.
// Composite always equals round(exp*0.5 + ext*0.3 + awd*0.2, 2).
type ScoreBreakdown struct {
	ExperienceScore     int      `json:"experience_score"`
	ExternalScore       int      `json:"external_score"`
	AwardsScore         int      `json:"awards_score"`
	KeywordScore        float64  `json:"keyword_score"`
	SemanticScore       *float64 `json:"semantic_score"`
	MatchedRequirements []string `json:"matched_requirements"`
	Composite           float64  `json:"composite"`
}

// ScoredCandidate pairs a candidate with its current breakdown.
type ScoredCandidate struct {
	Candidate CandidateRecord `json:"candidate"`
	Breakdown ScoreBreakdown  `json:"breakdown"`
}

// RankedEntry is one position in the ranked result.
type RankedEntry struct {
	Rank              int             `json:"rank"`
	Candidate         CandidateRecord `json:"candidate"`
	Breakdown         ScoreBreakdown  `json:"breakdown"`
	LowConfidence     bool            `json:"low_confidence"`
	VerificationNotes []string        `json:"verification_notes,omitempty"`
}
