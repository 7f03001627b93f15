//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Report is the audit artifact produced by one pipeline run.
type Report struct {
	RunID               string              `json:"run_id"`
	GeneratedAt         time.Time           `json:"generated_at"`
	Job                 JobSource           `json:"job"`
	Requirements        RequirementSet      `json:"requirements"`
	Counters            Counters            `json:"counters"`
	Exclusions          []ExclusionRecord   `json:"exclusions"`
	DownloadErrors      []DownloadFailure   `json:"download_errors"`
	ParseWarnings       []Issue             `json:"parse_warnings"`
	EnrichmentIssues    []Issue             `json:"enrichment_issues"`
	Verification        VerificationSummary `json:"verification"`
	Ranked              []RankedEntry       `json:"ranked"`
	SimilarityAvailable bool                `json:"similarity_available"`
}

// JobSource identifies the job description a run was evaluated against.
type JobSource struct {
	Source string `json:"source"`
	Hash   string `json:"hash"`
}

// Counters are the pipeline totals.
type Counters struct {
	Scanned        int `json:"scanned"`
	DownloadFailed int `json:"download_failed"`
	Excluded       int `json:"excluded"`
	Eligible       int `json:"eligible"`
	Ranked         int `json:"ranked"`
}

// DownloadFailure is the report projection of a retrieval error.
type DownloadFailure struct {
	Location string `json:"location"`
	Attempts int    `json:"attempts"`
	Cause    string `json:"cause"`
}

// Issue is a recovered, per-candidate problem surfaced for audit.
type Issue struct {
	SourceID string `json:"source_id"`
	Reason   string `json:"reason"`
}

// VerificationSummary describes the corrective loop of the verifier.
type VerificationSummary struct {
	Passes        int                    `json:"passes"`
	Rescored      []string               `json:"rescored"`
	LowConfidence []string               `json:"low_confidence"`
	Mismatches    []VerificationMismatch `json:"mismatches"`
}

// VerificationMismatch is one unsupported claim found during verification.
type VerificationMismatch struct {
	SourceID string `json:"source_id"`
	Pass     int    `json:"pass"`
	Kind     string `json:"kind"`
	Claim    string `json:"claim"`
}

// Mismatch kinds.
const (
	MismatchRequirement = "requirement"
	MismatchAward       = "award"
	MismatchExcluded    = "excluded"
)
