// Package schemas holds the JSON Schemas for the artifacts the ranker writes.
package schemas

import _ "embed"

// RankingReport is the schema every written report is checked against.
//
//go:embed ranking_report.schema.json
var RankingReport string
