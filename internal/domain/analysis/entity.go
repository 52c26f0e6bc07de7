package analysis

import (
	"time"
)

// RiskLevel enum for a flagged statement
type RiskLevel string

const (
	RiskMajor RiskLevel = "major"
	RiskMinor RiskLevel = "minor"
)

// ESGCategory enum
type ESGCategory string

const (
	CategoryEnvironmental ESGCategory = "Environmental"
	CategorySocial        ESGCategory = "Social"
	CategoryGovernance    ESGCategory = "Governance"
	CategoryOther         ESGCategory = "Other"
)

// Classification enum, derived from the confidence score only
type Classification string

const (
	ClassificationMajor Classification = "Major"
	ClassificationMinor Classification = "Minor"
)

// FlaggedStatement value object: one model-identified passage.
// Only RiskLevel feeds the score; category and reason are informational.
type FlaggedStatement struct {
	Statement   string      `json:"statement"`
	ESGCategory ESGCategory `json:"esg_category"`
	Reason      string      `json:"reason"`
	RiskLevel   RiskLevel   `json:"risk_level"`
}

// Aggregate Root: Record, one per analyzed report
type Record struct {
	ReportID          string             `json:"report_id"`
	ConfidenceScore   int                `json:"confidence_score"`
	Classification    Classification     `json:"classification"`
	FlaggedStatements []FlaggedStatement `json:"flagged_statements,omitempty"`
	AnalyzedAt        time.Time          `json:"analyzed_at"`
}

// Reconciled returns a copy whose classification agrees with its score.
// Stored labels are never trusted; the score is the source of truth.
func (r Record) Reconciled() Record {
	r.Classification = Classify(r.ConfidenceScore)
	return r
}
