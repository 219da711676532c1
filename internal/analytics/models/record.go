package models

import "time"

// DateLayouts are tried in order when interpreting raw date strings, both by
// the normalizer and at store ingest boundaries. Upstream sources mix plain
// dates with RFC 3339 timestamps. Every consumer must use this list so a row
// parses identically regardless of which store backend holds it.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// Sentinel categories for records missing a classification. Records carrying
// a sentinel still count toward raw volume totals, but categorical rate
// denominators exclude them.
const (
	CaseTypeUnclassified = "unclassified"
	OutcomeUnknown       = "unknown"
)

// ScopeOverall is the OutcomeAnalysis scope covering every case type.
const ScopeOverall = "overall"

// RawCaseRow is one case row as delivered by the record storage collaborator,
// before any coercion. Every field may be missing or garbage; the normalizer
// is the only code allowed to interpret it.
type RawCaseRow struct {
	CaseType     string   `json:"case_type"`
	Outcome      string   `json:"outcome"`
	Status       string   `json:"status"`
	CaseValue    *float64 `json:"case_value,omitempty"`
	FilingDate   string   `json:"filing_date,omitempty"`
	DecisionDate string   `json:"decision_date,omitempty"`
}

// CaseRecord is the canonical unit every analyzer consumes.
//
// Invariants:
//   - CaseType and Outcome are never empty; missing values carry the
//     sentinel constants above
//   - FilingDate and DecisionDate are nil when the raw value was absent or
//     unparsable, never the zero time
//   - A record without DecisionDate is excluded from temporal and duration
//     analysis but still counts toward raw totals
type CaseRecord struct {
	CaseType     string     `json:"case_type"`
	Outcome      string     `json:"outcome"`
	Status       string     `json:"status"`
	CaseValue    *float64   `json:"case_value,omitempty"`
	FilingDate   *time.Time `json:"filing_date,omitempty"`
	DecisionDate *time.Time `json:"decision_date,omitempty"`
}

// HasDecisionDate reports whether the record qualifies for temporal analysis.
func (r CaseRecord) HasDecisionDate() bool {
	return r.DecisionDate != nil
}

// HasDuration reports whether the record qualifies for time-to-ruling
// analysis, which needs both ends of the filing→decision interval.
func (r CaseRecord) HasDuration() bool {
	return r.FilingDate != nil && r.DecisionDate != nil
}

// Classified reports whether the record carries a real case type.
func (r CaseRecord) Classified() bool {
	return r.CaseType != CaseTypeUnclassified
}

// Decided reports whether the record carries a real outcome.
func (r CaseRecord) Decided() bool {
	return r.Outcome != OutcomeUnknown
}
