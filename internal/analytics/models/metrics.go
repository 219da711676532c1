package models

// CaseTypePattern describes one case category's footprint in a record set.
//
// Invariant: ShareOfTotal values across a full pattern slice sum to 1.0
// (within floating tolerance) over the non-sentinel record set.
type CaseTypePattern struct {
	CaseType         string         `json:"case_type"`
	Count            int            `json:"count"`
	ShareOfTotal     float64        `json:"share_of_total"`
	OutcomeBreakdown map[string]int `json:"outcome_breakdown"`
}

// OutcomeAnalysis holds outcome-rate proportions for one scope (a case type
// or ScopeOverall).
//
// Invariants:
//   - Rates sum to 1.0 (within floating tolerance) whenever SampleSize > 0
//   - SampleSize is the exact denominator used to compute the rates and is
//     always reported alongside them, never separately
type OutcomeAnalysis struct {
	Scope      string             `json:"scope"`
	Rates      map[string]float64 `json:"rates"`
	SampleSize int                `json:"sample_size"`
}

// TemporalBucket is one period in a chronological pattern. Buckets are
// gap-free: a period with zero activity is emitted zero-filled, never
// skipped, so trend computations see the real time scale.
type TemporalBucket struct {
	Period       string             `json:"period"`
	RecordCount  int                `json:"record_count"`
	OutcomeRates map[string]float64 `json:"outcome_rates"`
}

// Confidence is a qualitative sample-size tag, not a formal p-value.
type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceModerate Confidence = "moderate"
	ConfidenceHigh     Confidence = "high"
)

// BiasIndicator is a named deviation statistic.
//
// Hard contract: SampleSize always accompanies Deviation so consumers can
// re-derive the confidence label, and an indicator below the confidence
// floor is reported with its "low" caveat rather than hidden.
type BiasIndicator struct {
	Name       string     `json:"name"`
	Deviation  float64    `json:"deviation"`
	SampleSize int        `json:"sample_size"`
	Confidence Confidence `json:"confidence"`
	// BaselineUsed distinguishes a peer-baseline deviation from the
	// internal-dispersion fallback used when no baseline exists.
	BaselineUsed bool `json:"baseline_used"`
}

// CourtBaseline aggregates the same statistics across every decision-maker
// assigned to one court. It is a read-only comparison reference valid for
// one analysis request; the engine never persists or mutates it.
type CourtBaseline struct {
	CaseTypePatterns []CaseTypePattern `json:"case_type_patterns"`
	// Outcomes is keyed by case type plus ScopeOverall.
	Outcomes   map[string]OutcomeAnalysis `json:"outcomes"`
	SampleSize int                        `json:"sample_size"`
}

// BiasMetrics is the combined output of one bias analysis request.
type BiasMetrics struct {
	CaseTypePatterns []CaseTypePattern `json:"case_type_patterns"`
	// OutcomeAnalyses holds the overall scope first, then one entry per
	// case type in pattern display order.
	OutcomeAnalyses  []OutcomeAnalysis `json:"outcome_analysis"`
	TemporalPatterns []TemporalBucket  `json:"temporal_patterns"`
	BiasIndicators   []BiasIndicator   `json:"bias_indicators"`
	SampleSize       int               `json:"sample_size"`
	MalformedRecords int               `json:"malformed_records"`
	BaselineUsed     bool              `json:"baseline_used"`
}

// SurvivalPoint is one sample of the empirical right-tail survival function
// P(duration > t), evaluated at an observed duration.
type SurvivalPoint struct {
	ElapsedDays         int     `json:"elapsed_days"`
	SurvivalProbability float64 `json:"survival_probability"`
}

// TimeToRulingSummary describes the filing→decision duration distribution.
//
// Invariants:
//   - scalar fields are nil when SampleSize is 0; the estimator never
//     fabricates values
//   - SurvivalProbability is monotonically non-increasing across the curve
//   - the curve is a strided projection of the empirical distribution,
//     bounded to a fixed maximum number of points regardless of input size
//
// IntervalLow/IntervalHigh are order-statistic percentile bounds (an
// empirical "80% range" by default), deliberately not a parametric
// confidence interval: the sample is not a simple random draw from a
// stable process.
type TimeToRulingSummary struct {
	SampleSize    int             `json:"sample_size"`
	MinDays       *int            `json:"min_days"`
	MaxDays       *int            `json:"max_days"`
	MedianDays    *float64        `json:"median_days"`
	IntervalLow   *int            `json:"interval_low"`
	IntervalHigh  *int            `json:"interval_high"`
	SurvivalCurve []SurvivalPoint `json:"survival_curve"`
}

// RulingFilter narrows the record set for time-to-ruling estimation.
// Zero values mean "no filtering" on that axis. OutcomeContains is a
// case-insensitive substring match.
type RulingFilter struct {
	CaseType        string `json:"case_type,omitempty"`
	OutcomeContains string `json:"outcome_contains,omitempty"`
}
