package engine

import (
	"sort"
	"strings"
	"time"

	"judgefinder/internal/analytics/config"
	"judgefinder/internal/analytics/models"
)

// ComputeTimeToRuling derives duration statistics from records that carry
// both a filing and a decision date, optionally narrowed by filter.
//
// All statistics are empirical order statistics off the sorted duration
// array; no distributional model is fitted. With zero usable records every
// scalar output is nil and the curve is empty; the estimator never
// fabricates values.
func ComputeTimeToRuling(records []models.CaseRecord, filter models.RulingFilter, cfg config.Config) models.TimeToRulingSummary {
	durations := collectDurations(records, filter)
	n := len(durations)
	summary := models.TimeToRulingSummary{
		SampleSize:    n,
		SurvivalCurve: []models.SurvivalPoint{},
	}
	if n == 0 {
		return summary
	}

	sort.Ints(durations)

	summary.MinDays = intPtr(durations[0])
	summary.MaxDays = intPtr(durations[n-1])
	summary.MedianDays = float64Ptr(median(durations))
	summary.IntervalLow = intPtr(durations[quantileIndex(n, cfg.IntervalLowQuantile)])
	summary.IntervalHigh = intPtr(durations[quantileIndex(n, cfg.IntervalHighQuantile)])
	summary.SurvivalCurve = survivalCurve(durations, cfg.SurvivalPointBudget)
	return summary
}

func collectDurations(records []models.CaseRecord, filter models.RulingFilter) []int {
	outcomeNeedle := strings.ToLower(filter.OutcomeContains)
	durations := make([]int, 0, len(records))
	for _, rec := range records {
		if !rec.HasDuration() {
			continue
		}
		if filter.CaseType != "" && rec.CaseType != filter.CaseType {
			continue
		}
		if outcomeNeedle != "" && !strings.Contains(strings.ToLower(rec.Outcome), outcomeNeedle) {
			continue
		}
		// Floor at zero: a decision date before the filing date is a
		// data-entry inversion, not a negative duration.
		days := int(rec.DecisionDate.Sub(*rec.FilingDate) / (24 * time.Hour))
		if days < 0 {
			days = 0
		}
		durations = append(durations, days)
	}
	return durations
}

// median is the standard sample median: the middle element, or the average
// of the two middle elements on an even count. Input must be sorted.
func median(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
}

// quantileIndex maps a quantile to a position in a sorted array of length n.
// This is a plain order-statistic read, intentionally not an interpolated
// percentile: the resulting interval is labeled as an empirical range, not a
// confidence interval.
func quantileIndex(n int, q float64) int {
	idx := int(q * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// survivalCurve samples the empirical right-tail survival function
// P(duration > t) at a fixed stride over the sorted durations. Probability at
// index i is (n-i)/n, so the emitted sequence is non-increasing by
// construction and evaluated only at observed values, with no interpolation
// across gaps. The stride bounds the point count regardless of input size.
func survivalCurve(sorted []int, pointBudget int) []models.SurvivalPoint {
	n := len(sorted)
	stride := n / pointBudget
	if stride < 1 {
		stride = 1
	}

	points := make([]models.SurvivalPoint, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		points = append(points, models.SurvivalPoint{
			ElapsedDays:         sorted[i],
			SurvivalProbability: float64(n-i) / float64(n),
		})
	}
	return points
}

func intPtr(v int) *int { return &v }

func float64Ptr(v float64) *float64 { return &v }
