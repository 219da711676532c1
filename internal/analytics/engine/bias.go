package engine

import (
	"math"
	"sort"

	"judgefinder/internal/analytics/config"
	"judgefinder/internal/analytics/models"
)

// Monitored indicator names. Per-case-type indicators append ":<case_type>".
const (
	IndicatorOutcomeDeviation      = "outcome_rate_deviation"
	IndicatorCaseTypeConcentration = "case_type_concentration"
	IndicatorTemporalVolatility    = "temporal_volatility"
)

// ComputeBiasIndicators derives named deviation statistics from the three
// analyzers' outputs, compared against a court baseline when one exists.
//
// With a baseline, deviations are subject_rate − baseline_rate. Without one,
// each indicator falls back to dispersion within the subject's own
// distribution, and BaselineUsed is false so consumers can tell the modes
// apart. Indicators below the confidence floor are labeled "low" and still
// reported; hiding a weak signal is worse than qualifying it.
func ComputeBiasIndicators(
	patterns []models.CaseTypePattern,
	outcomes []models.OutcomeAnalysis,
	temporal []models.TemporalBucket,
	baseline *models.CourtBaseline,
	cfg config.Config,
) []models.BiasIndicator {
	indicators := make([]models.BiasIndicator, 0, len(patterns)+3)

	byScope := make(map[string]models.OutcomeAnalysis, len(outcomes))
	for _, oa := range outcomes {
		byScope[oa.Scope] = oa
	}
	overall := byScope[models.ScopeOverall]

	// Overall outcome-rate deviation.
	if ind, ok := outcomeDeviation(overall, models.ScopeOverall, baseline, cfg); ok {
		indicators = append(indicators, ind)
	}

	// Per-case-type outcome-rate deviation, in pattern display order.
	for _, p := range patterns {
		if ind, ok := outcomeDeviation(byScope[p.CaseType], p.CaseType, baseline, cfg); ok {
			indicators = append(indicators, ind)
		}
	}

	if ind, ok := caseTypeConcentration(patterns, baseline, cfg); ok {
		indicators = append(indicators, ind)
	}
	if ind, ok := temporalVolatility(overall, temporal, cfg); ok {
		indicators = append(indicators, ind)
	}

	return indicators
}

// outcomeDeviation measures how far the scope's dominant outcome rate sits
// from the reference rate for that same outcome.
func outcomeDeviation(subject models.OutcomeAnalysis, scope string, baseline *models.CourtBaseline, cfg config.Config) (models.BiasIndicator, bool) {
	if subject.SampleSize == 0 {
		return models.BiasIndicator{}, false
	}
	label, rate := dominantOutcome(subject.Rates)

	ind := models.BiasIndicator{
		Name:       IndicatorOutcomeDeviation + ":" + scope,
		SampleSize: subject.SampleSize,
		Confidence: confidenceFor(subject.SampleSize, cfg),
	}

	if base, ok := baselineScope(baseline, scope); ok {
		ind.Deviation = rate - base.Rates[label]
		ind.BaselineUsed = true
		return ind, true
	}

	// No baseline: deviate against the subject's own distribution, a
	// uniform spread across the outcome labels observed in this scope.
	ind.Deviation = rate - 1.0/float64(len(subject.Rates))
	return ind, true
}

// caseTypeConcentration compares Herfindahl concentration of the subject's
// case-type shares against the baseline's (or against a uniform spread when
// no baseline exists). Positive deviation means the subject's docket is more
// concentrated than the reference.
func caseTypeConcentration(patterns []models.CaseTypePattern, baseline *models.CourtBaseline, cfg config.Config) (models.BiasIndicator, bool) {
	if len(patterns) == 0 {
		return models.BiasIndicator{}, false
	}
	sample := 0
	for _, p := range patterns {
		sample += p.Count
	}

	ind := models.BiasIndicator{
		Name:       IndicatorCaseTypeConcentration,
		SampleSize: sample,
		Confidence: confidenceFor(sample, cfg),
	}

	subjectHHI := herfindahl(patterns)
	if baseline != nil && len(baseline.CaseTypePatterns) > 0 {
		ind.Deviation = subjectHHI - herfindahl(baseline.CaseTypePatterns)
		ind.BaselineUsed = true
		return ind, true
	}
	ind.Deviation = subjectHHI - 1.0/float64(len(patterns))
	return ind, true
}

// temporalVolatility is the coefficient of variation of the dominant overall
// outcome's per-period rate. It is an own-distribution statistic regardless
// of baseline availability, so BaselineUsed stays false.
func temporalVolatility(overall models.OutcomeAnalysis, temporal []models.TemporalBucket, cfg config.Config) (models.BiasIndicator, bool) {
	if overall.SampleSize == 0 || len(temporal) == 0 {
		return models.BiasIndicator{}, false
	}
	label, _ := dominantOutcome(overall.Rates)

	// Only periods with at least one decided record observe a rate; the
	// zero-filled gap buckets carry no outcome evidence.
	rates := make([]float64, 0, len(temporal))
	for _, bucket := range temporal {
		if len(bucket.OutcomeRates) == 0 {
			continue
		}
		rates = append(rates, bucket.OutcomeRates[label])
	}
	if len(rates) == 0 {
		return models.BiasIndicator{}, false
	}

	ind := models.BiasIndicator{
		Name:       IndicatorTemporalVolatility,
		Deviation:  coefficientOfVariation(rates),
		SampleSize: overall.SampleSize,
		Confidence: confidenceFor(overall.SampleSize, cfg),
	}
	return ind, true
}

func baselineScope(baseline *models.CourtBaseline, scope string) (models.OutcomeAnalysis, bool) {
	if baseline == nil {
		return models.OutcomeAnalysis{}, false
	}
	oa, ok := baseline.Outcomes[scope]
	if !ok || oa.SampleSize == 0 {
		return models.OutcomeAnalysis{}, false
	}
	return oa, true
}

// dominantOutcome picks the highest-rate label, breaking ties on the
// lexicographically smaller label for determinism.
func dominantOutcome(rates map[string]float64) (string, float64) {
	labels := make([]string, 0, len(rates))
	for label := range rates {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best, bestRate := "", -1.0
	for _, label := range labels {
		if rates[label] > bestRate {
			best, bestRate = label, rates[label]
		}
	}
	return best, bestRate
}

func herfindahl(patterns []models.CaseTypePattern) float64 {
	sum := 0.0
	for _, p := range patterns {
		sum += p.ShareOfTotal * p.ShareOfTotal
	}
	return sum
}

func coefficientOfVariation(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return math.Sqrt(variance) / mean
}

// confidenceFor implements the documented labeling policy. The thresholds
// are a hard contract: sample sizes below the low floor are always "low",
// and consumers must never weigh a "low" deviation like a "high" one.
func confidenceFor(sampleSize int, cfg config.Config) models.Confidence {
	switch {
	case sampleSize < cfg.LowConfidenceFloor:
		return models.ConfidenceLow
	case sampleSize < cfg.ModerateConfidenceFloor:
		return models.ConfidenceModerate
	default:
		return models.ConfidenceHigh
	}
}
