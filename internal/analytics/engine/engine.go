package engine

import (
	"judgefinder/internal/analytics/config"
	"judgefinder/internal/analytics/models"
)

// ComputeBiasMetrics runs the full bias pipeline over an already-normalized
// record set: case-type patterns, outcome analyses (overall plus one per
// case type), temporal patterns, and the combined bias indicators.
//
// baseline may be nil, which switches the indicator calculator into
// internal-dispersion mode. The function is pure and re-entrant: calling it
// twice on the same immutable record set yields identical output.
func ComputeBiasMetrics(records []models.CaseRecord, baseline *models.CourtBaseline, cfg config.Config) models.BiasMetrics {
	patterns := AnalyzeCaseTypes(records)

	outcomes := make([]models.OutcomeAnalysis, 0, len(patterns)+1)
	outcomes = append(outcomes, AnalyzeOutcomes(records, models.ScopeOverall))
	for _, p := range patterns {
		outcomes = append(outcomes, AnalyzeOutcomes(records, p.CaseType))
	}

	temporal := AnalyzeTemporal(records)

	return models.BiasMetrics{
		CaseTypePatterns: patterns,
		OutcomeAnalyses:  outcomes,
		TemporalPatterns: temporal,
		BiasIndicators:   ComputeBiasIndicators(patterns, outcomes, temporal, baseline, cfg),
		SampleSize:       len(records),
		BaselineUsed:     baseline != nil,
	}
}
