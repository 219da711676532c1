package engine

import "judgefinder/internal/analytics/models"

// AnalyzeOutcomes computes the outcome-rate distribution for one scope: a
// single case type, or models.ScopeOverall (also selected by an empty scope).
//
// The denominator is the number of in-scope records with a real (non-sentinel)
// outcome, and it is returned as SampleSize so the rates are never presented
// unqualified. An empty scope set yields an empty rates map and SampleSize 0,
// never NaN.
func AnalyzeOutcomes(records []models.CaseRecord, scope string) models.OutcomeAnalysis {
	if scope == "" {
		scope = models.ScopeOverall
	}
	analysis := models.OutcomeAnalysis{
		Scope: scope,
		Rates: make(map[string]float64),
	}

	counts := make(map[string]int)
	for _, rec := range records {
		if scope != models.ScopeOverall && rec.CaseType != scope {
			continue
		}
		if !rec.Decided() {
			continue
		}
		counts[rec.Outcome]++
		analysis.SampleSize++
	}

	if analysis.SampleSize == 0 {
		return analysis
	}
	for outcome, n := range counts {
		analysis.Rates[outcome] = float64(n) / float64(analysis.SampleSize)
	}
	return analysis
}
