package engine

import "judgefinder/internal/analytics/models"

// ComputeBaseline aggregates case-type and outcome statistics over the union
// of records for every decision-maker sharing a court.
//
// A nil return is the explicit "no baseline available" result: when no peer
// records exist the caller must fall back to internal-dispersion bias
// computation instead of comparing against a misleading zero-filled
// distribution. The returned baseline is treated as read-only by all
// consumers within one request cycle; the engine never caches it.
func ComputeBaseline(peerRecords []models.CaseRecord) *models.CourtBaseline {
	if len(peerRecords) == 0 {
		return nil
	}

	patterns := AnalyzeCaseTypes(peerRecords)
	outcomes := make(map[string]models.OutcomeAnalysis, len(patterns)+1)
	outcomes[models.ScopeOverall] = AnalyzeOutcomes(peerRecords, models.ScopeOverall)
	for _, p := range patterns {
		outcomes[p.CaseType] = AnalyzeOutcomes(peerRecords, p.CaseType)
	}

	return &models.CourtBaseline{
		CaseTypePatterns: patterns,
		Outcomes:         outcomes,
		SampleSize:       len(peerRecords),
	}
}
