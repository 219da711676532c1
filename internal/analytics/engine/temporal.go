package engine

import (
	"strconv"

	"judgefinder/internal/analytics/models"
)

// AnalyzeTemporal buckets records by calendar year of decision date, spanning
// the earliest through latest decision year inclusive.
//
// The full period range is generated before aggregation, so a year with zero
// activity appears as a zero-filled bucket rather than a gap. Downstream
// trend and slope computations rely on the time scale not being compressed.
// Records without a parsable decision date are excluded here but still count
// toward raw totals elsewhere.
func AnalyzeTemporal(records []models.CaseRecord) []models.TemporalBucket {
	minYear, maxYear := 0, 0
	for _, rec := range records {
		if !rec.HasDecisionDate() {
			continue
		}
		y := rec.DecisionDate.Year()
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	if minYear == 0 {
		return []models.TemporalBucket{}
	}

	buckets := make([]models.TemporalBucket, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		byOutcome := make(map[string]int)
		count := 0
		decided := 0
		for _, rec := range records {
			if !rec.HasDecisionDate() || rec.DecisionDate.Year() != y {
				continue
			}
			count++
			if rec.Decided() {
				byOutcome[rec.Outcome]++
				decided++
			}
		}

		rates := make(map[string]float64)
		for outcome, n := range byOutcome {
			rates[outcome] = float64(n) / float64(decided)
		}
		buckets = append(buckets, models.TemporalBucket{
			Period:       strconv.Itoa(y),
			RecordCount:  count,
			OutcomeRates: rates,
		})
	}
	return buckets
}
