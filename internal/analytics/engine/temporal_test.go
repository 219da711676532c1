package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judgefinder/internal/analytics/models"
)

func decidedIn(year int, caseType, outcome string) models.CaseRecord {
	d := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	return models.CaseRecord{CaseType: caseType, Outcome: outcome, DecisionDate: &d}
}

func TestAnalyzeTemporal(t *testing.T) {
	t.Run("buckets are gap-free across the full span", func(t *testing.T) {
		buckets := AnalyzeTemporal([]models.CaseRecord{
			decidedIn(2019, "civil", "granted"),
			decidedIn(2023, "civil", "denied"),
		})

		require.Len(t, buckets, 5, "every year between earliest and latest appears")
		labels := make([]string, 0, len(buckets))
		for _, b := range buckets {
			labels = append(labels, b.Period)
		}
		assert.Equal(t, []string{"2019", "2020", "2021", "2022", "2023"}, labels)

		assert.Equal(t, 1, buckets[0].RecordCount)
		assert.Equal(t, 0, buckets[1].RecordCount, "empty year emits a zero-filled bucket")
		assert.Empty(t, buckets[1].OutcomeRates)
	})

	t.Run("per-bucket outcome rates use decided records only", func(t *testing.T) {
		buckets := AnalyzeTemporal([]models.CaseRecord{
			decidedIn(2024, "civil", "granted"),
			decidedIn(2024, "civil", "granted"),
			decidedIn(2024, "civil", "denied"),
			decidedIn(2024, "civil", models.OutcomeUnknown),
		})

		require.Len(t, buckets, 1)
		assert.Equal(t, 4, buckets[0].RecordCount, "unknown outcomes still count toward volume")
		assert.InDelta(t, 2.0/3.0, buckets[0].OutcomeRates["granted"], 1e-9)
		assert.InDelta(t, 1.0/3.0, buckets[0].OutcomeRates["denied"], 1e-9)
	})

	t.Run("records without decision dates are excluded", func(t *testing.T) {
		filing := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		buckets := AnalyzeTemporal([]models.CaseRecord{
			{CaseType: "civil", Outcome: "granted", FilingDate: &filing},
		})
		assert.Empty(t, buckets)
	})

	t.Run("empty input yields empty pattern", func(t *testing.T) {
		assert.Empty(t, AnalyzeTemporal(nil))
	})
}
