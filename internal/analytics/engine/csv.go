package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"judgefinder/internal/analytics/models"
)

// WriteSurvivalTable serializes the survival curve as two-column
// (day, probability) tabular text, preserving curve ordering exactly.
func WriteSurvivalTable(w io.Writer, summary models.TimeToRulingSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"elapsed_days", "survival_probability"}); err != nil {
		return fmt.Errorf("write survival header: %w", err)
	}
	for _, p := range summary.SurvivalCurve {
		row := []string{
			strconv.Itoa(p.ElapsedDays),
			strconv.FormatFloat(p.SurvivalProbability, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write survival point: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
