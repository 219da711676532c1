// Package engine is the functional core of the judicial-analytics service:
// pure, side-effect-free transforms over an in-memory record set. The engine
// never fetches, caches, or persists anything; callers hand it
// already-fetched records and receive value-type results. Every numeric
// output carries the sample size it was computed from.
package engine

import (
	"strings"
	"time"

	"judgefinder/internal/analytics/models"
)

// Normalized is the output of one normalization pass.
type Normalized struct {
	Records []models.CaseRecord
	// Malformed counts rows where at least one field failed coercion. Such
	// rows are kept (with the failed field absent or sentinel-valued) so
	// volume totals stay accurate; they are excluded only from statistics
	// that require the missing field.
	Malformed int
}

// Normalize coerces raw case rows into canonical records, field by field.
// It never fails on a malformed row: unparsable dates become absent, missing
// categories become sentinels.
func Normalize(rows []models.RawCaseRow) Normalized {
	out := Normalized{Records: make([]models.CaseRecord, 0, len(rows))}
	for _, row := range rows {
		rec, clean := normalizeRow(row)
		if !clean {
			out.Malformed++
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

func normalizeRow(row models.RawCaseRow) (models.CaseRecord, bool) {
	clean := true

	rec := models.CaseRecord{
		CaseType:  normalizeCategory(row.CaseType, models.CaseTypeUnclassified),
		Outcome:   normalizeCategory(row.Outcome, models.OutcomeUnknown),
		Status:    strings.TrimSpace(row.Status),
		CaseValue: row.CaseValue,
	}

	if d, ok := parseDate(row.FilingDate); ok {
		rec.FilingDate = d
	} else {
		clean = false
	}
	if d, ok := parseDate(row.DecisionDate); ok {
		rec.DecisionDate = d
	} else {
		clean = false
	}

	return rec, clean
}

func normalizeCategory(raw, sentinel string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return sentinel
	}
	return v
}

// parseDate returns (nil, true) for an absent value, (nil, false) for an
// unparsable one, and a non-nil time for a parsable one. Absent means absent,
// never the zero time.
func parseDate(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	for _, layout := range models.DateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}
