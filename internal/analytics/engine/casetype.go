package engine

import (
	"sort"

	"judgefinder/internal/analytics/models"
)

// AnalyzeCaseTypes groups records by case category in a single pass and
// computes each category's count and share of the classified total.
//
// Shares are computed against the count of records with a non-sentinel case
// type, so a sentinel-only input yields an empty pattern slice rather than a
// division by zero. Display ordering is descending by count, then ascending
// by label, so equal counts render deterministically.
func AnalyzeCaseTypes(records []models.CaseRecord) []models.CaseTypePattern {
	byType := make(map[string]*models.CaseTypePattern)
	classified := 0

	for _, rec := range records {
		if !rec.Classified() {
			continue
		}
		classified++
		p, ok := byType[rec.CaseType]
		if !ok {
			p = &models.CaseTypePattern{
				CaseType:         rec.CaseType,
				OutcomeBreakdown: make(map[string]int),
			}
			byType[rec.CaseType] = p
		}
		p.Count++
		p.OutcomeBreakdown[rec.Outcome]++
	}

	if classified == 0 {
		return []models.CaseTypePattern{}
	}

	patterns := make([]models.CaseTypePattern, 0, len(byType))
	for _, p := range byType {
		p.ShareOfTotal = float64(p.Count) / float64(classified)
		patterns = append(patterns, *p)
	}

	sort.Slice(patterns, func(i, j int) bool {
		if patterns[i].Count != patterns[j].Count {
			return patterns[i].Count > patterns[j].Count
		}
		return patterns[i].CaseType < patterns[j].CaseType
	})
	return patterns
}
