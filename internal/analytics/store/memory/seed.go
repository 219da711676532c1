package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"judgefinder/internal/analytics/models"
	"judgefinder/pkg/domain"
)

// SeedDemoCourt loads a small deterministic record set: one subject judge
// plus two peers on the same court, so both analysis endpoints return
// non-empty results out of the box.
func SeedDemoCourt(s *Store) (domain.JudgeID, domain.CourtID) {
	courtID := domain.CourtID(uuid.MustParse("6a1c2a44-9be2-4f11-8f84-0e43cd9f31aa"))
	subject := domain.JudgeID(uuid.MustParse("f0c1d706-25b1-4f3e-9c0d-8b2f14c3a9d1"))
	peerA := domain.JudgeID(uuid.MustParse("4c8f0f6e-3a3b-4d5c-9e2f-7b1a2c3d4e5f"))
	peerB := domain.JudgeID(uuid.MustParse("9d8c7b6a-5e4f-4a3b-8c2d-1e0f9a8b7c6d"))

	ctx := context.Background()
	_ = s.InsertCases(ctx, subject, courtID, demoRows(2019, 2024, "civil", "granted", 18))
	_ = s.InsertCases(ctx, subject, courtID, demoRows(2019, 2024, "civil", "denied", 6))
	_ = s.InsertCases(ctx, subject, courtID, demoRows(2020, 2024, "tax", "settled", 5))
	_ = s.InsertCases(ctx, peerA, courtID, demoRows(2019, 2024, "civil", "granted", 12))
	_ = s.InsertCases(ctx, peerA, courtID, demoRows(2019, 2024, "civil", "denied", 12))
	_ = s.InsertCases(ctx, peerB, courtID, demoRows(2020, 2024, "tax", "granted", 9))
	return subject, courtID
}

func demoRows(fromYear, toYear int, caseType, outcome string, n int) []models.RawCaseRow {
	rows := make([]models.RawCaseRow, 0, n)
	span := toYear - fromYear + 1
	for i := range n {
		year := fromYear + i%span
		month := 1 + i%12
		rows = append(rows, models.RawCaseRow{
			CaseType:     caseType,
			Outcome:      outcome,
			Status:       "closed",
			FilingDate:   fmt.Sprintf("%04d-%02d-01", year, month),
			DecisionDate: fmt.Sprintf("%04d-%02d-15", year, month),
		})
	}
	return rows
}
