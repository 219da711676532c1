// Package memory provides an in-memory case record store for development and
// handler tests. It implements the same contract as the postgres store.
package memory

import (
	"context"
	"sync"

	"judgefinder/internal/analytics/models"
	"judgefinder/pkg/domain"
)

// Store keeps case rows per judge, with a judge→court assignment so court
// queries can union peer records.
type Store struct {
	mu      sync.RWMutex
	byJudge map[domain.JudgeID][]models.RawCaseRow
	courtOf map[domain.JudgeID]domain.CourtID
}

// New creates an empty in-memory case store.
func New() *Store {
	return &Store{
		byJudge: make(map[domain.JudgeID][]models.RawCaseRow),
		courtOf: make(map[domain.JudgeID]domain.CourtID),
	}
}

// RecordsByJudge returns all rows for one judge. With onlyDecided set, rows
// without a decision date value are filtered out at the storage boundary,
// mirroring the postgres query.
func (s *Store) RecordsByJudge(ctx context.Context, judgeID domain.JudgeID, onlyDecided bool) ([]models.RawCaseRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.byJudge[judgeID]
	out := make([]models.RawCaseRow, 0, len(rows))
	for _, row := range rows {
		if onlyDecided && row.DecisionDate == "" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// RecordsByCourt returns the union of rows across every judge assigned to
// the court.
func (s *Store) RecordsByCourt(ctx context.Context, courtID domain.CourtID) ([]models.RawCaseRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.RawCaseRow
	for judgeID, assigned := range s.courtOf {
		if assigned != courtID {
			continue
		}
		out = append(out, s.byJudge[judgeID]...)
	}
	return out, nil
}

// InsertCases appends rows for a judge and records the court assignment.
func (s *Store) InsertCases(ctx context.Context, judgeID domain.JudgeID, courtID domain.CourtID, rows []models.RawCaseRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byJudge[judgeID] = append(s.byJudge[judgeID], rows...)
	if !courtID.IsZero() {
		s.courtOf[judgeID] = courtID
	}
	return nil
}
