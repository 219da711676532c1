// Package postgres persists case records in PostgreSQL via a pgx pool.
package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"judgefinder/internal/analytics/models"
	"judgefinder/pkg/domain"
	dErrors "judgefinder/pkg/domain-errors"
)

// Store is a PostgreSQL-backed case record store.
type Store struct {
	db *pgxpool.Pool
}

// New constructs a PostgreSQL-backed store over an existing pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS cases (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	judge_id      UUID NOT NULL,
	court_id      UUID,
	case_type     TEXT NOT NULL DEFAULT '',
	outcome       TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT '',
	case_value    DOUBLE PRECISION,
	filing_date   DATE,
	decision_date DATE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_cases_judge ON cases (judge_id);
CREATE INDEX IF NOT EXISTS idx_cases_court ON cases (court_id);
`

// EnsureSchema creates the cases table and its indexes if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return dErrors.Wrap(dErrors.CodeUnavailableUpstream, "ensure cases schema", err)
	}
	return nil
}

// RecordsByJudge returns all case rows for one judge. With onlyDecided set,
// rows without a decision date are filtered in the query so undecided
// matters never cross the wire.
func (s *Store) RecordsByJudge(ctx context.Context, judgeID domain.JudgeID, onlyDecided bool) ([]models.RawCaseRow, error) {
	query := `
		SELECT case_type, outcome, status, case_value, filing_date, decision_date
		FROM cases
		WHERE judge_id = $1`
	if onlyDecided {
		query += ` AND decision_date IS NOT NULL`
	}

	rows, err := s.db.Query(ctx, query, judgeID.String())
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailableUpstream, "query cases by judge", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// RecordsByCourt returns the union of case rows across every judge assigned
// to the court.
func (s *Store) RecordsByCourt(ctx context.Context, courtID domain.CourtID) ([]models.RawCaseRow, error) {
	query := `
		SELECT case_type, outcome, status, case_value, filing_date, decision_date
		FROM cases
		WHERE court_id = $1`

	rows, err := s.db.Query(ctx, query, courtID.String())
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailableUpstream, "query cases by court", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// InsertCases bulk-inserts raw rows for a judge. Unparsable dates are stored
// as NULL; the normalizer treats NULL and unparsable alike, so nothing is
// lost at this boundary.
func (s *Store) InsertCases(ctx context.Context, judgeID domain.JudgeID, courtID domain.CourtID, caseRows []models.RawCaseRow) error {
	batch := &pgx.Batch{}
	for _, row := range caseRows {
		var court *string
		if !courtID.IsZero() {
			c := courtID.String()
			court = &c
		}
		batch.Queue(`
			INSERT INTO cases (judge_id, court_id, case_type, outcome, status, case_value, filing_date, decision_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			judgeID.String(), court, row.CaseType, row.Outcome, row.Status,
			row.CaseValue, dateOrNil(row.FilingDate), dateOrNil(row.DecisionDate),
		)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()
	for range caseRows {
		if _, err := results.Exec(); err != nil {
			return dErrors.Wrap(dErrors.CodeUnavailableUpstream, "insert case rows", err)
		}
	}
	return nil
}

func scanRows(rows pgx.Rows) ([]models.RawCaseRow, error) {
	out := make([]models.RawCaseRow, 0)
	for rows.Next() {
		var (
			row     models.RawCaseRow
			filed   *time.Time
			decided *time.Time
			caseVal *float64
		)
		if err := rows.Scan(&row.CaseType, &row.Outcome, &row.Status, &caseVal, &filed, &decided); err != nil {
			return nil, dErrors.Wrap(dErrors.CodeUnavailableUpstream, "scan case row", err)
		}
		row.CaseValue = caseVal
		row.FilingDate = formatDate(filed)
		row.DecisionDate = formatDate(decided)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailableUpstream, "iterate case rows", err)
	}
	return out, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// dateOrNil maps an empty or unparsable raw date to NULL. It must accept
// exactly the layouts the normalizer accepts, or analytics coverage would
// depend on which store backend holds a row.
func dateOrNil(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range models.DateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
