//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"judgefinder/internal/analytics/models"
	"judgefinder/internal/analytics/store/postgres"
	"judgefinder/pkg/domain"
)

type PostgresStoreSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("judgefinder"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.pool = pool

	s.store = postgres.New(pool)
	s.Require().NoError(s.store.EnsureSchema(ctx))
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE cases")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestInsertAndFetchByJudge() {
	ctx := context.Background()
	judge := domain.JudgeID(uuid.New())
	court := domain.CourtID(uuid.New())

	err := s.store.InsertCases(ctx, judge, court, []models.RawCaseRow{
		{CaseType: "civil", Outcome: "granted", Status: "closed", FilingDate: "2024-01-01", DecisionDate: "2024-01-11"},
		{CaseType: "civil", Outcome: "denied", Status: "open"},
	})
	s.Require().NoError(err)

	all, err := s.store.RecordsByJudge(ctx, judge, false)
	s.Require().NoError(err)
	s.Len(all, 2)

	decided, err := s.store.RecordsByJudge(ctx, judge, true)
	s.Require().NoError(err)
	s.Require().Len(decided, 1)
	s.Equal("2024-01-11", decided[0].DecisionDate)
	s.Equal("2024-01-01", decided[0].FilingDate)
}

func (s *PostgresStoreSuite) TestRecordsByCourtUnionsPeers() {
	ctx := context.Background()
	court := domain.CourtID(uuid.New())
	otherCourt := domain.CourtID(uuid.New())

	s.Require().NoError(s.store.InsertCases(ctx, domain.JudgeID(uuid.New()), court,
		[]models.RawCaseRow{{CaseType: "civil", Outcome: "granted"}}))
	s.Require().NoError(s.store.InsertCases(ctx, domain.JudgeID(uuid.New()), court,
		[]models.RawCaseRow{{CaseType: "tax", Outcome: "denied"}}))
	s.Require().NoError(s.store.InsertCases(ctx, domain.JudgeID(uuid.New()), otherCourt,
		[]models.RawCaseRow{{CaseType: "family", Outcome: "granted"}}))

	rows, err := s.store.RecordsByCourt(ctx, court)
	s.Require().NoError(err)
	s.Len(rows, 2)
}

func (s *PostgresStoreSuite) TestUnparsableDatesStoredAsNull() {
	ctx := context.Background()
	judge := domain.JudgeID(uuid.New())

	err := s.store.InsertCases(ctx, judge, domain.CourtID{}, []models.RawCaseRow{
		{CaseType: "civil", Outcome: "granted", FilingDate: "garbage", DecisionDate: "2024-01-11"},
	})
	s.Require().NoError(err)

	rows, err := s.store.RecordsByJudge(ctx, judge, false)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Empty(rows[0].FilingDate, "unparsable date round-trips as absent")
	s.Equal("2024-01-11", rows[0].DecisionDate)

	// Sanity: RFC3339 inputs land on the date column.
	err = s.store.InsertCases(ctx, judge, domain.CourtID{}, []models.RawCaseRow{
		{CaseType: "tax", Outcome: "denied", DecisionDate: time.Date(2023, 5, 2, 10, 0, 0, 0, time.UTC).Format(time.RFC3339)},
	})
	s.Require().NoError(err)
}
