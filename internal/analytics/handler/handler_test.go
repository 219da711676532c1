package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"judgefinder/internal/analytics/config"
	"judgefinder/internal/analytics/models"
	"judgefinder/internal/analytics/service"
	"judgefinder/internal/analytics/store/memory"
	jwttoken "judgefinder/internal/jwt_token"
	"judgefinder/pkg/domain"
)

// HandlerSuite provides shared test setup for analytics handler tests.
// Uses real components, not mocks: the in-memory store behind the real
// service, and a real JWT service for the admin routes.
type HandlerSuite struct {
	suite.Suite
	router http.Handler
	store  *memory.Store
	tokens *jwttoken.JWTService
	judge  domain.JudgeID
	court  domain.CourtID
}

func (s *HandlerSuite) SetupTest() {
	s.store = memory.New()
	s.judge = domain.JudgeID(uuid.New())
	s.court = domain.CourtID(uuid.New())
	s.tokens = jwttoken.NewJWTService("handler-test-key", "judgefinder", "judgefinder")

	svc, err := service.New(s.store, config.Default())
	require.NoError(s.T(), err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(svc, logger, jwttoken.NewJWTServiceAdapter(s.tokens))

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) seed(rows ...models.RawCaseRow) {
	require.NoError(s.T(), s.store.InsertCases(context.Background(), s.judge, s.court, rows))
}

func (s *HandlerSuite) adminToken() string {
	token, err := s.tokens.GenerateAccessToken("ops@example.test", "admin", time.Hour)
	require.NoError(s.T(), err)
	return token
}

func (s *HandlerSuite) TestBiasMetrics_InvalidJudgeID() {
	req := httptest.NewRequest(http.MethodGet, "/judges/not-a-uuid/bias-metrics", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestBiasMetrics_InvalidCourtID() {
	req := httptest.NewRequest(http.MethodGet,
		"/judges/"+s.judge.String()+"/bias-metrics?court_id=bogus", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestBiasMetrics_UnknownJudgeYieldsEmptyResult() {
	req := httptest.NewRequest(http.MethodGet,
		"/judges/"+uuid.NewString()+"/bias-metrics", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var resp BiasMetricsResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), 0, resp.Metrics.SampleSize)
	assert.Empty(s.T(), resp.Metrics.BiasIndicators)
}

func (s *HandlerSuite) TestBiasMetrics_Success() {
	s.seed(
		models.RawCaseRow{CaseType: "civil", Outcome: "granted", DecisionDate: "2024-01-11"},
		models.RawCaseRow{CaseType: "criminal", Outcome: "denied", DecisionDate: "2024-02-21"},
	)

	req := httptest.NewRequest(http.MethodGet,
		"/judges/"+s.judge.String()+"/bias-metrics?court_id="+s.court.String(), nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var resp BiasMetricsResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), s.judge.String(), resp.JudgeID)
	assert.Equal(s.T(), 2, resp.Metrics.SampleSize)
	assert.Len(s.T(), resp.Metrics.CaseTypePatterns, 2)
}

func (s *HandlerSuite) TestTimeToRuling_JSON() {
	s.seed(
		models.RawCaseRow{CaseType: "civil", Outcome: "granted", FilingDate: "2024-01-01", DecisionDate: "2024-01-11"},
		models.RawCaseRow{CaseType: "civil", Outcome: "denied", FilingDate: "2024-02-01", DecisionDate: "2024-02-21"},
	)

	req := httptest.NewRequest(http.MethodGet,
		"/judges/"+s.judge.String()+"/time-to-ruling", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var resp TimeToRulingResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), 2, resp.Summary.SampleSize)
	require.NotNil(s.T(), resp.Summary.MedianDays)
	assert.InDelta(s.T(), 15.0, *resp.Summary.MedianDays, 1e-9)
}

func (s *HandlerSuite) TestTimeToRuling_FilterByCaseType() {
	s.seed(
		models.RawCaseRow{CaseType: "civil", Outcome: "granted", FilingDate: "2024-01-01", DecisionDate: "2024-01-11"},
		models.RawCaseRow{CaseType: "criminal", Outcome: "denied", FilingDate: "2024-02-01", DecisionDate: "2024-02-21"},
	)

	req := httptest.NewRequest(http.MethodGet,
		"/judges/"+s.judge.String()+"/time-to-ruling?case_type=civil", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var resp TimeToRulingResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), 1, resp.Summary.SampleSize)
}

func (s *HandlerSuite) TestTimeToRuling_CSV() {
	s.seed(
		models.RawCaseRow{CaseType: "civil", Outcome: "granted", FilingDate: "2024-01-01", DecisionDate: "2024-01-11"},
		models.RawCaseRow{CaseType: "civil", Outcome: "denied", FilingDate: "2024-02-01", DecisionDate: "2024-02-21"},
	)

	req := httptest.NewRequest(http.MethodGet,
		"/judges/"+s.judge.String()+"/time-to-ruling?format=csv", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "text/csv", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Equal(s.T(), "elapsed_days,survival_probability", lines[0])
	assert.Greater(s.T(), len(lines), 1)
}

func (s *HandlerSuite) TestIngestCases_MissingToken() {
	req := httptest.NewRequest(http.MethodPost, "/admin/cases",
		bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestIngestCases_NonAdminToken() {
	token, err := s.tokens.GenerateAccessToken("reader@example.test", "viewer", time.Hour)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, "/admin/cases",
		bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusForbidden, rec.Code)
}

func (s *HandlerSuite) TestIngestCases_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/admin/cases",
		bytes.NewReader([]byte("not valid json")))
	req.Header.Set("Authorization", "Bearer "+s.adminToken())
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestIngestCases_EmptyBatch() {
	payload := IngestCasesRequest{
		JudgeID: s.judge.String(),
		CourtID: s.court.String(),
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/admin/cases", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+s.adminToken())
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestIngestCases_Success() {
	payload := IngestCasesRequest{
		JudgeID: s.judge.String(),
		CourtID: s.court.String(),
		Cases: []models.RawCaseRow{
			{CaseType: "civil", Outcome: "granted", FilingDate: "2024-01-01", DecisionDate: "2024-01-11"},
		},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/admin/cases", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+s.adminToken())
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusCreated, rec.Code)
	var resp IngestCasesResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), 1, resp.Inserted)

	rows, err := s.store.RecordsByJudge(context.Background(), s.judge, false)
	require.NoError(s.T(), err)
	assert.Len(s.T(), rows, 1)
}
