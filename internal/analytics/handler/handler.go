package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"judgefinder/internal/analytics/engine"
	"judgefinder/internal/analytics/models"
	"judgefinder/internal/platform/middleware"
	"judgefinder/pkg/domain"
	dErrors "judgefinder/pkg/domain-errors"
	"judgefinder/pkg/platform/httputil"
	"judgefinder/pkg/requestcontext"
)

// Service defines the interface for analytics operations.
type Service interface {
	BiasMetrics(ctx context.Context, judgeID domain.JudgeID, courtID domain.CourtID) (*models.BiasMetrics, error)
	TimeToRuling(ctx context.Context, judgeID domain.JudgeID, filter models.RulingFilter) (*models.TimeToRulingSummary, error)
	IngestCases(ctx context.Context, judgeID domain.JudgeID, courtID domain.CourtID, rows []models.RawCaseRow) (int, error)
}

// Handler wires judge analytics endpoints to the analytics service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	jwtValidator middleware.JWTValidator
}

// New constructs an analytics handler with its dependencies.
func New(service Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		service:      service,
		logger:       logger,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the analytics endpoints on the router. Read endpoints are
// public; case ingestion requires an admin token.
func (h *Handler) Register(r chi.Router) {
	r.Get("/judges/{judgeID}/bias-metrics", h.HandleBiasMetrics)
	r.Get("/judges/{judgeID}/time-to-ruling", h.HandleTimeToRuling)

	adminRouter := chi.NewRouter()
	adminRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	adminRouter.Use(middleware.RequireAdmin(h.logger))
	adminRouter.Post("/cases", h.HandleIngestCases)
	r.Mount("/admin", adminRouter)
}

// HandleBiasMetrics handles GET /judges/{judgeID}/bias-metrics requests.
// An optional court_id query parameter selects the peer baseline.
func (h *Handler) HandleBiasMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	judgeID, err := domain.ParseJudgeID(chi.URLParam(r, "judgeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var courtID domain.CourtID
	if raw := r.URL.Query().Get("court_id"); raw != "" {
		courtID, err = domain.ParseCourtID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	result, err := h.service.BiasMetrics(ctx, judgeID, courtID)
	if err != nil {
		h.writeServiceError(ctx, w, requestID, "bias metrics computation failed", judgeID, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, BiasMetricsResponse{
		JudgeID: judgeID.String(),
		Metrics: result,
	})
}

// HandleTimeToRuling handles GET /judges/{judgeID}/time-to-ruling requests.
// case_type and outcome query parameters filter the underlying cases, and
// format=csv switches the response to the survival table.
func (h *Handler) HandleTimeToRuling(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	judgeID, err := domain.ParseJudgeID(chi.URLParam(r, "judgeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	filter := models.RulingFilter{
		CaseType:        query.Get("case_type"),
		OutcomeContains: query.Get("outcome"),
	}

	summary, err := h.service.TimeToRuling(ctx, judgeID, filter)
	if err != nil {
		h.writeServiceError(ctx, w, requestID, "time-to-ruling computation failed", judgeID, err)
		return
	}

	if query.Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		if err := engine.WriteSurvivalTable(w, *summary); err != nil {
			h.logger.ErrorContext(ctx, "failed to stream survival table",
				"request_id", requestID,
				"judge_id", judgeID,
				"error", err,
			)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TimeToRulingResponse{
		JudgeID: judgeID.String(),
		Summary: summary,
	})
}

// HandleIngestCases handles POST /admin/cases requests.
func (h *Handler) HandleIngestCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IngestCasesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	inserted, err := h.service.IngestCases(ctx, req.ParsedJudgeID(), req.ParsedCourtID(), req.Cases)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.writeServiceError(ctx, w, requestID, "case ingestion failed", req.ParsedJudgeID(), err)
		return
	}

	h.logger.InfoContext(ctx, "cases ingested",
		"request_id", requestID,
		"judge_id", req.ParsedJudgeID(),
		"inserted", inserted,
		"subject", middleware.GetSubject(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, IngestCasesResponse{Inserted: inserted})
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, requestID, msg string, judgeID domain.JudgeID, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestID,
		"judge_id", judgeID,
		"error", err,
	)
	if dErrors.HasCode(err, dErrors.CodeUnavailableUpstream) {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, msg))
}
