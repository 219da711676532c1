// Package service orchestrates one analytics request: fetch the subject's
// records and the court baseline, run the pure engine, and qualify the
// output. All statistical logic lives in the engine; this layer owns I/O,
// caching, and instrumentation.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"judgefinder/internal/analytics/config"
	"judgefinder/internal/analytics/engine"
	"judgefinder/internal/analytics/metrics"
	"judgefinder/internal/analytics/models"
	"judgefinder/pkg/domain"
	dErrors "judgefinder/pkg/domain-errors"
)

// CaseStore is the record storage collaborator. Fetch failures propagate to
// the caller unchanged; retries, if any, belong to the store.
type CaseStore interface {
	RecordsByJudge(ctx context.Context, judgeID domain.JudgeID, onlyDecided bool) ([]models.RawCaseRow, error)
	RecordsByCourt(ctx context.Context, courtID domain.CourtID) ([]models.RawCaseRow, error)
	InsertCases(ctx context.Context, judgeID domain.JudgeID, courtID domain.CourtID, rows []models.RawCaseRow) error
}

// BaselineCache holds computed court baselines between requests. Optional;
// a nil cache means every request recomputes.
type BaselineCache interface {
	Get(ctx context.Context, courtID domain.CourtID) (*models.CourtBaseline, bool, error)
	Set(ctx context.Context, courtID domain.CourtID, baseline *models.CourtBaseline) error
}

// Service computes judicial analytics over stored case records.
type Service struct {
	store   CaseStore
	cache   BaselineCache
	cfg     config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithBaselineCache enables baseline caching.
func WithBaselineCache(cache BaselineCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs the analytics service.
func New(store CaseStore, cfg config.Config, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "case store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInvariantViolation, "engine config", err)
	}

	s := &Service{
		store:  store,
		cfg:    cfg,
		logger: slog.Default(),
		tracer: otel.Tracer("judgefinder/analytics"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// BiasMetrics computes the full bias profile for one judge. A zero courtID
// skips baseline comparison entirely; a courtID with no peer records falls
// back to internal-dispersion indicators, annotated via BaselineUsed.
func (s *Service) BiasMetrics(ctx context.Context, judgeID domain.JudgeID, courtID domain.CourtID) (*models.BiasMetrics, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.BiasMetrics",
		trace.WithAttributes(attribute.String("judge_id", judgeID.String())))
	defer span.End()
	start := time.Now()

	// Subject records and court baseline have no ordering dependency; fetch
	// them concurrently and join before the indicator calculator runs.
	var (
		rows     []models.RawCaseRow
		baseline *models.CourtBaseline
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.RecordsByJudge(gctx, judgeID, false)
		return err
	})
	if !courtID.IsZero() {
		g.Go(func() error {
			var err error
			baseline, err = s.courtBaseline(gctx, courtID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.observeFetchFailure()
		s.logger.ErrorContext(ctx, "record fetch failed",
			"judge_id", judgeID,
			"error", err,
		)
		return nil, err
	}

	normalized := engine.Normalize(rows)
	result := engine.ComputeBiasMetrics(normalized.Records, baseline, s.cfg)
	result.MalformedRecords = normalized.Malformed

	s.observeCompute("bias_metrics", len(rows), normalized.Malformed, start)
	s.logger.InfoContext(ctx, "bias metrics computed",
		"judge_id", judgeID,
		"sample_size", result.SampleSize,
		"baseline_used", result.BaselineUsed,
		"malformed", normalized.Malformed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &result, nil
}

// TimeToRuling computes the duration distribution for one judge, restricted
// to rows that already carry a decision date.
func (s *Service) TimeToRuling(ctx context.Context, judgeID domain.JudgeID, filter models.RulingFilter) (*models.TimeToRulingSummary, error) {
	ctx, span := s.tracer.Start(ctx, "analytics.TimeToRuling",
		trace.WithAttributes(attribute.String("judge_id", judgeID.String())))
	defer span.End()
	start := time.Now()

	rows, err := s.store.RecordsByJudge(ctx, judgeID, true)
	if err != nil {
		s.observeFetchFailure()
		s.logger.ErrorContext(ctx, "record fetch failed",
			"judge_id", judgeID,
			"error", err,
		)
		return nil, err
	}

	normalized := engine.Normalize(rows)
	summary := engine.ComputeTimeToRuling(normalized.Records, filter, s.cfg)

	s.observeCompute("time_to_ruling", len(rows), normalized.Malformed, start)
	s.logger.InfoContext(ctx, "time-to-ruling computed",
		"judge_id", judgeID,
		"sample_size", summary.SampleSize,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &summary, nil
}

// IngestCases bulk-loads raw rows for a judge. Rows are stored as delivered;
// normalization happens at analysis time so a fixed normalizer bug never
// requires re-ingestion.
func (s *Service) IngestCases(ctx context.Context, judgeID domain.JudgeID, courtID domain.CourtID, rows []models.RawCaseRow) (int, error) {
	if len(rows) == 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "no case rows supplied")
	}
	if err := s.store.InsertCases(ctx, judgeID, courtID, rows); err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "cases ingested",
		"judge_id", judgeID,
		"count", len(rows),
	)
	return len(rows), nil
}

// courtBaseline returns the cached baseline when available, otherwise
// aggregates peer records. A nil baseline (no peers) is a valid result and
// is not cached, so a court gaining its first records becomes visible
// immediately.
func (s *Service) courtBaseline(ctx context.Context, courtID domain.CourtID) (*models.CourtBaseline, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, courtID)
		if err != nil {
			s.logger.WarnContext(ctx, "baseline cache read failed",
				"court_id", courtID,
				"error", err,
			)
		} else if ok {
			if s.metrics != nil {
				s.metrics.BaselineCacheHits.Inc()
			}
			return cached, nil
		}
	}
	if s.metrics != nil {
		s.metrics.BaselineCacheMiss.Inc()
	}

	peerRows, err := s.store.RecordsByCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	baseline := engine.ComputeBaseline(engine.Normalize(peerRows).Records)

	if baseline != nil && s.cache != nil {
		if err := s.cache.Set(ctx, courtID, baseline); err != nil {
			s.logger.WarnContext(ctx, "baseline cache write failed",
				"court_id", courtID,
				"error", err,
			)
		}
	}
	return baseline, nil
}

func (s *Service) observeCompute(kind string, records, malformed int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.AnalysesComputed.WithLabelValues(kind).Inc()
	s.metrics.ComputeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	s.metrics.RecordsNormalized.Add(float64(records))
	s.metrics.MalformedRecords.Add(float64(malformed))
}

func (s *Service) observeFetchFailure() {
	if s.metrics != nil {
		s.metrics.UpstreamFetchFails.Inc()
	}
}
