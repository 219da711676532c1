// Package httpapi assembles the top-level router: platform middleware,
// operational endpoints, and the versioned analytics API.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"judgefinder/internal/analytics"
	"judgefinder/internal/platform/middleware"
	"judgefinder/pkg/platform/httputil"
)

// DependencyCheck reports the health of one backing dependency (database,
// cache). A nil-error result means healthy.
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter wires platform middleware and mounts the analytics API under
// /api/v1. Business logic stays behind the analytics handler.
func NewRouter(analyticsHandler *analytics.Handler, logger *slog.Logger, checks ...DependencyCheck) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", handleHealth(logger, checks))
	r.Handle("/metrics", promhttp.Handler())

	apiRouter := chi.NewRouter()
	apiRouter.Use(timeoutMiddleware(30 * time.Second))
	analyticsHandler.Register(apiRouter)
	r.Mount("/api/v1", apiRouter)

	return r
}

// handleHealth pings every registered dependency. Any failure degrades the
// endpoint to 503 so orchestrators stop routing traffic here.
func handleHealth(logger *slog.Logger, checks []DependencyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		deps := make(map[string]string, len(checks))
		healthy := true
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				healthy = false
				deps[c.Name] = "unavailable"
				logger.WarnContext(ctx, "dependency health check failed",
					"dependency", c.Name,
					"error", err,
				)
				continue
			}
			deps[c.Name] = "ok"
		}

		status := http.StatusOK
		overall := "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}
		body := map[string]any{"status": overall}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		httputil.WriteJSON(w, status, body)
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"error":"timeout"}`)
	}
}
