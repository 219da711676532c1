package analytics

import (
	"log/slog"

	"judgefinder/internal/analytics/config"
	"judgefinder/internal/analytics/handler"
	"judgefinder/internal/analytics/service"
	"judgefinder/internal/platform/middleware"
)

// Service exposes judge analytics orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the analytics service.
type Handler = handler.Handler

// NewService constructs the analytics service with required dependencies.
func NewService(store service.CaseStore, cfg config.Config, opts ...service.Option) (*Service, error) {
	return service.New(store, cfg, opts...)
}

// NewHandler constructs an HTTP handler for the analytics routes.
func NewHandler(s *Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return handler.New(s, logger, jwtValidator)
}
