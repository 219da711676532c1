package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"judgefinder/internal/analytics"
	analyticsconfig "judgefinder/internal/analytics/config"
	analyticsmetrics "judgefinder/internal/analytics/metrics"
	"judgefinder/internal/analytics/service"
	"judgefinder/internal/analytics/store/baselinecache"
	"judgefinder/internal/analytics/store/memory"
	pgstore "judgefinder/internal/analytics/store/postgres"
	httpapi "judgefinder/internal/http"
	jwttoken "judgefinder/internal/jwt_token"
	"judgefinder/internal/platform/config"
	"judgefinder/internal/platform/httpserver"
	"judgefinder/internal/platform/logger"
	"judgefinder/internal/platform/postgres"
	platformredis "judgefinder/internal/platform/redis"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the analytics packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	engineCfg := analyticsconfig.Default()
	if cfg.AnalyticsConfigPath != "" {
		loaded, err := analyticsconfig.Load(cfg.AnalyticsConfigPath)
		if err != nil {
			log.Error("failed to load analytics config", "path", cfg.AnalyticsConfigPath, "error", err)
			os.Exit(1)
		}
		engineCfg = loaded
	}

	var caseStore service.CaseStore
	var healthChecks []httpapi.DependencyCheck
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := pgstore.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}
		caseStore = store
		healthChecks = append(healthChecks, httpapi.DependencyCheck{Name: "postgres", Check: pool.Ping})
		log.Info("using postgres case store")
	} else {
		store := memory.New()
		judgeID, courtID := memory.SeedDemoCourt(store)
		caseStore = store
		log.Info("using in-memory case store with demo data",
			"demo_judge_id", judgeID,
			"demo_court_id", courtID,
		)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(analyticsmetrics.New()),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithBaselineCache(baselinecache.New(redisClient.Client)))
		healthChecks = append(healthChecks, httpapi.DependencyCheck{Name: "redis", Check: redisClient.Health})
		log.Info("baseline cache enabled")
	}

	svc, err := analytics.NewService(caseStore, engineCfg, opts...)
	if err != nil {
		log.Error("failed to construct analytics service", "error", err)
		os.Exit(1)
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "judgefinder", "judgefinder")
	handler := analytics.NewHandler(svc, log, jwttoken.NewJWTServiceAdapter(jwtService))
	router := httpapi.NewRouter(handler, log, healthChecks...)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting judgefinder", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
