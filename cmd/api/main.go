// @title Numera API
// @version 1.0
// @description Accounts, numerology report generation with per-plan quotas, and report history.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pratik-mahalle/numera/internal/api/handlers"
	"github.com/pratik-mahalle/numera/internal/api/router"
	"github.com/pratik-mahalle/numera/internal/auth"
	"github.com/pratik-mahalle/numera/internal/config"
	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/validator"
	"github.com/pratik-mahalle/numera/internal/ratelimit"
	"github.com/pratik-mahalle/numera/internal/repository/memory"
	"github.com/pratik-mahalle/numera/internal/repository/postgres"
	"github.com/pratik-mahalle/numera/internal/services"
	"github.com/pratik-mahalle/numera/internal/worker"
	"github.com/pratik-mahalle/numera/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{Level: "info"}).FatalWithErr(err, "Failed to load config")
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	users, reports, pingers, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.FatalWithErr(err, "Failed to initialize store")
	}
	defer closeStore()

	// Rate limiting
	globalLimiter, authLimiter, cleaners, closeLimiters := buildLimiters(ctx, cfg, log, pingers)
	defer closeLimiters()

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	val := validator.New()

	userService := services.NewUserService(users, reports, services.UserServiceConfig{
		BCryptCost: cfg.Auth.BCryptCost,
		FreeLimit:  cfg.Quota.FreeLimit,
	}, log)
	reportService := services.NewReportService(users, reports, services.NewCalculator(nil), time.Now, log)

	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(pingers, log),
		Auth:      handlers.NewAuthHandler(userService, tokens, log, val),
		Dashboard: handlers.NewDashboardHandler(userService, reportService, log, val),
		Tool:      handlers.NewToolHandler(reportService, log, val),
	}

	handler := router.New(cfg, log, h, router.Deps{
		Tokens:        tokens,
		GlobalLimiter: globalLimiter,
		AuthLimiter:   authLimiter,
	})

	// Background maintenance
	maintenance, err := worker.NewMaintenance(users, reports, cfg.Worker.MaintenanceSchedule, log, cleaners...)
	if err != nil {
		log.FatalWithErr(err, "Failed to create maintenance worker")
	}
	if err := maintenance.Start(ctx); err != nil {
		log.FatalWithErr(err, "Failed to start maintenance worker")
	}
	defer maintenance.Stop()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
			"store":       cfg.Database.Driver,
		}).Info("API server starting")
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.ErrorWithErr(err, "Server error")
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorWithErr(err, "Graceful shutdown failed")
	}
	log.Info("API server stopped")
}

// openStore selects the storage adapter named by the configuration
func openStore(cfg *config.Config, log *logger.Logger) (user.Repository, report.Repository, map[string]handlers.Pinger, func(), error) {
	pingers := make(map[string]handlers.Pinger)

	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory store, data is lost on restart")
		store := memory.New(time.Now)
		return store.UserRepo(), store.ReportRepo(), pingers, func() {}, nil
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	applied, err := postgres.RunMigrations(db, migrations.GetFS())
	if err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}
	log.WithFields(map[string]interface{}{
		"driver":  cfg.Database.Driver,
		"applied": applied,
	}).Info("Database ready")

	pingers["database"] = postgres.Pinger{DB: db}
	closeFn := func() {
		if err := db.Close(); err != nil {
			log.ErrorWithErr(err, "Failed to close database")
		}
	}
	return postgres.NewUserRepository(db), postgres.NewReportRepository(db), pingers, closeFn, nil
}

// buildLimiters shares limits through Redis when enabled and falls back to
// in-process buckets otherwise. In-process limiters are returned as cleaners
// for the maintenance worker.
func buildLimiters(ctx context.Context, cfg *config.Config, log *logger.Logger, pingers map[string]handlers.Pinger) (ratelimit.Limiter, ratelimit.Limiter, []worker.Cleaner, func()) {
	if cfg.Redis.Enabled {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			pingers["redis"] = ratelimit.RedisPinger{Client: client}
			perSecond := int(cfg.RateLimit.RequestsPerSecond)
			if perSecond < 1 {
				perSecond = 1
			}
			global := ratelimit.NewRedisLimiter(client, "numera:rl:global", perSecond, time.Second)
			authLimiter := ratelimit.NewRedisLimiter(client, "numera:rl:auth", cfg.RateLimit.AuthRequestsPerMin, time.Minute)
			log.WithFields(map[string]interface{}{"addr": cfg.Redis.Addr()}).Info("Using Redis rate limiter")
			return global, authLimiter, nil, func() { client.Close() }
		}
		log.WarnWithErr(err, "Redis unavailable, using in-process rate limiter")
	}

	global := ratelimit.NewMemoryLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	authLimiter := ratelimit.NewMemoryLimiterPerMinute(cfg.RateLimit.AuthRequestsPerMin)
	return global, authLimiter, []worker.Cleaner{global, authLimiter}, func() {}
}
