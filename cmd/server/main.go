package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dukerupert/addressdata/internal"
	"github.com/dukerupert/addressdata/internal/address"
	"github.com/dukerupert/addressdata/internal/handler"
	"github.com/dukerupert/addressdata/internal/middleware"
	"github.com/dukerupert/addressdata/internal/postgres"
	"github.com/dukerupert/addressdata/internal/router"
	"github.com/dukerupert/addressdata/internal/routes"
	"github.com/dukerupert/addressdata/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking (no-op without SENTRY_DSN)
	reporter, sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := postgres.NewAddressStore(pool)

	validator := address.NewBasicValidator(cfg.RequiredFields...)
	logger.Info("Address validator initialized", "required_fields", len(cfg.RequiredFields))

	metrics := middleware.NewMetrics(cfg.MetricsNamespace)

	addressHandler := handler.NewAddressHandler(store, validator, metrics, logger)

	// Recovery sits inside Logger and metrics so recovered panics are
	// logged and counted as 500s.
	r := router.New(
		middleware.RequestID,
		metrics.Middleware,
		router.Logger(logger),
		reporter.Middleware,
		router.Recovery(logger, reporter),
		middleware.MaxBodySize(),
	)

	routes.RegisterOpsRoutes(r, routes.OpsDeps{MetricsHandler: metrics.Handler()})
	routes.RegisterAddressRoutes(r, routes.AddressDeps{Handler: addressHandler})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting address server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
