package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/motorhaus/motorhaus/internal/app"
	"github.com/motorhaus/motorhaus/internal/billing"
	"github.com/motorhaus/motorhaus/internal/catalog"
	"github.com/motorhaus/motorhaus/internal/customers"
	"github.com/motorhaus/motorhaus/internal/dashboard"
	"github.com/motorhaus/motorhaus/internal/jobcards"
	"github.com/motorhaus/motorhaus/internal/observability"
	"github.com/motorhaus/motorhaus/internal/platform/cache"
	"github.com/motorhaus/motorhaus/internal/platform/db"
	"github.com/motorhaus/motorhaus/internal/shared"
	"github.com/motorhaus/motorhaus/internal/vehicles"
	"github.com/motorhaus/motorhaus/internal/view"
	"github.com/motorhaus/motorhaus/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "motorhaus_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	customerRepo := customers.NewRepository(pool)
	customerService := customers.NewService(customerRepo)

	vehicleRepo := vehicles.NewRepository(pool)
	vehicleService := vehicles.NewService(vehicleRepo)

	catalogRepo := catalog.NewRepository(pool)
	serviceCatalog := catalog.NewCatalog(catalogRepo)

	jobCardRepo := jobcards.NewRepository(pool)
	jobCardService := jobcards.NewService(jobCardRepo, vehicleRepo)
	vehicleHistory := jobcards.NewVehicleHistory(jobCardService)

	billingRepo := billing.NewRepository(pool)
	billingService := billing.NewService(billingRepo)

	dashboardRepo := dashboard.NewRepository(pool)
	dashboardService := dashboard.NewService(dashboardRepo)

	metrics := observability.NewMetrics()

	customerHandler := customers.NewHandler(logger, customerService, templates, csrfManager, sessionManager)
	vehicleHandler := vehicles.NewHandler(logger, vehicleService, customerService, vehicleHistory, templates, csrfManager, sessionManager)
	catalogHandler := catalog.NewHandler(logger, serviceCatalog, templates, csrfManager, sessionManager)
	jobCardHandler := jobcards.NewHandler(logger, jobCardService, vehicleService, serviceCatalog, billingService, templates, csrfManager, sessionManager)
	billingHandler := billing.NewHandler(logger, billingService, templates, csrfManager, sessionManager)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, templates, csrfManager, sessionManager)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		DashboardHandler: dashboardHandler,
		CustomerHandler:  customerHandler,
		VehicleHandler:   vehicleHandler,
		CatalogHandler:   catalogHandler,
		JobCardHandler:   jobCardHandler,
		BillingHandler:   billingHandler,
		JobsHandler:      jobsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.AppAddr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
