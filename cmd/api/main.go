package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/straye-as/fieldservice-api/docs"
	"github.com/straye-as/fieldservice-api/internal/config"
	"github.com/straye-as/fieldservice-api/internal/http/handler"
	"github.com/straye-as/fieldservice-api/internal/http/middleware"
	"github.com/straye-as/fieldservice-api/internal/http/router"
	"github.com/straye-as/fieldservice-api/internal/jobs"
	"github.com/straye-as/fieldservice-api/internal/logger"
	"github.com/straye-as/fieldservice-api/internal/metrics"
	"github.com/straye-as/fieldservice-api/internal/repository"
	"github.com/straye-as/fieldservice-api/internal/service"
	"go.uber.org/zap"
)

// @title Field Service API
// @version 1.0
// @description Customers, technicians, quotes, jobs and invoices for a field-service business

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
		zap.Bool("link_quote_on_convert", cfg.Lifecycle.LinkQuoteOnConvert),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)

	store := repository.NewStore()
	if cfg.Seed.Enabled {
		if err := repository.Seed(ctx, store); err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
		stats := store.Stats()
		log.Info("Store seeded",
			zap.Int("customers", stats.Customers),
			zap.Int("technicians", stats.Technicians),
		)
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(store)
	technicianRepo := repository.NewTechnicianRepository(store)
	quoteRepo := repository.NewQuoteRepository(store)
	jobRepo := repository.NewJobRepository(store)
	invoiceRepo := repository.NewInvoiceRepository(store)

	// Initialize services
	lifecycle := service.LifecycleOptions{LinkQuoteOnConvert: cfg.Lifecycle.LinkQuoteOnConvert}
	customerService := service.NewCustomerService(customerRepo, reg, log)
	technicianService := service.NewTechnicianService(technicianRepo, reg, log)
	quoteService := service.NewQuoteService(store, quoteRepo, lifecycle, reg, log)
	jobService := service.NewJobService(store, jobRepo, reg, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		reg,
		middleware.NewRateLimiter(&cfg.RateLimit, log),
		handler.NewCustomerHandler(customerService, log),
		handler.NewTechnicianHandler(technicianService, log),
		handler.NewQuoteHandler(quoteService, log),
		handler.NewJobHandler(jobService, log),
		handler.NewInvoiceHandler(invoiceService, log),
	)

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled && reg != nil {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterStoreStatsJob(scheduler, store, reg, log, cfg.Jobs.StatsCron); err != nil {
			log.Error("Failed to register store stats job", zap.Error(err))
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Background jobs disabled",
			zap.Bool("jobs_enabled", cfg.Jobs.Enabled),
			zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
		)
	}

	srv := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
