package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	apphandler "github.com/brandpulse/audit-delivery/internal/application/handler"
	"github.com/brandpulse/audit-delivery/internal/application/ports"
	"github.com/brandpulse/audit-delivery/internal/application/usecase"
	"github.com/brandpulse/audit-delivery/internal/config"
	"github.com/brandpulse/audit-delivery/internal/domain/report"
	"github.com/brandpulse/audit-delivery/internal/handler"
	"github.com/brandpulse/audit-delivery/internal/handler/platforms"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/archive"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/assets"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/database"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/events"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/repository"
	"github.com/brandpulse/audit-delivery/internal/infrastructure/webhook"
	"github.com/brandpulse/audit-delivery/internal/observability"
)

func main() {
	cfg := loadConfiguration()

	deps := initializeDependencies(cfg)
	defer deps.close()

	app := buildApplication(cfg, deps)

	startApplication(cfg, deps, app)
}

// Dependencies holds all initialized infrastructure components
type Dependencies struct {
	logger    observability.Logger
	metrics   *observability.PrometheusMetrics
	db        database.Database
	repos     *repository.Repositories
	publisher *assets.Publisher
	notifier  *webhook.Notifier
	archive   ports.DocumentArchive
	events    ports.EventPublisher
	eventsRMQ *events.Publisher
}

func (d *Dependencies) close() {
	if d.eventsRMQ != nil {
		d.eventsRMQ.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}

// loadConfiguration loads and validates the application configuration
func loadConfiguration() *config.Config {
	provider := config.GetProvider()
	provider.MustLoad()
	return provider.MustGet()
}

// initializeDependencies sets up all infrastructure dependencies
func initializeDependencies(cfg *config.Config) *Dependencies {
	logger := observability.NewStdoutLogger(cfg.LogJSON)
	metrics := observability.NewPrometheusMetrics(cfg.ServiceName)

	logger.Info("Starting application",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment)
	metrics.IncrementCounter("application.starts", nil)

	db, err := database.NewPostgres(&cfg.Database, logger, metrics)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		log.Fatalf("Failed to initialize database: %v", err)
	}

	deps := &Dependencies{
		logger:    logger,
		metrics:   metrics,
		db:        db,
		repos:     repository.New(db, logger, metrics),
		publisher: assets.NewPublisher(&cfg.Assets, logger, metrics),
		notifier:  webhook.NewNotifier(&cfg.Webhook, logger, metrics),
	}

	// Archive and events are optional integrations.
	if cfg.Archive.Bucket != "" {
		store, err := archive.New(&cfg.Archive, logger, metrics)
		if err != nil {
			logger.Error("Failed to initialize archive store", "error", err)
			log.Fatalf("Failed to initialize archive store: %v", err)
		}
		deps.archive = store
	}

	if cfg.Events.URL != "" {
		publisher, err := events.New(&cfg.Events, logger, metrics)
		if err != nil {
			logger.Error("Failed to initialize event publisher", "error", err)
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
		deps.events = publisher
		deps.eventsRMQ = publisher
	}

	return deps
}

// buildApplication assembles the application layers
func buildApplication(cfg *config.Config, deps *Dependencies) handler.Handler {
	deliver := usecase.NewDeliverReport(
		deps.repos,
		report.NewGenerator(),
		deps.publisher,
		deps.notifier,
		deps.archive,
		deps.events,
		deps.logger,
		deps.metrics,
	)

	return apphandler.NewApprovalHandler(deliver, deps.logger, deps.metrics)
}

// startApplication runs the platform adapter matching the environment
func startApplication(cfg *config.Config, deps *Dependencies, h handler.Handler) {
	if config.IsLambda() {
		adapter := platforms.NewLambdaAdapter(h, &cfg.Lambda, deps.logger, deps.metrics)
		if err := adapter.Start(); err != nil {
			log.Fatalf("Failed to start Lambda adapter: %v", err)
		}
		return
	}

	adapter := platforms.NewHTTPAdapter(h, &cfg.HTTP, &cfg.Handler, deps.logger, deps.metrics)
	adapter.MetricsHandler = promhttp.HandlerFor(deps.metrics.Registry(), promhttp.HandlerOpts{})

	// Shut down cleanly on SIGINT/SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := adapter.Stop(ctx); err != nil {
			deps.logger.Error("Shutdown failed", "error", err)
		}
	}()

	if err := adapter.Start(); err != nil {
		log.Fatalf("Failed to start HTTP adapter: %v", err)
	}
}
