package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cluster-analytics/internal/aggregators"
	"cluster-analytics/internal/events"
	"cluster-analytics/internal/fetchers"
	internalhttp "cluster-analytics/internal/http"
	"cluster-analytics/internal/ingestors"
	"cluster-analytics/internal/reporters"
	"cluster-analytics/internal/shared/configs"
	"cluster-analytics/internal/shared/filestorages"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/stores"
	"cluster-analytics/internal/streams"
)

// clusterSource is the partition key for rebuild events. The service tracks
// a single campus cluster, so all rebuilds serialize on one partition.
const clusterSource = "campus"

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	clusterRebuildConsumer streams.ClusterRebuildConsumer
	poller                 fetchers.Poller
	backgroundCtx          context.Context
	backgroundCancel       context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "cluster-analytics").
		Logger()

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize stream queue
	clusterRebuildQueue := streams.NewPartitionedQueue[events.ClusterRebuildEvent]()

	// Initialize aggregation service
	reportStore := stores.NewReportStore(fileStorage)
	clusterBuilder := aggregators.NewClusterBuilder()
	reportBuilder := aggregators.NewReportBuilder()
	aggregationService := aggregators.NewAggregationService(clusterBuilder, reportBuilder, reportStore)
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	clusterRebuildConsumer := streams.NewClusterRebuildConsumer(clusterRebuildQueue, aggregationService, consumerLogger)

	// Initialize ingestionService
	snapshotStore := stores.NewSnapshotStore(fileStorage)
	clusterRebuildProducer := streams.NewClusterRebuildProducer(clusterRebuildQueue, clusterSource)
	ingestionService := ingestors.NewIngestionService(snapshotStore, clusterRebuildProducer)

	// Initialize reportService
	reportService := reporters.NewReportService(reportStore)

	// Initialize optional upstream poller
	var poller fetchers.Poller
	if config.Fetcher.Enabled {
		fetcher := fetchers.NewHTTPSessionFetcher(
			config.Fetcher.URL,
			time.Duration(config.Fetcher.TimeoutSeconds)*time.Second,
		)
		pollerLogger := appLogger.With().Str(loggers.FieldComponent, "poller").Logger()
		poller = fetchers.NewPoller(
			fetcher,
			ingestionService,
			time.Duration(config.Fetcher.IntervalSeconds)*time.Second,
			pollerLogger,
		)
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, reportService, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:                 config,
		appLogger:              appLogger,
		server:                 server,
		clusterRebuildConsumer: clusterRebuildConsumer,
		poller:                 poller,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting cluster-analytics service on port %d (log_level=%s, file_storage_root_dir=%s, fetcher_enabled=%t)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Fetcher.Enabled)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.clusterRebuildConsumer.Start(app.backgroundCtx)
	if app.poller != nil {
		app.poller.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	// 2) Cancel background workers
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background workers cancelled")
	}

	// 3) Wait for background workers to finish
	if app.poller != nil {
		app.poller.Stop()
	}
	app.clusterRebuildConsumer.Stop()
	app.appLogger.Info().Msg("Background workers stopped")

	return nil
}
