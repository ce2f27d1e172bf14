package http

import (
	"net/http"

	"cluster-analytics/internal/ingestors"
	"cluster-analytics/internal/reporters"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(ingestionService ingestors.IngestionService, reportService reporters.ReportService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestSessionsHandler := NewIngestSessionsHandler(ingestionService)
	getReportHandler := NewGetReportHandler(reportService)

	// Routes
	router.Post("/v1/sessions", errorHandlingAdapter(ingestSessionsHandler))
	router.Get("/v1/report", errorHandlingAdapter(getReportHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
