package aggregators

import (
	"context"
	"time"

	"cluster-analytics/internal/events"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/shared/svcerrors"
	"cluster-analytics/internal/stores"
)

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	// Recompute builds a cluster from the event's records, derives the full
	// statistics report, and stores it as the latest report.
	Recompute(ctx context.Context, event *events.ClusterRebuildEvent) *svcerrors.ServiceError
}

type aggregationService struct {
	clusterBuilder ClusterBuilder
	reportBuilder  ReportBuilder
	reportStore    stores.ReportStore
}

func NewAggregationService(clusterBuilder ClusterBuilder, reportBuilder ReportBuilder, reportStore stores.ReportStore) AggregationService {
	return &aggregationService{
		clusterBuilder: clusterBuilder,
		reportBuilder:  reportBuilder,
		reportStore:    reportStore,
	}
}

func (s *aggregationService) Recompute(ctx context.Context, event *events.ClusterRebuildEvent) *svcerrors.ServiceError {
	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldSnapshotID, event.SnapshotID).
		Int("record_count", len(event.Records)).
		Msg("started recomputing cluster report")

	computeStart := time.Now()
	cluster, warnings := s.clusterBuilder.Build(event.Records)
	for _, warning := range warnings {
		logger.Warn().
			Str(loggers.FieldHost, warning.Host).
			Str(loggers.FieldWarningKind, warning.Kind).
			Msg(warning.Detail)
		metricRecordsRejectedTotal.WithLabelValues(warning.Kind).Inc()
	}

	// The evaluation instant is captured once so every statistic in the
	// report agrees on "now".
	now := time.Now().UTC()
	report := s.reportBuilder.BuildReport(cluster, event.SnapshotID, now)
	metricReportComputeSeconds.Observe(time.Since(computeStart).Seconds())

	if err := s.reportStore.Upsert(ctx, report); err != nil {
		return errInternalReportStoreFailed(err)
	}

	metricReportComputedTotal.Inc()
	return nil
}
