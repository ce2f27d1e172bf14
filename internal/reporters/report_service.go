package reporters

import (
	"context"
	"errors"

	"cluster-analytics/internal/models"
	"cluster-analytics/internal/shared/loggers"
	"cluster-analytics/internal/shared/metrics"
	"cluster-analytics/internal/stores"
)

// ReportService serves the latest computed cluster report.
//
//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	// LatestReport returns the most recently computed report. It fails with
	// a not-found error until the first snapshot has been processed.
	LatestReport(ctx context.Context) (*models.ClusterReport, error)
}

type reportService struct {
	reportStore stores.ReportStore
}

func NewReportService(reportStore stores.ReportStore) ReportService {
	return &reportService{
		reportStore: reportStore,
	}
}

func (s *reportService) LatestReport(ctx context.Context) (*models.ClusterReport, error) {
	report, err := s.reportStore.Get(ctx)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			svcError := errReportNotComputed(err)
			metricReportServedTotal.WithLabelValues(svcError.Code).Inc()
			return nil, svcError
		}
		return nil, errInternalReportStoreFailed(err)
	}

	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldSnapshotID, report.SnapshotID).
		Msg("serving latest report")

	metricReportServedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return report, nil
}
