package ingestors

import (
	"cluster-analytics/internal/shared/metrics"
)

var (
	metricSnapshotIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "snapshot_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricRecordsSkippedTotal counts raw records dropped for schema
	// violations before cluster construction.
	metricRecordsSkippedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "records_skipped_total",
		},
	)
)
