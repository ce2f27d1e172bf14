package aggregators

import (
	"cluster-analytics/internal/shared/metrics"
)

var (
	// metricRecordsRejectedTotal counts records dropped during cluster
	// construction, labeled by warning kind (bad host format, overlap).
	metricRecordsRejectedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "records_rejected_total",
		},
		[]string{"kind"},
	)

	metricReportComputedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "report_computed_total",
		},
	)

	metricReportComputeSeconds = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "report_compute_seconds",
			Buckets:   metrics.DefBuckets,
		},
	)
)
