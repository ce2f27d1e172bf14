package reporters

import (
	"cluster-analytics/internal/shared/metrics"
)

var (
	metricReportServedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReporting,
			Name:      "report_served_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
