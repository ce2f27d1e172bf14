package fetchers

import (
	"cluster-analytics/internal/shared/metrics"
)

var (
	metricPollTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetcher,
			Name:      "poll_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
