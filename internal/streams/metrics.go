package streams

import (
	"cluster-analytics/internal/shared/metrics"
)

var (
	streamClusterRebuild = "cluster_rebuild"

	metricRebuildProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "rebuild_published_total",
		},
		[]string{"stream_id"},
	)

	metricRebuildConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "rebuild_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
