package streams

import (
	"context"

	"cluster-analytics/internal/events"
	"cluster-analytics/internal/models"
)

// ClusterRebuildProducer publishes one ClusterRebuildEvent per ingested
// snapshot.
//
// The partition key is the cluster source. Cluster construction is not safe
// to run concurrently for the same cluster, so routing every rebuild of a
// source to one partition (processed by a single consumer worker) is what
// serializes it; different sources may still rebuild in parallel.
//
//go:generate mockgen -source=cluster_rebuild_producer.go -destination=./mocks/cluster_rebuild_producer_mock.go -package=mocks
type ClusterRebuildProducer interface {
	Produce(ctx context.Context, snapshot *models.SessionSnapshot) error
}

type clusterRebuildProducer struct {
	queue  *PartitionedQueue[events.ClusterRebuildEvent]
	source string
}

func NewClusterRebuildProducer(queue *PartitionedQueue[events.ClusterRebuildEvent], source string) ClusterRebuildProducer {
	return &clusterRebuildProducer{
		queue:  queue,
		source: source,
	}
}

func (producer *clusterRebuildProducer) Produce(ctx context.Context, snapshot *models.SessionSnapshot) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	producer.queue.Publish(producer.source, events.ClusterRebuildEvent{
		SnapshotID: snapshot.SnapshotID,
		Source:     producer.source,
		ReceivedAt: snapshot.ReceivedAt,
		Records:    snapshot.Records,
	})
	metricRebuildProducedTotal.WithLabelValues(streamClusterRebuild).Inc()
	return nil
}
