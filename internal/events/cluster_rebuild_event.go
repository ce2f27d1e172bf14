package events

import (
	"time"

	"cluster-analytics/internal/models"
)

// ClusterRebuildEvent asks the aggregation side to rebuild the cluster from
// one ingested snapshot and recompute the statistics report.
//
// Source identifies the physical cluster the snapshot describes and doubles
// as the partition key in the rebuild queue: all events for one source land
// on the same partition and are processed by a single worker, so two
// rebuilds of the same cluster never run concurrently.
type ClusterRebuildEvent struct {
	SnapshotID string                 `json:"snapshotId"`
	Source     string                 `json:"source"`
	ReceivedAt time.Time              `json:"receivedAt"`
	Records    []models.SessionRecord `json:"sessions"`
}
