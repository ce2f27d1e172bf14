package models

import "time"

// SessionRecord is one raw per-host occupancy record as supplied by the
// upstream collector: millisecond-epoch timestamps, EndTimeMillis 0 meaning
// the session has no recorded end yet.
type SessionRecord struct {
	Host            string `json:"host"`
	StartTimeMillis int64  `json:"startTime"`
	EndTimeMillis   int64  `json:"endTime,omitempty"`
}

// SessionSnapshot is one ingested batch of raw records. A snapshot is the
// unit of ingestion and of report recomputation.
type SessionSnapshot struct {
	SnapshotID string          `json:"snapshotId"`
	ReceivedAt time.Time       `json:"receivedAt"`
	Records    []SessionRecord `json:"sessions"`
}
