package models

import "time"

// WindowStats is the per-computer statistics block for one trailing window.
// AverageSessionDuration is in seconds and nil when no session qualifies.
type WindowStats struct {
	SessionCount           int     `json:"session_count"`
	UsagePercentage        float64 `json:"usage_percentage"`
	AverageSessionDuration *int64  `json:"average_session_duration"`
}

// SessionReport is the exported view of one session. EndTime is nil for an
// open session; Duration is seconds measured at the report's evaluation
// instant, so it keeps growing for open sessions across recomputations.
type SessionReport struct {
	Host      string  `json:"host"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Duration  int64   `json:"duration"`
}

type ComputerReport struct {
	Name              string          `json:"name"`
	Position          int             `json:"position"`
	Sessions          []SessionReport `json:"sessions"`
	Stats1Day         WindowStats     `json:"1d_stats"`
	Stats7Days        WindowStats     `json:"7d_stats"`
	Stats30Days       WindowStats     `json:"30d_stats"`
	StatsAllTime      WindowStats     `json:"all_time_stats"`
	TotalUsageSeconds int64           `json:"total_usage_seconds"`
}

type RowReport struct {
	RowNumber int              `json:"row_number"`
	Computers []ComputerReport `json:"computers"`
}

type ZoneReport struct {
	ZoneName string      `json:"zone_name"`
	Rows     []RowReport `json:"rows"`
}

// WeekdayTotals accumulates everything attributed to one weekday across the
// whole observation period.
type WeekdayTotals struct {
	SessionCount int64   `json:"session_count"`
	UsageSeconds float64 `json:"usage_seconds"`
}

// WeekdayAverages is WeekdayTotals divided by the number of observed weeks,
// rounded to 2 decimal places.
type WeekdayAverages struct {
	SessionCount float64 `json:"session_count"`
	UsageSeconds float64 `json:"usage_seconds"`
}

// WeekdayStats is the cluster-wide statistics block for one weekday.
// SessionsGraph maps 10-minute bucket labels ("HH:MM", 144 entries) to the
// average number of concurrently active sessions in that bucket.
type WeekdayStats struct {
	Total         WeekdayTotals   `json:"total"`
	Average       WeekdayAverages `json:"average"`
	SessionsGraph map[string]int  `json:"sessions_graph"`
}

// ClusterReport is the full structured result handed to reporting and
// rendering consumers.
type ClusterReport struct {
	SnapshotID string                   `json:"snapshotId"`
	Zones      []ZoneReport             `json:"zones"`
	WeekStats  map[string]*WeekdayStats `json:"weeks_stats"`
	LastUpdate string                   `json:"last_update"`
}

// Weekdays returns the seven weekday names in Monday-first order, matching
// the keys of ClusterReport.WeekStats.
func Weekdays() []string {
	return []string{
		time.Monday.String(),
		time.Tuesday.String(),
		time.Wednesday.String(),
		time.Thursday.String(),
		time.Friday.String(),
		time.Saturday.String(),
		time.Sunday.String(),
	}
}
