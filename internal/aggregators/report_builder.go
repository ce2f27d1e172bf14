package aggregators

import (
	"time"

	"cluster-analytics/internal/models"
)

//go:generate mockgen -source=report_builder.go -destination=./mocks/report_builder_mock.go -package=mocks
type ReportBuilder interface {
	// BuildReport assembles the full structured result for a built cluster
	// at the given evaluation instant. The cluster is only read, so the same
	// cluster and now always produce the same report.
	BuildReport(cluster *models.Cluster, snapshotID string, now time.Time) *models.ClusterReport
}

type reportBuilder struct{}

func NewReportBuilder() ReportBuilder {
	return &reportBuilder{}
}

func (b *reportBuilder) BuildReport(cluster *models.Cluster, snapshotID string, now time.Time) *models.ClusterReport {
	// Trailing windows are clamped to the observed history so a dataset
	// younger than the window is not diluted by time nobody could have
	// been logged in.
	var observed time.Duration
	if earliest, ok := cluster.EarliestSessionStart(); ok {
		observed = now.Sub(earliest)
	}

	report := &models.ClusterReport{
		SnapshotID: snapshotID,
		WeekStats:  WeekdayStats(cluster, now),
		LastUpdate: now.Format("2006-01-02 15:04:05"),
	}

	for _, zone := range cluster.SortedZones() {
		zoneReport := models.ZoneReport{ZoneName: zone.ZoneName}
		for _, row := range zone.SortedRows() {
			rowReport := models.RowReport{RowNumber: row.RowNumber}
			for _, computer := range row.SortedComputers() {
				rowReport.Computers = append(rowReport.Computers, b.buildComputerReport(computer, observed, now))
			}
			zoneReport.Rows = append(zoneReport.Rows, rowReport)
		}
		report.Zones = append(report.Zones, zoneReport)
	}

	for day, histogram := range WeeklyConcurrency(cluster, now) {
		report.WeekStats[day].SessionsGraph = histogram
	}

	return report
}

func (b *reportBuilder) buildComputerReport(computer *models.Computer, observed time.Duration, now time.Time) models.ComputerReport {
	report := models.ComputerReport{
		Name:              computer.Name,
		Position:          computer.Position,
		Sessions:          make([]models.SessionReport, 0, len(computer.Sessions)),
		Stats1Day:         b.buildWindowStats(computer, clampWindow(models.Window1Day.Duration(), observed), now),
		Stats7Days:        b.buildWindowStats(computer, clampWindow(models.Window7Days.Duration(), observed), now),
		Stats30Days:       b.buildWindowStats(computer, clampWindow(models.Window30Days.Duration(), observed), now),
		StatsAllTime:      b.buildAllTimeStats(computer, observed, now),
		TotalUsageSeconds: TotalUsageSeconds(computer, now),
	}

	for _, session := range computer.Sessions {
		report.Sessions = append(report.Sessions, b.buildSessionReport(session, now))
	}

	return report
}

func (b *reportBuilder) buildWindowStats(computer *models.Computer, window time.Duration, now time.Time) models.WindowStats {
	stats := models.WindowStats{
		SessionCount:    SessionCount(computer, window, now),
		UsagePercentage: UsagePercentage(computer, window, now),
	}
	if avg, ok := AverageSessionDuration(computer, window, now); ok {
		stats.AverageSessionDuration = &avg
	}
	return stats
}

// buildAllTimeStats counts every session but measures usage against the
// whole observed history rather than the computer's own first session.
func (b *reportBuilder) buildAllTimeStats(computer *models.Computer, observed time.Duration, now time.Time) models.WindowStats {
	stats := models.WindowStats{
		SessionCount:    SessionCount(computer, models.AllTimeWindow, now),
		UsagePercentage: UsagePercentage(computer, observed, now),
	}
	if avg, ok := AverageSessionDuration(computer, models.AllTimeWindow, now); ok {
		stats.AverageSessionDuration = &avg
	}
	return stats
}

func (b *reportBuilder) buildSessionReport(session *models.Session, now time.Time) models.SessionReport {
	report := models.SessionReport{
		Host:      session.Host,
		StartTime: session.StartTime.Format(time.RFC3339),
		Duration:  int64(session.Duration(now).Round(time.Second).Seconds()),
	}
	if !session.Open() {
		end := session.EndTime.Format(time.RFC3339)
		report.EndTime = &end
	}
	return report
}

// clampWindow narrows a trailing window to the observed history. An
// observation period shorter than the window would otherwise understate
// usage for every computer.
func clampWindow(window, observed time.Duration) time.Duration {
	if observed > 0 && observed < window {
		return observed
	}
	return window
}
