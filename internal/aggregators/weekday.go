package aggregators

import (
	"time"

	"cluster-analytics/internal/models"
)

// WeekdayStats accumulates cluster-wide session counts and occupied seconds
// per weekday, attributed to the weekday of each session's start date.
//
// A session whose effective end falls on a later calendar date is split at
// the first midnight: the portion up to the end of the start date goes to
// the start weekday, the remainder to the weekday of the end date, which
// also gets a session-count increment. Only this first split happens;
// sessions spanning more than one midnight are not reattributed further.
//
// Totals are then divided by the number of observed weeks,
// max(1, observedDays/7), to produce the averages.
func WeekdayStats(cluster *models.Cluster, now time.Time) map[string]*models.WeekdayStats {
	days := make(map[string]*models.WeekdayStats, 7)
	for _, name := range models.Weekdays() {
		days[name] = &models.WeekdayStats{}
	}

	for _, session := range cluster.AllSessions() {
		startDay := days[session.StartTime.Weekday().String()]
		startDay.Total.SessionCount++

		duration := session.Duration(now).Seconds()
		if duration <= 0 {
			continue
		}

		end := session.EffectiveEnd(now)
		if sameDate(session.StartTime, end) {
			startDay.Total.UsageSeconds += duration
			continue
		}

		nextMidnight := startOfDay(session.StartTime).AddDate(0, 0, 1)
		startPortion := nextMidnight.Sub(session.StartTime).Seconds()
		if startPortion < 0 {
			startPortion = 0
		}
		remaining := end.Sub(nextMidnight).Seconds()
		if remaining < 0 {
			remaining = 0
		}

		startDay.Total.UsageSeconds += startPortion
		endDay := days[end.Weekday().String()]
		endDay.Total.SessionCount++
		endDay.Total.UsageSeconds += remaining
	}

	earliest, ok := cluster.EarliestSessionStart()
	if !ok {
		return days
	}

	weeks := float64(weeksPassed(earliest, now))
	for _, day := range days {
		day.Average.SessionCount = round2(float64(day.Total.SessionCount) / weeks)
		day.Average.UsageSeconds = round2(day.Total.UsageSeconds / weeks)
	}

	return days
}

// weeksPassed counts whole weeks between first and now, never below 1 so
// averages never divide by zero.
func weeksPassed(first, now time.Time) int {
	weeks := int(now.Sub(first).Hours()/24) / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return startOfDay(a).Equal(startOfDay(b))
}
