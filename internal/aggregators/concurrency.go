package aggregators

import (
	"fmt"
	"time"

	"cluster-analytics/internal/models"
)

const (
	bucketsPerDay = 144
	bucketLength  = 10 * time.Minute
)

// DayConcurrency computes the average number of simultaneously active
// sessions for every 10-minute bucket of the given weekday.
//
// Occurrences are the concrete calendar dates matching the weekday within
// the observed range [earliest start date, latest effective end date]. For
// each occurrence and bucket, the full session list is scanned for overlap
// (start < bucketEnd && effectiveEnd > bucketStart) so a session begun the
// previous day and still open is counted. Per-bucket sums are divided by the
// occurrence count and rounded to the nearest integer.
//
// Returns an empty histogram when there are no sessions or no occurrences.
func DayConcurrency(sessions []*models.Session, weekday time.Weekday, now time.Time) map[string]int {
	if len(sessions) == 0 {
		return map[string]int{}
	}

	earliest := startOfDay(sessions[0].StartTime)
	latest := startOfDay(sessions[0].EffectiveEnd(now))
	for _, session := range sessions[1:] {
		if start := startOfDay(session.StartTime); start.Before(earliest) {
			earliest = start
		}
		if end := startOfDay(session.EffectiveEnd(now)); end.After(latest) {
			latest = end
		}
	}

	var occurrences []time.Time
	for date := earliest; !date.After(latest); date = date.AddDate(0, 0, 1) {
		if date.Weekday() == weekday {
			occurrences = append(occurrences, date)
		}
	}
	if len(occurrences) == 0 {
		return map[string]int{}
	}

	totals := make([]int, bucketsPerDay)
	for _, date := range occurrences {
		for bucket := 0; bucket < bucketsPerDay; bucket++ {
			bucketStart := date.Add(time.Duration(bucket) * bucketLength)
			bucketEnd := bucketStart.Add(bucketLength)
			for _, session := range sessions {
				if session.StartTime.Before(bucketEnd) && session.EffectiveEnd(now).After(bucketStart) {
					totals[bucket]++
				}
			}
		}
	}

	histogram := make(map[string]int, bucketsPerDay)
	for bucket, total := range totals {
		// Round half up, matching the averaging elsewhere.
		histogram[bucketLabel(bucket)] = (total + len(occurrences)/2) / len(occurrences)
	}
	return histogram
}

// WeeklyConcurrency runs DayConcurrency for all seven weekdays, keyed by
// weekday name.
func WeeklyConcurrency(cluster *models.Cluster, now time.Time) map[string]map[string]int {
	sessions := cluster.AllSessions()
	profile := make(map[string]map[string]int, 7)
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		profile[weekday.String()] = DayConcurrency(sessions, weekday, now)
	}
	return profile
}

// bucketLabel formats bucket index 0..143 as "HH:MM" (00:00 .. 23:50).
func bucketLabel(bucket int) string {
	return fmt.Sprintf("%02d:%02d", bucket/6, bucket%6*10)
}
