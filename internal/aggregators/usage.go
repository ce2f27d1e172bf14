package aggregators

import (
	"fmt"
	"math"
	"time"

	"cluster-analytics/internal/models"
)

// UsagePercentage returns how much of the trailing window ending at now the
// computer was occupied, in percent rounded to 2 decimal places. The
// models.AllTimeWindow sentinel measures from the computer's first session
// to now. A window longer than the observed history simply yields a lower
// percentage; sessions started before the window and still open contribute
// their overlap.
func UsagePercentage(computer *models.Computer, window time.Duration, now time.Time) float64 {
	assertWindow(window)
	if len(computer.Sessions) == 0 {
		return 0.0
	}

	var windowStart time.Time
	var totalSeconds float64
	if window == models.AllTimeWindow {
		first, _ := computer.FirstSessionStart()
		totalSeconds = now.Sub(first).Seconds()
	} else {
		windowStart = now.Add(-window)
		totalSeconds = window.Seconds()
	}
	if totalSeconds <= 0 {
		return 0.0
	}

	usedSeconds := 0.0
	for _, session := range computer.Sessions {
		sessionEnd := session.EffectiveEnd(now)
		if sessionEnd.Before(windowStart) || session.StartTime.After(now) {
			continue
		}
		overlapStart := session.StartTime
		if windowStart.After(overlapStart) {
			overlapStart = windowStart
		}
		overlapEnd := sessionEnd
		if now.Before(overlapEnd) {
			overlapEnd = now
		}
		if overlap := overlapEnd.Sub(overlapStart).Seconds(); overlap > 0 {
			usedSeconds += overlap
		}
	}

	return round2(usedSeconds / totalSeconds * 100)
}

// AverageSessionDuration returns the mean duration in seconds of the
// computer's sessions starting within the trailing window (all sessions for
// the models.AllTimeWindow sentinel). Open sessions are measured to now.
// Returns false when no session qualifies.
func AverageSessionDuration(computer *models.Computer, window time.Duration, now time.Time) (int64, bool) {
	assertWindow(window)
	cutoff := now.Add(-window)

	totalSeconds := 0.0
	qualifying := 0
	for _, session := range computer.Sessions {
		if window != models.AllTimeWindow && session.StartTime.Before(cutoff) {
			continue
		}
		totalSeconds += session.Duration(now).Seconds()
		qualifying++
	}
	if qualifying == 0 {
		return 0, false
	}
	return int64(math.Round(totalSeconds / float64(qualifying))), true
}

// SessionCount returns the number of sessions starting within the trailing
// window, or the total count for the models.AllTimeWindow sentinel.
func SessionCount(computer *models.Computer, window time.Duration, now time.Time) int {
	assertWindow(window)
	if window == models.AllTimeWindow {
		return len(computer.Sessions)
	}
	cutoff := now.Add(-window)
	count := 0
	for _, session := range computer.Sessions {
		if !session.StartTime.Before(cutoff) {
			count++
		}
	}
	return count
}

// TotalUsageSeconds returns the summed duration of every session on the
// computer, open sessions measured to now.
func TotalUsageSeconds(computer *models.Computer, now time.Time) int64 {
	total := 0.0
	for _, session := range computer.Sessions {
		total += session.Duration(now).Seconds()
	}
	return int64(math.Round(total))
}

// assertWindow rejects negative windows. Passing one is a programming
// error, not a data error.
func assertWindow(window time.Duration) {
	if window < 0 {
		panic(fmt.Sprintf("negative statistics window: %v", window))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
