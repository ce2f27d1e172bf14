package models

import (
	"fmt"
	"time"
)

// Session is one continuous occupancy interval on a single host. A session
// with a zero EndTime is open: it has no recorded end yet and is treated as
// ongoing through whatever evaluation instant a query passes in.
type Session struct {
	Host      string
	StartTime time.Time
	EndTime   time.Time // zero value means the session is still open
}

// NewSessionFromMillis builds a Session from raw millisecond-epoch
// timestamps. An end timestamp of 0 is the upstream sentinel for "no end
// time" (epoch zero is never a real end instant) and leaves the session open.
func NewSessionFromMillis(host string, startMillis, endMillis int64) *Session {
	s := &Session{
		Host:      host,
		StartTime: time.UnixMilli(startMillis).UTC(),
	}
	if endMillis != 0 {
		s.EndTime = time.UnixMilli(endMillis).UTC()
	}
	return s
}

// Open reports whether the session has no recorded end instant.
func (s *Session) Open() bool {
	return s.EndTime.IsZero()
}

// EffectiveEnd returns the session end, or now for an open session.
func (s *Session) EffectiveEnd(now time.Time) time.Time {
	if s.Open() {
		return now
	}
	return s.EndTime
}

// Duration returns the session length. Open sessions are measured against
// now, so their reported duration grows between repeated queries.
func (s *Session) Duration(now time.Time) time.Duration {
	return s.EffectiveEnd(now).Sub(s.StartTime)
}

// ActiveAt reports whether the session covered the given instant.
func (s *Session) ActiveAt(at time.Time) bool {
	if s.StartTime.After(at) {
		return false
	}
	return s.Open() || !s.EndTime.Before(at)
}

// Overlaps reports whether the two sessions' [start, end) intervals
// intersect, with an open end treated as +inf.
func (s *Session) Overlaps(other *Session) bool {
	if !s.Open() && !s.EndTime.After(other.StartTime) {
		return false
	}
	if !other.Open() && !other.EndTime.After(s.StartTime) {
		return false
	}
	return true
}

// SetEndMillis refines the end instant in place, used when a closing event
// for an already-ingested session arrives separately. The 0 sentinel (and
// negative values) are ignored.
func (s *Session) SetEndMillis(endMillis int64) {
	if endMillis <= 0 {
		return
	}
	s.EndTime = time.UnixMilli(endMillis).UTC()
}

func (s *Session) String() string {
	if s.Open() {
		return fmt.Sprintf("session on %s [%s, open)", s.Host, s.StartTime.Format(time.RFC3339))
	}
	return fmt.Sprintf("session on %s [%s, %s)", s.Host, s.StartTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339))
}
