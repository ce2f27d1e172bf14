package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrSessionOverlap is returned when an incoming session intersects one
// already accepted on the same computer. The incoming session is dropped;
// the earlier one is kept.
var ErrSessionOverlap = errors.New("overlapping sessions")

// Computer is one addressable host slot within a row. It owns its sessions
// in arrival order and guarantees that no two accepted sessions overlap.
type Computer struct {
	Position int    // slot number within the row, 1-based
	Name     string // full host name, e.g. "z1r12p1"
	Sessions []*Session
}

func NewComputer(position int, name string) *Computer {
	return &Computer{
		Position: position,
		Name:     name,
	}
}

// AddSession appends the session if it does not overlap any accepted one.
// On conflict the session is not added and the returned error identifies
// the conflicting pair; the caller decides whether to surface it.
func (c *Computer) AddSession(session *Session) error {
	for _, existing := range c.Sessions {
		if existing.Overlaps(session) {
			return fmt.Errorf("%w on %s: %s and %s", ErrSessionOverlap, c.Name, existing, session)
		}
	}
	c.Sessions = append(c.Sessions, session)
	return nil
}

// FirstSessionStart returns the earliest session start on this computer,
// or false when there are no sessions.
func (c *Computer) FirstSessionStart() (time.Time, bool) {
	if len(c.Sessions) == 0 {
		return time.Time{}, false
	}
	first := c.Sessions[0].StartTime
	for _, s := range c.Sessions[1:] {
		if s.StartTime.Before(first) {
			first = s.StartTime
		}
	}
	return first, true
}

// HasActiveSession reports whether any session covered the given instant.
func (c *Computer) HasActiveSession(at time.Time) bool {
	for _, s := range c.Sessions {
		if s.ActiveAt(at) {
			return true
		}
	}
	return false
}
