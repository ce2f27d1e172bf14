package models

import (
	"sort"
	"time"
)

// Cluster is the root of the containment hierarchy:
// cluster -> zone -> row -> computer -> session. It is built once per
// snapshot and read-only afterwards; statistics queries never mutate it,
// so a built cluster is safe to read from concurrent queries.
type Cluster struct {
	Zones map[string]*Zone
}

func NewCluster() *Cluster {
	return &Cluster{
		Zones: make(map[string]*Zone),
	}
}

// Zone returns the zone with the given name, creating it on first reference.
func (c *Cluster) Zone(zoneName string) *Zone {
	zone, ok := c.Zones[zoneName]
	if !ok {
		zone = NewZone(zoneName)
		c.Zones[zoneName] = zone
	}
	return zone
}

// SortedZones returns the cluster's zones ordered by name.
func (c *Cluster) SortedZones() []*Zone {
	zones := make([]*Zone, 0, len(c.Zones))
	for _, z := range c.Zones {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].ZoneName < zones[j].ZoneName })
	return zones
}

// AllSessions flattens every accepted session in the cluster, in
// deterministic zone/row/position order with per-computer arrival order
// preserved.
func (c *Cluster) AllSessions() []*Session {
	var sessions []*Session
	for _, zone := range c.SortedZones() {
		for _, row := range zone.SortedRows() {
			for _, computer := range row.SortedComputers() {
				sessions = append(sessions, computer.Sessions...)
			}
		}
	}
	return sessions
}

// EarliestSessionStart returns the start of the oldest session anywhere in
// the cluster, or false for an empty cluster.
func (c *Cluster) EarliestSessionStart() (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, zone := range c.Zones {
		for _, row := range zone.Rows {
			for _, computer := range row.Computers {
				start, ok := computer.FirstSessionStart()
				if !ok {
					continue
				}
				if !found || start.Before(earliest) {
					earliest = start
					found = true
				}
			}
		}
	}
	return earliest, found
}
