package aggregators

import (
	"cluster-analytics/internal/models"
)

// Build warning kinds, used as metric labels.
const (
	WarnBadHostFormat  = "bad_host_format"
	WarnSessionOverlap = "session_overlap"
)

// BuildWarning is a non-fatal per-record problem found while building a
// cluster. The record it describes was dropped; the batch continues.
type BuildWarning struct {
	Kind   string
	Host   string
	Detail string
}

//go:generate mockgen -source=cluster_builder.go -destination=./mocks/cluster_builder_mock.go -package=mocks
type ClusterBuilder interface {
	// Build turns raw session records into a populated Cluster. Malformed
	// hosts and overlap-rejected sessions are reported as warnings, never
	// as errors. Re-running on the same input yields the same accepted
	// session set in the same per-computer order.
	Build(records []models.SessionRecord) (*models.Cluster, []BuildWarning)
}

type clusterBuilder struct{}

func NewClusterBuilder() ClusterBuilder {
	return &clusterBuilder{}
}

func (b *clusterBuilder) Build(records []models.SessionRecord) (*models.Cluster, []BuildWarning) {
	cluster := models.NewCluster()
	var warnings []BuildWarning

	for _, record := range records {
		address, err := ParseHost(record.Host)
		if err != nil {
			warnings = append(warnings, BuildWarning{
				Kind:   WarnBadHostFormat,
				Host:   record.Host,
				Detail: err.Error(),
			})
			continue
		}

		session := models.NewSessionFromMillis(record.Host, record.StartTimeMillis, record.EndTimeMillis)

		computer := cluster.
			Zone(address.Zone).
			Row(address.Row).
			Computer(address.Position, record.Host)

		// Ties always resolve in favor of the session already present.
		if err := computer.AddSession(session); err != nil {
			warnings = append(warnings, BuildWarning{
				Kind:   WarnSessionOverlap,
				Host:   record.Host,
				Detail: err.Error(),
			})
		}
	}

	return cluster, warnings
}
