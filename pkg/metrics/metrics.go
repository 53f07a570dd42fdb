// Package metrics holds the prometheus instruments for the framework graph
// core. Exposition is the embedding application's concern; the core only
// records.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the framework core
type Registry struct {
	MutationsTotal          *prometheus.CounterVec
	ValidationFailuresTotal *prometheus.CounterVec
	SnapshotsTotal          prometheus.Counter
	RestoresTotal           prometheus.Counter
	ExportsTotal            *prometheus.CounterVec
	Nodes                   *prometheus.GaugeVec
	Edges                   prometheus.Gauge
	VersionEntries          prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics initialized and registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framework_mutations_total",
			Help: "Total mutation commands by operation and outcome",
		}, []string{"operation", "status"}),
		ValidationFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framework_validation_failures_total",
			Help: "Total mutations rejected by the validator, by operation",
		}, []string{"operation"}),
		SnapshotsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "framework_snapshots_total",
			Help: "Total version snapshots taken",
		}),
		RestoresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "framework_restores_total",
			Help: "Total version restores performed",
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framework_exports_total",
			Help: "Total exports by format",
		}, []string{"format"}),
		Nodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "framework_nodes",
			Help: "Current node count by tier",
		}, []string{"tier"}),
		Edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "framework_edges",
			Help: "Current connection count",
		}),
		VersionEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "framework_version_entries",
			Help: "Current number of entries in the version store",
		}),
	}

	reg.MustRegister(
		r.MutationsTotal,
		r.ValidationFailuresTotal,
		r.SnapshotsTotal,
		r.RestoresTotal,
		r.ExportsTotal,
		r.Nodes,
		r.Edges,
		r.VersionEntries,
	)

	return r
}

// RecordMutation records one mutation command outcome.
func (r *Registry) RecordMutation(operation, status string) {
	r.MutationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordValidationFailure records a mutation rejected by the validator.
func (r *Registry) RecordValidationFailure(operation string) {
	r.ValidationFailuresTotal.WithLabelValues(operation).Inc()
}

// RecordSnapshot records one snapshot and the resulting history length.
func (r *Registry) RecordSnapshot(historyLen int) {
	r.SnapshotsTotal.Inc()
	r.VersionEntries.Set(float64(historyLen))
}

// RecordRestore records one restore.
func (r *Registry) RecordRestore() {
	r.RestoresTotal.Inc()
}

// RecordExport records one export in the given format.
func (r *Registry) RecordExport(format string) {
	r.ExportsTotal.WithLabelValues(format).Inc()
}

// SetGraphSize updates the node and edge gauges.
func (r *Registry) SetGraphSize(domains, capabilities, processes, edges int) {
	r.Nodes.WithLabelValues("domain").Set(float64(domains))
	r.Nodes.WithLabelValues("capability").Set(float64(capabilities))
	r.Nodes.WithLabelValues("process").Set(float64(processes))
	r.Edges.Set(float64(edges))
}

// Gatherer exposes the underlying prometheus registry for scraping or tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
