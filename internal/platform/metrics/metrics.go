// Package metrics holds the Prometheus collectors for genome services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the genome service reports.
type Metrics struct {
	Registry *prometheus.Registry

	GenomesGenerated *prometheus.CounterVec
	GenerateFailures *prometheus.CounterVec
	Comparisons      *prometheus.CounterVec
	Exports          *prometheus.CounterVec
	Disclosures      *prometheus.CounterVec
	RPCDuration      *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry. Process and Go runtime
// collectors are included.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		GenomesGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oripheon_genomes_generated_total",
			Help: "Genomes assembled, by primary archetype.",
		}, []string{"primary"}),
		GenerateFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oripheon_genome_failures_total",
			Help: "Generation requests that failed, by error code.",
		}, []string{"code"}),
		Comparisons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oripheon_comparisons_total",
			Help: "Compatibility comparisons, by inferred label.",
		}, []string{"label"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oripheon_exports_total",
			Help: "Genome exports, by format.",
		}, []string{"format"}),
		Disclosures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "oripheon_disclosures_total",
			Help: "Genome disclosures, by visibility tier.",
		}, []string{"tier"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oripheon_rpc_duration_ms",
			Help:    "Genome RPC latency in milliseconds.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		}, []string{"method"}),
	}
}

// ObserveRPC records the latency of one RPC since start.
func (m *Metrics) ObserveRPC(method string, start time.Time) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(method).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

// Generated counts one assembled genome.
func (m *Metrics) Generated(primary string) {
	if m == nil {
		return
	}
	m.GenomesGenerated.WithLabelValues(primary).Inc()
}

// Failed counts one failed generation.
func (m *Metrics) Failed(code string) {
	if m == nil {
		return
	}
	m.GenerateFailures.WithLabelValues(code).Inc()
}

// Compared counts one comparison.
func (m *Metrics) Compared(label string) {
	if m == nil {
		return
	}
	m.Comparisons.WithLabelValues(label).Inc()
}

// Exported counts one export.
func (m *Metrics) Exported(format string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format).Inc()
}

// Disclosed counts one tier projection.
func (m *Metrics) Disclosed(tier string) {
	if m == nil {
		return
	}
	m.Disclosures.WithLabelValues(tier).Inc()
}
