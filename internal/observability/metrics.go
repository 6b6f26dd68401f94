package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for planner self-monitoring.
// It uses a custom registry to avoid polluting the global default.
type Metrics struct {
	Registry *prometheus.Registry

	// Plan metrics
	PlanRequestsTotal *prometheus.CounterVec
	PlanDuration      prometheus.Histogram

	// Inspection metrics
	InspectDuration  prometheus.Histogram
	InspectErrors    prometheus.Counter
	ClusterNodes     prometheus.Gauge
	ClusterWorkloads prometheus.Gauge

	// HTTP metrics
	HTTPRequestsInFlight prometheus.Gauge
}

// NewMetrics creates a Metrics instance with all Prometheus metrics
// registered on a custom registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		PlanRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kubeplan_plan_requests_total",
			Help: "Total number of plan computations.",
		}, []string{"status"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kubeplan_plan_duration_seconds",
			Help:    "Duration of plan computations in seconds.",
			Buckets: prometheus.DefBuckets,
		}),

		InspectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kubeplan_inspect_duration_seconds",
			Help:    "Duration of cluster inspection calls in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		InspectErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kubeplan_inspect_errors_total",
			Help: "Total number of failed cluster inspection calls.",
		}),
		ClusterNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kubeplan_cluster_nodes",
			Help: "Node count observed by the last inspection.",
		}),
		ClusterWorkloads: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kubeplan_cluster_workloads",
			Help: "Pod count observed by the last inspection.",
		}),

		HTTPRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kubeplan_http_requests_in_flight",
			Help: "Current number of in-flight HTTP requests.",
		}),
	}

	reg.MustRegister(
		m.PlanRequestsTotal,
		m.PlanDuration,
		m.InspectDuration,
		m.InspectErrors,
		m.ClusterNodes,
		m.ClusterWorkloads,
		m.HTTPRequestsInFlight,
	)

	return m
}
