// Package telemetry exposes simulation counters to prometheus.
package telemetry

import (
	"net/http"

	"github.com/mosaicnetworks/echo/src/trace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "echo",
			Name:      "messages_total",
			Help:      "Messages scheduled and delivered, by kind.",
		},
		[]string{"event", "kind"},
	)

	NodesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "echo",
			Name:      "nodes_total",
			Help:      "Nodes reaching echo completion or termination.",
		},
		[]string{"event"},
	)

	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "echo",
			Name:      "runs_total",
			Help:      "Completed simulation runs, by outcome.",
		},
		[]string{"outcome"},
	)

	RunSteps = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "echo",
			Name:      "run_steps",
			Help:      "Deliveries per simulation run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		},
	)

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "echo",
			Name:      "build_info",
			Help:      "Build info (constant 1, labeled by version).",
		},
		[]string{"version"},
	)
)

// Run outcomes.
const (
	OutcomeTerminated = "terminated"
	OutcomeDeadlock   = "deadlock"
	OutcomeViolation  = "violation"
	OutcomeError      = "error"
)

func init() {
	Registry.MustRegister(MessagesTotal, NodesTotal, RunsTotal, RunSteps, buildInfo)
}

// MetricsHandler exposes /metrics. Mount it with mux.Handle("/metrics", telemetry.MetricsHandler()).
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// SetBuildInfo should be called once at startup.
func SetBuildInfo(version string) {
	buildInfo.WithLabelValues(version).Set(1)
}

// ObserveRun records the outcome of a run.
func ObserveRun(outcome string, steps int) {
	RunsTotal.WithLabelValues(outcome).Inc()
	RunSteps.Observe(float64(steps))
}

// Recorder is a trace.Recorder that feeds the counters.
type Recorder struct{}

// NewRecorder ...
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record implements trace.Recorder.
func (r *Recorder) Record(e trace.Event) error {
	switch e.Type {
	case trace.Scheduled, trace.Delivered:
		MessagesTotal.WithLabelValues(e.Type.String(), e.Kind).Inc()
	case trace.EchoComplete, trace.Finished:
		NodesTotal.WithLabelValues(e.Type.String()).Inc()
	}
	return nil
}
