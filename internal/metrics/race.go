package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Worker outcome label values.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
	OutcomeFailed    = "failed"
)

// Race holds the collectors of a single run. A nil *Race is valid; all
// methods are no-ops, which keeps metrics optional for callers and tests.
type Race struct {
	registry *prometheus.Registry

	steps          prometheus.Counter
	renders        prometheus.Counter
	renderErrors   prometheus.Counter
	activeWorkers  prometheus.Gauge
	workersTotal   *prometheus.CounterVec
	workerDuration *prometheus.HistogramVec
	stepDelay      prometheus.Histogram
}

// NewRace creates the collectors and registers them, together with the Go
// runtime collector, on a fresh registry.
func NewRace() (*Race, error) {
	r := &Race{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progressrace_steps_total",
			Help: "Total steps advanced across all workers.",
		}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progressrace_renders_total",
			Help: "Total repaint requests served by the display.",
		}),
		renderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "progressrace_render_errors_total",
			Help: "Repaint requests that failed to write to the terminal.",
		}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "progressrace_active_workers",
			Help: "Workers currently running.",
		}),
		workersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progressrace_workers_total",
			Help: "Workers that exited, partitioned by outcome.",
		}, []string{"outcome"}),
		workerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "progressrace_worker_duration_seconds",
			Help:    "Wall time from registration to exit, partitioned by outcome.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 30},
		}, []string{"outcome"}),
		stepDelay: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "progressrace_step_delay_seconds",
			Help:    "Jittered per-step sleep durations.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
	}
	for _, c := range []prometheus.Collector{
		r.steps,
		r.renders,
		r.renderErrors,
		r.activeWorkers,
		r.workersTotal,
		r.workerDuration,
		r.stepDelay,
		collectors.NewGoCollector(),
	} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register race collector: %w", err)
		}
	}
	return r, nil
}

// Registry returns the registry holding the run's collectors.
func (r *Race) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler returns an http.Handler exposing the run's collectors.
func (r *Race) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WorkerStarted marks one more worker as running.
func (r *Race) WorkerStarted() {
	if r == nil {
		return
	}
	r.activeWorkers.Inc()
}

// WorkerExited records a worker exit with its outcome and elapsed time.
func (r *Race) WorkerExited(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.activeWorkers.Dec()
	r.workersTotal.WithLabelValues(outcome).Inc()
	r.workerDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// StepAdvanced counts one advanced step and the delay that preceded it.
func (r *Race) StepAdvanced(delay time.Duration) {
	if r == nil {
		return
	}
	r.steps.Inc()
	r.stepDelay.Observe(delay.Seconds())
}

// Rendered counts a repaint request; a non-nil err also counts as a failure.
func (r *Race) Rendered(err error) {
	if r == nil {
		return
	}
	r.renders.Inc()
	if err != nil {
		r.renderErrors.Inc()
	}
}
