// Package metrics exports thread pool events to Prometheus
package metrics

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// ExporterOptions controls collector configuration
type ExporterOptions struct {
	// Namespace prefixes every metric name. Defaults to "threadpool".
	Namespace string

	// DurationBuckets overrides the task duration histogram buckets
	DurationBuckets []float64
}

// PrometheusExporter adapts types.Metrics to Prometheus collectors
type PrometheusExporter struct {
	tasksSubmitted *prom.CounterVec
	taskDuration   *prom.HistogramVec
	taskPanics     *prom.CounterVec
	queueDepth     *prom.GaugeVec
	workers        *prom.GaugeVec
}

var _ types.Metrics = (*PrometheusExporter)(nil)

// NewPrometheusExporter creates and registers the collectors on reg.
// A nil reg means prometheus.DefaultRegisterer. Registering twice on the same
// registry reuses the collectors already there.
func NewPrometheusExporter(reg prom.Registerer, opts ExporterOptions) (*PrometheusExporter, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "threadpool"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	submittedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_submitted_total",
		Help:      "Total number of tasks submitted to the thread pool.",
	}, []string{"pool_name"})
	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Task execution duration in seconds.",
		Buckets:   buckets,
	}, []string{"pool_name"})
	panicVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_panics_total",
		Help:      "Total number of tasks that panicked inside a worker.",
	}, []string{"pool_name"})
	queueDepthVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Current number of queued tasks.",
	}, []string{"pool_name"})
	workersVec := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "workers",
		Help:      "Current number of live worker goroutines.",
	}, []string{"pool_name"})

	var err error
	if submittedVec, err = registerCollector(reg, submittedVec); err != nil {
		return nil, err
	}
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if panicVec, err = registerCollector(reg, panicVec); err != nil {
		return nil, err
	}
	if queueDepthVec, err = registerCollector(reg, queueDepthVec); err != nil {
		return nil, err
	}
	if workersVec, err = registerCollector(reg, workersVec); err != nil {
		return nil, err
	}

	return &PrometheusExporter{
		tasksSubmitted: submittedVec,
		taskDuration:   durationVec,
		taskPanics:     panicVec,
		queueDepth:     queueDepthVec,
		workers:        workersVec,
	}, nil
}

// RecordTaskSubmitted counts a submitted task
func (m *PrometheusExporter) RecordTaskSubmitted(pool string) {
	if m == nil {
		return
	}
	m.tasksSubmitted.WithLabelValues(normalizeLabel(pool)).Inc()
}

// RecordTaskDuration observes a task execution duration
func (m *PrometheusExporter) RecordTaskDuration(pool string, duration time.Duration) {
	if m == nil {
		return
	}
	m.taskDuration.WithLabelValues(normalizeLabel(pool)).Observe(duration.Seconds())
}

// RecordTaskPanic counts a task panic
func (m *PrometheusExporter) RecordTaskPanic(pool string, panicInfo any) {
	if m == nil {
		return
	}
	m.taskPanics.WithLabelValues(normalizeLabel(pool)).Inc()
}

// RecordQueueDepth sets the queue depth gauge
func (m *PrometheusExporter) RecordQueueDepth(pool string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(normalizeLabel(pool)).Set(float64(depth))
}

// RecordWorkers sets the live worker gauge
func (m *PrometheusExporter) RecordWorkers(pool string, workers int) {
	if m == nil {
		return
	}
	m.workers.WithLabelValues(normalizeLabel(pool)).Set(float64(workers))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, fmt.Errorf("failed to register collector: %w", err)
}
