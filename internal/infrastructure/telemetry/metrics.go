package telemetry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Prometheus metric names.
const (
	MetricPagesFetchedTotal    = "shipments_pages_fetched_total"
	MetricDocumentsStagedTotal = "shipments_documents_staged_total"
	MetricOrdersTotal          = "shipments_orders_total"
	MetricThrottleRetriesTotal = "shipments_throttle_retries_total"
	MetricRunDurationSeconds   = "shipments_run_duration_seconds"
	MetricLastRunSuccess       = "shipments_last_run_success"
	MetricLastRunTimestamp     = "shipments_last_run_timestamp_seconds"
)

// Order outcome label values.
const (
	OutcomeCommitted = "committed"
	OutcomeFailed    = "failed"
)

// MetricsConfig holds Pushgateway settings. An empty URL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string
	JobName        string
}

// PipelineMetrics collects per-run counters on a private registry.
// A batch job does not live long enough to be scraped, so the registry is pushed
// to a Pushgateway when the run ends.
//
// Methods are safe on a nil receiver.
type PipelineMetrics struct {
	config   MetricsConfig
	registry *prometheus.Registry

	pagesFetched    *prometheus.CounterVec
	documentsStaged *prometheus.CounterVec
	orders          *prometheus.CounterVec
	throttleRetries prometheus.Counter
	runDuration     prometheus.Histogram
	lastRunSuccess  prometheus.Gauge
	lastRunTime     prometheus.Gauge
}

// NewPipelineMetrics creates the metrics on a new registry.
func NewPipelineMetrics(cfg MetricsConfig) *PipelineMetrics {
	if cfg.JobName == "" {
		cfg.JobName = "logiwa_shipments"
	}

	m := &PipelineMetrics{
		config:   cfg,
		registry: prometheus.NewRegistry(),
		pagesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPagesFetchedTotal,
			Help: "Non-empty order pages fetched from Logiwa.",
		}, []string{"warehouse_id"}),
		documentsStaged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricDocumentsStagedTotal,
			Help: "Raw order documents appended to staging.",
		}, []string{"warehouse_id"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricOrdersTotal,
			Help: "Staged orders processed, by outcome.",
		}, []string{"outcome"}),
		throttleRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricThrottleRetriesTotal,
			Help: "Page requests retried after a throttle response.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRunDurationSeconds,
			Help:    "Wall time of an ingestion run.",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1800, 3600, 7200},
		}),
		lastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastRunSuccess,
			Help: "1 if the last run succeeded, 0 otherwise.",
		}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastRunTimestamp,
			Help: "Unix time the last run finished.",
		}),
	}

	m.registry.MustRegister(
		m.pagesFetched,
		m.documentsStaged,
		m.orders,
		m.throttleRetries,
		m.runDuration,
		m.lastRunSuccess,
		m.lastRunTime,
	)
	return m
}

// Registry returns the registry holding the pipeline metrics.
func (m *PipelineMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// PageFetched counts one non-empty page and its documents.
func (m *PipelineMetrics) PageFetched(warehouseID int64, documents int) {
	if m == nil {
		return
	}
	label := strconv.FormatInt(warehouseID, 10)
	m.pagesFetched.WithLabelValues(label).Inc()
	m.documentsStaged.WithLabelValues(label).Add(float64(documents))
}

// OrderProcessed counts one staged order by outcome.
func (m *PipelineMetrics) OrderProcessed(outcome string) {
	if m == nil {
		return
	}
	m.orders.WithLabelValues(outcome).Inc()
}

// ThrottleRetried counts one throttled request that will be retried.
func (m *PipelineMetrics) ThrottleRetried() {
	if m == nil {
		return
	}
	m.throttleRetries.Inc()
}

// RunFinished records the duration and outcome of a run.
func (m *PipelineMetrics) RunFinished(finishedAt time.Time, duration time.Duration, succeeded bool) {
	if m == nil {
		return
	}
	m.runDuration.Observe(duration.Seconds())
	if succeeded {
		m.lastRunSuccess.Set(1)
	} else {
		m.lastRunSuccess.Set(0)
	}
	m.lastRunTime.Set(float64(finishedAt.Unix()))
}

// Push sends the registry to the configured Pushgateway. It is a no-op without a URL.
func (m *PipelineMetrics) Push(ctx context.Context) error {
	if m == nil || m.config.PushgatewayURL == "" {
		return nil
	}
	err := push.New(m.config.PushgatewayURL, m.config.JobName).
		Gatherer(m.registry).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", m.config.PushgatewayURL, err)
	}
	return nil
}
