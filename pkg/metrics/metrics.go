package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

/*
Metrics tracks the agent's request, task, delivery and cache counters on its
own registry. A nil *Metrics is valid and records nothing.
*/
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	tasks        *prometheus.CounterVec
	taskDuration prometheus.Histogram
	deliveries   *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	queueDepth   prometheus.Gauge
	rateLimited  prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cinematch_requests_total", Help: "Inbound A2A requests by mode and outcome",
		}, []string{"mode", "outcome"}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cinematch_tasks_total", Help: "Finished tasks by final state",
		}, []string{"state"}),
		taskDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cinematch_task_duration_seconds",
			Help:    "Time spent invoking the agent for a task",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cinematch_webhook_deliveries_total", Help: "Webhook deliveries by outcome",
		}, []string{"outcome"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cinematch_mood_cache_lookups_total", Help: "Mood cache lookups by result",
		}, []string{"result"}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cinematch_queue_depth", Help: "Jobs waiting for a worker",
		}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "cinematch_rate_limited_total", Help: "Requests rejected by the rate limiter",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Request(mode, outcome string) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) Task(state string, duration time.Duration) {
	if m == nil {
		return
	}

	m.tasks.WithLabelValues(state).Inc()
	m.taskDuration.Observe(duration.Seconds())
}

func (m *Metrics) Delivery(err error) {
	if m == nil {
		return
	}

	outcome := "delivered"
	if err != nil {
		outcome = "failed"
	}

	m.deliveries.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) QueueDepth(n int) {
	if m == nil {
		return
	}

	m.queueDepth.Set(float64(n))
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}

	m.rateLimited.Inc()
}
