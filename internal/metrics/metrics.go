package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the relay's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	satelliteRequests *prometheus.CounterVec
	retryAttempts     *prometheus.HistogramVec
	pollCycles        *prometheus.CounterVec
	pollDuration      prometheus.Histogram
	cachedReadings    prometheus.Gauge
	lastRefresh       prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		satelliteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "satellite_requests_total",
			Help: "Satellite calls by endpoint and resulting status code.",
		}, []string{"endpoint", "code"}),
		retryAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "satellite_retry_attempts",
			Help:    "Attempts needed by a retry-until-OK loop, by endpoint.",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 100},
		}, []string{"endpoint"}),
		pollCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "poll_cycles_total",
			Help: "Refresh cycles by result (ok | failed).",
		}, []string{"result"}),
		pollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "poll_cycle_duration_seconds",
			Help:    "Duration of completed refresh cycles.",
			Buckets: prometheus.DefBuckets,
		}),
		cachedReadings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cached_readings",
			Help: "Readings held by the current cache snapshot.",
		}),
		lastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_last_refresh_timestamp_seconds",
			Help: "Unix time of the last installed snapshot.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.satelliteRequests,
		m.retryAttempts,
		m.pollCycles,
		m.pollDuration,
		m.cachedReadings,
		m.lastRefresh,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) SatelliteRequest(endpoint string, code int) {
	if m == nil {
		return
	}
	m.satelliteRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

func (m *Metrics) RetryAttempts(endpoint string, attempts int) {
	if m == nil {
		return
	}
	m.retryAttempts.WithLabelValues(endpoint).Observe(float64(attempts))
}

func (m *Metrics) PollCycle(duration time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.pollCycles.WithLabelValues("failed").Inc()
		return
	}
	m.pollCycles.WithLabelValues("ok").Inc()
	m.pollDuration.Observe(duration.Seconds())
}

func (m *Metrics) SnapshotInstalled(readings int, at time.Time) {
	if m == nil {
		return
	}
	m.cachedReadings.Set(float64(readings))
	m.lastRefresh.Set(float64(at.Unix()))
}
