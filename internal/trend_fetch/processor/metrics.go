package processor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the ingestion pipeline. All
// observation helpers tolerate a nil receiver so components can run without
// metrics wired (tests, one-off tools).
type Metrics struct {
	ItemsIngestedTotal  prometheus.Counter
	ItemsDroppedTotal   prometheus.Counter
	UpstreamErrorsTotal *prometheus.CounterVec
	FetchDuration       prometheus.Histogram
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
}

// NewMetrics creates and registers the collectors. Pass nil to register on
// the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ItemsIngestedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trend_items_ingested_total",
			Help: "Total upstream items that passed validation.",
		}),
		ItemsDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trend_items_dropped_total",
			Help: "Total upstream items dropped by validation.",
		}),
		UpstreamErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trend_upstream_errors_total",
			Help: "Upstream fetch failures by reason.",
		}, []string{"reason"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trend_fetch_duration_seconds",
			Help:    "Latency of upstream discovery API calls.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trend_cache_hits_total",
			Help: "Fetch results served from the Redis cache.",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trend_cache_misses_total",
			Help: "Fetch requests that went to the upstream API.",
		}),
	}
	reg.MustRegister(
		m.ItemsIngestedTotal,
		m.ItemsDroppedTotal,
		m.UpstreamErrorsTotal,
		m.FetchDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)
	return m
}

func (m *Metrics) AddIngested(n int) {
	if m != nil {
		m.ItemsIngestedTotal.Add(float64(n))
	}
}

func (m *Metrics) AddDropped(n int) {
	if m != nil {
		m.ItemsDroppedTotal.Add(float64(n))
	}
}

func (m *Metrics) IncUpstreamError(reason string) {
	if m != nil {
		m.UpstreamErrorsTotal.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	if m != nil {
		m.FetchDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncCacheHit() {
	if m != nil {
		m.CacheHitsTotal.Inc()
	}
}

func (m *Metrics) IncCacheMiss() {
	if m != nil {
		m.CacheMissesTotal.Inc()
	}
}
