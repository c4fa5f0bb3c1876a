package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/matzehuels/wikigraph/pkg/observability"
)

const metricsNamespace = "wikigraph"

// Metrics holds the Prometheus collectors of one server. It implements the
// observability hook interfaces, so library events land in the same
// registry as the HTTP metrics.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts HTTP requests by route pattern and status code.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration measures handler latency by route pattern.
	RequestDuration *prometheus.HistogramVec

	// PathSearches counts searches by outcome (found, no_path, not_found, error).
	PathSearches *prometheus.CounterVec

	// PathVisited measures how many articles a search dequeued.
	PathVisited prometheus.Histogram

	// PathLength measures the link count of found paths.
	PathLength prometheus.Histogram

	// StatsDuration measures full statistics scans.
	StatsDuration prometheus.Histogram

	// CacheEvents counts cache hits, misses and sets by key type.
	CacheEvents *prometheus.CounterVec

	// GraphArticles and GraphLinks describe the served graph.
	GraphArticles prometheus.Gauge
	GraphLinks    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP handler latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		PathSearches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "path",
			Name:      "searches_total",
			Help:      "Path searches by outcome.",
		}, []string{"outcome"}),
		PathVisited: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "path",
			Name:      "visited_articles",
			Help:      "Articles dequeued per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}),
		PathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "path",
			Name:      "length_links",
			Help:      "Links on found paths.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		StatsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "stats",
			Name:      "scan_duration_seconds",
			Help:      "Duration of full statistics scans.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		CacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "events_total",
			Help:      "Report cache events by key type and event.",
		}, []string{"key_type", "event"}),
		GraphArticles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "graph",
			Name:      "articles",
			Help:      "Articles in the served graph.",
		}),
		GraphLinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "graph",
			Name:      "links",
			Help:      "Links in the served graph.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.PathSearches,
		m.PathVisited,
		m.PathLength,
		m.StatsDuration,
		m.CacheEvents,
		m.GraphArticles,
		m.GraphLinks,
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Install registers m as the process-wide graph, query and cache hooks.
func (m *Metrics) Install() {
	observability.SetGraphHooks(m)
	observability.SetQueryHooks(m)
	observability.SetCacheHooks(m)
}

func (m *Metrics) OnLoadStart(ctx context.Context) {}

func (m *Metrics) OnLoadComplete(ctx context.Context, pages, links int, d time.Duration, err error) {
	if err != nil {
		return
	}
	m.GraphArticles.Set(float64(pages))
	m.GraphLinks.Set(float64(links))
}

func (m *Metrics) OnPathSearch(ctx context.Context, visited, length int, d time.Duration, err error) {
	m.PathVisited.Observe(float64(visited))
	if length >= 0 {
		m.PathLength.Observe(float64(length))
	}
}

func (m *Metrics) OnStatsComplete(ctx context.Context, pages int, d time.Duration, err error) {
	if err == nil {
		m.StatsDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) OnCacheHit(ctx context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(ctx context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(ctx context.Context, keyType string, size int) {
	m.CacheEvents.WithLabelValues(keyType, "set").Inc()
}

var (
	_ observability.GraphHooks = (*Metrics)(nil)
	_ observability.QueryHooks = (*Metrics)(nil)
	_ observability.CacheHooks = (*Metrics)(nil)
)
