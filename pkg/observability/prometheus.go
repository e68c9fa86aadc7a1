package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements every hook interface on top of Prometheus
// collectors. Create it once per registry.
type PrometheusHooks struct {
	buildsTotal   *prometheus.CounterVec
	buildDuration prometheus.Histogram
	graphWords    prometheus.Gauge
	graphEdges    prometheus.Gauge

	searchesTotal   *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	searchExpanded  prometheus.Histogram
	searchPathEdges prometheus.Histogram
	searchesRunning prometheus.Gauge

	cacheEvents *prometheus.CounterVec
	cacheBytes  prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheusHooks registers the wordladder collectors with reg.
// It panics if they are already registered there.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		buildsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordladder_graph_builds_total",
			Help: "Graph builds by result",
		}, []string{"result"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordladder_graph_build_duration_seconds",
			Help:    "Edge construction duration",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		graphWords: f.NewGauge(prometheus.GaugeOpts{
			Name: "wordladder_graph_words",
			Help: "Vertices in the most recently built graph",
		}),
		graphEdges: f.NewGauge(prometheus.GaugeOpts{
			Name: "wordladder_graph_edges",
			Help: "Edges in the most recently built graph",
		}),

		searchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordladder_searches_total",
			Help: "Searches by terminal status",
		}, []string{"status"}),
		searchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordladder_search_duration_seconds",
			Help:    "Search duration including pacing delays",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
		searchExpanded: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordladder_search_expanded_vertices",
			Help:    "Vertices expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		searchPathEdges: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordladder_search_path_edges",
			Help:    "Edges in returned paths",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		searchesRunning: f.NewGauge(prometheus.GaugeOpts{
			Name: "wordladder_searches_running",
			Help: "Searches currently in progress",
		}),

		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordladder_cache_events_total",
			Help: "Cache lookups and writes by key type and event",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "wordladder_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}),

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordladder_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wordladder_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (h *PrometheusHooks) OnBuildStart(context.Context, int) {}

func (h *PrometheusHooks) OnBuildComplete(_ context.Context, words, edges int, d time.Duration, err error) {
	if err != nil {
		h.buildsTotal.WithLabelValues("error").Inc()
		return
	}
	h.buildsTotal.WithLabelValues("ok").Inc()
	h.buildDuration.Observe(d.Seconds())
	h.graphWords.Set(float64(words))
	h.graphEdges.Set(float64(edges))
}

func (h *PrometheusHooks) OnSearchStart(context.Context, int, int) {
	h.searchesRunning.Inc()
}

func (h *PrometheusHooks) OnSearchComplete(_ context.Context, status string, expanded, pathLen int, d time.Duration, _ error) {
	h.searchesRunning.Dec()
	h.searchesTotal.WithLabelValues(status).Inc()
	h.searchDuration.Observe(d.Seconds())
	h.searchExpanded.Observe(float64(expanded))
	if pathLen > 0 {
		h.searchPathEdges.Observe(float64(pathLen - 1))
	}
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ BuildHooks  = (*PrometheusHooks)(nil)
	_ SearchHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
