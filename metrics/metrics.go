package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "path", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})
	UpstreamFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "leetcode_fetch_duration_seconds",
		Help: "Latency of LeetCode GraphQL profile fetches",
	})
	UpstreamErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "leetcode_fetch_errors_total",
		Help: "Failed LeetCode GraphQL fetches by kind",
	}, []string{"kind"})
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "LeetCode profile cache hits",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "LeetCode profile cache misses",
	})
	ContactMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_messages_total",
		Help: "Contact form submissions by outcome",
	}, []string{"status"})
	BlogViewsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "blog_views_recorded_total",
		Help: "Blog view events written to ClickHouse",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UpstreamFetchDuration,
		UpstreamErrorsTotal,
		CacheHits,
		CacheMisses,
		ContactMessagesTotal,
		BlogViewsRecorded,
	)
}
