package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatasetCacheRequests counts dataset cache lookups by result (hit or miss).
	DatasetCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_dataset_cache_requests_total",
		Help: "Dataset cache lookups by result",
	}, []string{"result"})

	// DatasetGenerationLatency records how long synthesizing a dataset takes.
	DatasetGenerationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulseboard_dataset_generation_seconds",
		Help:    "Dataset generation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// EnrichmentLatency records metric enrichment latency.
	EnrichmentLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulseboard_enrichment_seconds",
		Help:    "Metric enrichment latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// EnrichmentFailures counts rejected enrichment runs.
	EnrichmentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulseboard_enrichment_failures_total",
		Help: "Total number of failed enrichment runs",
	})

	// DashboardViews counts dashboard builds by surface (html, api, cli).
	DashboardViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_dashboard_views_total",
		Help: "Dashboard views built by surface",
	}, []string{"surface"})

	// FilteredPosts records how many posts survive the filter per request.
	FilteredPosts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulseboard_filtered_posts",
		Help:    "Number of posts remaining after filtering",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250, 500, 1000},
	})

	// ExportRows counts rows written to CSV exports.
	ExportRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulseboard_export_rows_total",
		Help: "Total number of rows written to CSV exports",
	})
)

// TrackLatency returns a function that observes the elapsed time on h when
// called (e.g. defer).
func TrackLatency(h prometheus.Observer) func() {
	start := time.Now()
	return func() {
		h.Observe(time.Since(start).Seconds())
	}
}
